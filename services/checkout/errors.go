package checkout

import (
	"fmt"

	"bookify/models"
)

// NotFoundError signals that a session, line item, slot, or order id is
// unknown.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateError signals an operation attempted on a session outside the
// required status, e.g. finalize before gating.
type InvalidStateError struct {
	Status  models.CheckoutStatus
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s (session status: %s)", e.Message, e.Status)
}

// ValidationError signals malformed input such as a non-positive quantity.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
