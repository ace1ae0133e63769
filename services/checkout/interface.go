package checkout

import (
	"context"
	"time"

	"bookify/models"
	"bookify/services/provider"

	"go.uber.org/zap"
)

// AddToCheckoutInput carries the parameters for adding a service to a
// checkout. A zero Quantity defaults to 1. When LocationID and StartTime are
// both given, an appointment slot is attached to the line item in the same
// operation.
type AddToCheckoutInput struct {
	SessionID          string
	ServiceVariationID string
	Quantity           int
	LocationID         string
	StaffID            string
	StartTime          *time.Time
	Notes              string
}

// UpdateCheckoutInput carries the parameters for updating a line item.
type UpdateCheckoutInput struct {
	SessionID  string
	LineItemID string
	Quantity   *int
	LocationID string
	StaffID    string
	StartTime  *time.Time
	Notes      string
}

// Service is the checkout core surface exposed to any frontend shell.
type Service interface {
	AddToCheckout(ctx context.Context, in AddToCheckoutInput) (*models.CheckoutSession, error)
	GetCheckout(sessionID string) (*models.CheckoutSession, error)
	UpdateCheckout(ctx context.Context, in UpdateCheckoutInput) (*models.CheckoutSession, error)
	RemoveFromCheckout(sessionID, lineItemID string) (*models.CheckoutSession, error)
	SetAppointment(ctx context.Context, sessionID string, requests []models.SlotRequest) (*models.CheckoutSession, error)
	GateForPayment(sessionID string, buyer models.Buyer) (GateResult, error)
	CreatePaymentIntent(ctx context.Context, sessionID string) (*PaymentIntent, error)
	Finalize(ctx context.Context, sessionID string, buyer models.Buyer) (*models.Order, error)
	GetOrder(orderID string) (*models.Order, error)
}

// DefaultCheckoutService implements Service on top of the in-memory session
// store and the external booking provider.
type DefaultCheckoutService struct {
	Provider provider.Client
	Store    *SessionStore
	Payments PaymentProcessor
	Currency string
	TaxRate  float64
	Logger   *zap.Logger
}
