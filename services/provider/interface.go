package provider

import (
	"context"
	"errors"
	"fmt"

	"bookify/models"
)

// ErrNotFound signals that the provider does not know the requested id.
var ErrNotFound = errors.New("not found")

// Error wraps a failed provider call. Callers that can degrade (slot
// enrichment, individual booking creation) catch it at the boundary; callers
// for which the lookup is essential propagate it.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider %s failed (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client is the narrow interface to the external booking provider. All calls
// are blocking network calls and must not be made while holding a session
// lock.
type Client interface {
	ListLocations(ctx context.Context, query string) ([]models.Location, error)
	ListStaff(ctx context.Context, query string) ([]models.Staff, error)
	SearchServiceCatalog(ctx context.Context, query string) ([]models.ServiceVariation, error)
	SearchAvailability(ctx context.Context, q models.AvailabilityQuery) ([]models.AvailabilitySlot, error)
	GetServiceVariation(ctx context.Context, id string) (*models.ServiceVariation, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context, query string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id string) (string, error)
}
