package checkout

import (
	"context"
	"fmt"
	"time"

	"bookify/models"

	"go.uber.org/zap"
)

// Finalize converts a gated session into confirmed provider bookings and an
// immutable order record. One booking is created per (slot, line item) pair,
// in stored order; an individual booking failure is logged and skipped, so a
// partially-booked order is still committed. Payment has typically already
// been confirmed by the time this runs, which is why availability wins over
// strict atomicity here — callers needing all-or-nothing must compare slot
// coverage against the order's booking refs.
func (s *DefaultCheckoutService) Finalize(ctx context.Context, sessionID string, buyer models.Buyer) (*models.Order, error) {
	// Snapshot under the session lock, then release it for the provider
	// calls so external latency never extends the lock hold time.
	var snapshot *models.CheckoutSession
	err := s.Store.View(sessionID, func(session *models.CheckoutSession) error {
		if session.Status != models.CheckoutReadyForComplete {
			return &InvalidStateError{
				Status:  session.Status,
				Message: "session must pass the payment gate before finalize",
			}
		}
		snapshot = session.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	effectiveBuyer := buyer
	if effectiveBuyer.Email == "" && snapshot.Buyer != nil {
		effectiveBuyer = *snapshot.Buyer
	}

	bookingIDs := s.createBookings(ctx, snapshot, effectiveBuyer)

	orderID := "ORD-" + sessionID
	order, err := s.Store.Complete(sessionID, func(session *models.CheckoutSession) (*models.Order, error) {
		// The session was unlocked during booking creation; a concurrent
		// mutation would have reset it to incomplete.
		if session.Status != models.CheckoutReadyForComplete {
			return nil, &InvalidStateError{
				Status:  session.Status,
				Message: "session changed during finalize",
			}
		}
		session.Status = models.CheckoutCompleted
		session.Order = &models.OrderRef{
			ID:           orderID,
			PermalinkURL: fmt.Sprintf("https://example.com/order?id=%s", orderID),
		}
		return &models.Order{
			ID:         orderID,
			Checkout:   session.Clone(),
			BookingIDs: bookingIDs,
			CreatedAt:  time.Now().UTC(),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("checkout finalized",
		zap.String("sessionId", sessionID),
		zap.String("orderId", orderID),
		zap.Int("bookings", len(bookingIDs)))
	return order, nil
}

func (s *DefaultCheckoutService) createBookings(ctx context.Context, snapshot *models.CheckoutSession, buyer models.Buyer) []string {
	lineItems := make(map[string]*models.LineItem, len(snapshot.LineItems))
	for _, li := range snapshot.LineItems {
		lineItems[li.ID] = li
	}

	bookingIDs := make([]string, 0, len(snapshot.Appointment.Slots))
	for _, slot := range snapshot.Appointment.Slots {
		option := selectedOption(slot)
		if option == nil {
			s.Logger.Warn("slot has no selected option, skipping",
				zap.String("slotId", slot.ID))
			continue
		}
		for _, liID := range slot.LineItemIDs {
			li, ok := lineItems[liID]
			if !ok {
				continue
			}
			booking, err := s.Provider.CreateBooking(ctx, models.CreateBookingRequest{
				LocationID:         slot.Location.ID,
				StartTime:          option.StartTime,
				ServiceVariationID: li.ServiceVariationID,
				Buyer:              buyer,
				StaffID:            option.StaffID,
				Notes:              slot.Notes,
			})
			if err != nil {
				s.Logger.Error("failed to create booking",
					zap.String("sessionId", snapshot.ID),
					zap.String("slotId", slot.ID),
					zap.String("lineItemId", liID),
					zap.Error(err))
				continue
			}
			bookingIDs = append(bookingIDs, booking.ID)
		}
	}
	return bookingIDs
}

func selectedOption(slot *models.AppointmentSlot) *models.AppointmentOption {
	for i := range slot.Options {
		if slot.Options[i].ID == slot.SelectedOptionID {
			return &slot.Options[i]
		}
	}
	return nil
}
