package checkout

import (
	"context"
	"errors"
	"fmt"

	"bookify/models"
	"bookify/services/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddToCheckout adds a service variation to a session, creating the session
// when no id is supplied. Adding a variation already present merges into the
// existing line item by incrementing its quantity.
func (s *DefaultCheckoutService) AddToCheckout(ctx context.Context, in AddToCheckoutInput) (*models.CheckoutSession, error) {
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, &ValidationError{Message: "quantity must be positive"}
	}

	// Resolving the service being added is essential: a failure here is a
	// user-facing failure, not a degradable one.
	service, err := s.Provider.GetServiceVariation(ctx, in.ServiceVariationID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, &NotFoundError{Resource: "service variation", ID: in.ServiceVariationID}
		}
		return nil, fmt.Errorf("failed to resolve service variation: %w", err)
	}

	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
		s.Store.Create(&models.CheckoutSession{
			ID:       sessionID,
			Currency: s.Currency,
			Status:   models.CheckoutIncomplete,
		})
		s.Logger.Info("created checkout session", zap.String("sessionId", sessionID))
	}

	// Pre-resolve appointment enrichment outside the session lock.
	withAppointment := in.LocationID != "" && in.StartTime != nil
	var location models.LocationRef
	if withAppointment {
		location = s.locationRef(ctx, in.LocationID)
	}

	return s.Store.Update(sessionID, func(session *models.CheckoutSession) error {
		var lineItem *models.LineItem
		for _, li := range session.LineItems {
			if li.ServiceVariationID == in.ServiceVariationID {
				li.Quantity += quantity
				lineItem = li
				break
			}
		}
		if lineItem == nil {
			lineItem = &models.LineItem{
				ID:                 uuid.New().String(),
				ServiceVariationID: service.ID,
				Name:               service.Name,
				UnitPrice:          service.Price,
				Quantity:           quantity,
			}
			session.LineItems = append(session.LineItems, lineItem)
		}

		if withAppointment {
			attachOrUpdateSlot(session, lineItem.ID, location, in.StaffID,
				*in.StartTime, durationMinutes(service), in.Notes)
		}

		RecalculateTotals(session, s.TaxRate)
		return nil
	})
}

// GetCheckout returns a snapshot of a session.
func (s *DefaultCheckoutService) GetCheckout(sessionID string) (*models.CheckoutSession, error) {
	var snapshot *models.CheckoutSession
	err := s.Store.View(sessionID, func(session *models.CheckoutSession) error {
		snapshot = session.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// RemoveFromCheckout removes a line item and cascades the removal into any
// slot referencing it.
func (s *DefaultCheckoutService) RemoveFromCheckout(sessionID, lineItemID string) (*models.CheckoutSession, error) {
	return s.Store.Update(sessionID, func(session *models.CheckoutSession) error {
		idx := -1
		for i, li := range session.LineItems {
			if li.ID == lineItemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return &NotFoundError{Resource: "line item", ID: lineItemID}
		}
		session.LineItems = append(session.LineItems[:idx], session.LineItems[idx+1:]...)
		removeLineItemFromSlots(session, lineItemID)
		RecalculateTotals(session, s.TaxRate)
		return nil
	})
}

// UpdateCheckout updates a line item's quantity and/or appointment details.
func (s *DefaultCheckoutService) UpdateCheckout(ctx context.Context, in UpdateCheckoutInput) (*models.CheckoutSession, error) {
	if in.Quantity != nil && *in.Quantity < 1 {
		return nil, &ValidationError{Message: "quantity must be at least 1"}
	}

	// Snapshot the line item's service reference, then do the provider
	// lookups with the session lock released.
	var serviceVariationID string
	err := s.Store.View(in.SessionID, func(session *models.CheckoutSession) error {
		for _, li := range session.LineItems {
			if li.ID == in.LineItemID {
				serviceVariationID = li.ServiceVariationID
				return nil
			}
		}
		return &NotFoundError{Resource: "line item", ID: in.LineItemID}
	})
	if err != nil {
		return nil, err
	}

	withAppointment := in.LocationID != "" && in.StartTime != nil
	var location models.LocationRef
	duration := defaultDurationMinutes
	if withAppointment {
		location = s.locationRef(ctx, in.LocationID)
		if service, err := s.Provider.GetServiceVariation(ctx, serviceVariationID); err == nil {
			duration = durationMinutes(service)
		} else {
			s.Logger.Warn("service duration lookup failed, using fallback",
				zap.String("serviceVariationId", serviceVariationID), zap.Error(err))
		}
	}

	return s.Store.Update(in.SessionID, func(session *models.CheckoutSession) error {
		var lineItem *models.LineItem
		for _, li := range session.LineItems {
			if li.ID == in.LineItemID {
				lineItem = li
				break
			}
		}
		if lineItem == nil {
			return &NotFoundError{Resource: "line item", ID: in.LineItemID}
		}

		if in.Quantity != nil {
			lineItem.Quantity = *in.Quantity
		}
		if withAppointment {
			attachOrUpdateSlot(session, lineItem.ID, location, in.StaffID,
				*in.StartTime, duration, in.Notes)
		}

		RecalculateTotals(session, s.TaxRate)
		return nil
	})
}

// SetAppointment applies a batch of slot requests to a session. Requests are
// processed independently and in order; a failed location lookup degrades to
// a bare id reference rather than aborting the batch.
func (s *DefaultCheckoutService) SetAppointment(ctx context.Context, sessionID string, requests []models.SlotRequest) (*models.CheckoutSession, error) {
	// Snapshot the line item -> service mapping for duration derivation.
	services := make(map[string]string)
	err := s.Store.View(sessionID, func(session *models.CheckoutSession) error {
		for _, li := range session.LineItems {
			services[li.ID] = li.ServiceVariationID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedSlotRequest, 0, len(requests))
	for _, req := range requests {
		r := resolvedSlotRequest{
			req:             req,
			location:        s.locationRef(ctx, req.LocationID),
			durationMinutes: defaultDurationMinutes,
		}
		// Duration comes from the first referenced line item's service; a
		// failed lookup falls back to the default.
		for _, liID := range req.LineItemIDs {
			variationID, ok := services[liID]
			if !ok {
				continue
			}
			if service, err := s.Provider.GetServiceVariation(ctx, variationID); err == nil {
				r.durationMinutes = durationMinutes(service)
			} else {
				s.Logger.Warn("service duration lookup failed, using fallback",
					zap.String("serviceVariationId", variationID), zap.Error(err))
			}
			break
		}
		resolved = append(resolved, r)
	}

	return s.Store.Update(sessionID, func(session *models.CheckoutSession) error {
		applySlotRequests(session, resolved)
		RecalculateTotals(session, s.TaxRate)
		return nil
	})
}

// GetOrder returns a completed order by id.
func (s *DefaultCheckoutService) GetOrder(orderID string) (*models.Order, error) {
	return s.Store.Order(orderID)
}

// locationRef resolves a location id for slot denormalization. Lookup
// failures are swallowed: the checkout flow stays available and the slot
// keeps the id with a blank name.
func (s *DefaultCheckoutService) locationRef(ctx context.Context, locationID string) models.LocationRef {
	if locationID == "" {
		return models.LocationRef{}
	}
	loc, err := s.Provider.GetLocation(ctx, locationID)
	if err != nil {
		s.Logger.Warn("location enrichment failed, keeping bare reference",
			zap.String("locationId", locationID), zap.Error(err))
		return models.LocationRef{ID: locationID}
	}
	return models.LocationRef{ID: loc.ID, Name: loc.Name}
}

func durationMinutes(service *models.ServiceVariation) int {
	if service.DurationSeconds <= 0 {
		return defaultDurationMinutes
	}
	return service.DurationSeconds / 60
}
