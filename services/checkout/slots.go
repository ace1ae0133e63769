package checkout

import (
	"time"

	"bookify/models"

	"github.com/google/uuid"
)

// defaultDurationMinutes is used when a slot's duration cannot be resolved
// from the referenced service definition.
const defaultDurationMinutes = 60

// resolvedSlotRequest is a SlotRequest whose outbound lookups (location
// enrichment, service duration) have already been performed, so applying it
// needs no provider calls under the session lock.
type resolvedSlotRequest struct {
	req             models.SlotRequest
	location        models.LocationRef
	durationMinutes int
}

func newAppointmentOption(start time.Time, staffID string, durationMinutes int) models.AppointmentOption {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return models.AppointmentOption{
		ID:              uuid.New().String(),
		StartTime:       start,
		EndTime:         &end,
		StaffID:         staffID,
		DurationMinutes: durationMinutes,
	}
}

// attachOrUpdateSlot assigns appointment details to the slot covering
// lineItemID, creating a new single-item slot when none covers it. Updating
// an existing slot replaces its location, options, selection, and notes in
// place while preserving the slot identity, so repeated calls with identical
// arguments yield one slot.
func attachOrUpdateSlot(s *models.CheckoutSession, lineItemID string, location models.LocationRef, staffID string, start time.Time, durationMinutes int, notes string) *models.AppointmentSlot {
	option := newAppointmentOption(start, staffID, durationMinutes)

	for _, slot := range s.Appointment.Slots {
		if containsString(slot.LineItemIDs, lineItemID) {
			slot.Location = location
			slot.Options = []models.AppointmentOption{option}
			slot.SelectedOptionID = option.ID
			slot.Notes = notes
			return slot
		}
	}

	slot := &models.AppointmentSlot{
		ID:               uuid.New().String(),
		LineItemIDs:      []string{lineItemID},
		Location:         location,
		Options:          []models.AppointmentOption{option},
		SelectedOptionID: option.ID,
		Notes:            notes,
	}
	s.Appointment.Slots = append(s.Appointment.Slots, slot)
	return slot
}

// applySlotRequests applies each resolved request independently and in order.
// A request targeting a known slot id updates that slot in place, replacing
// its line item set wholesale; otherwise a new slot is created (retaining the
// requested id when one was supplied). Line item ids that do not exist in the
// session are dropped; a request left with no valid line items is skipped.
// Returns the slots that were created or updated.
func applySlotRequests(s *models.CheckoutSession, reqs []resolvedSlotRequest) []*models.AppointmentSlot {
	applied := make([]*models.AppointmentSlot, 0, len(reqs))

	for _, r := range reqs {
		lineItemIDs := filterKnownLineItems(s, r.req.LineItemIDs)
		if len(lineItemIDs) == 0 {
			continue
		}

		var target *models.AppointmentSlot
		if r.req.ID != "" {
			for _, slot := range s.Appointment.Slots {
				if slot.ID == r.req.ID {
					target = slot
					break
				}
			}
		}

		// A line item belongs to at most one slot: claim the assigned items
		// from every other slot before wiring them to the target.
		claimLineItems(s, lineItemIDs, target)

		option := newAppointmentOption(r.req.StartTime, r.req.StaffID, r.durationMinutes)
		if target != nil {
			target.LineItemIDs = lineItemIDs
			target.Location = r.location
			target.Options = []models.AppointmentOption{option}
			target.SelectedOptionID = option.ID
			target.Notes = r.req.Notes
			target.Extra = r.req.Extra
			applied = append(applied, target)
			continue
		}

		id := r.req.ID
		if id == "" {
			id = uuid.New().String()
		}
		slot := &models.AppointmentSlot{
			ID:               id,
			LineItemIDs:      lineItemIDs,
			Location:         r.location,
			Options:          []models.AppointmentOption{option},
			SelectedOptionID: option.ID,
			Notes:            r.req.Notes,
			Extra:            r.req.Extra,
		}
		s.Appointment.Slots = append(s.Appointment.Slots, slot)
		applied = append(applied, slot)
	}

	return applied
}

// claimLineItems removes the given line items from every slot except keep,
// dropping slots left with no members.
func claimLineItems(s *models.CheckoutSession, lineItemIDs []string, keep *models.AppointmentSlot) {
	claimed := make(map[string]bool, len(lineItemIDs))
	for _, id := range lineItemIDs {
		claimed[id] = true
	}

	remaining := s.Appointment.Slots[:0]
	for _, slot := range s.Appointment.Slots {
		if slot != keep {
			kept := slot.LineItemIDs[:0]
			for _, id := range slot.LineItemIDs {
				if !claimed[id] {
					kept = append(kept, id)
				}
			}
			slot.LineItemIDs = kept
			if len(kept) == 0 {
				continue
			}
		}
		remaining = append(remaining, slot)
	}
	s.Appointment.Slots = remaining
}

// removeLineItemFromSlots cascades a line item removal into the appointment
// slots: the id is dropped from any slot referencing it, and a slot left with
// an empty member set is deleted.
func removeLineItemFromSlots(s *models.CheckoutSession, lineItemID string) {
	remaining := s.Appointment.Slots[:0]
	for _, slot := range s.Appointment.Slots {
		kept := slot.LineItemIDs[:0]
		for _, id := range slot.LineItemIDs {
			if id != lineItemID {
				kept = append(kept, id)
			}
		}
		slot.LineItemIDs = kept
		if len(kept) > 0 {
			remaining = append(remaining, slot)
		}
	}
	s.Appointment.Slots = remaining
}

// filterKnownLineItems keeps, in request order and without duplicates, only
// the ids that exist among the session's line items.
func filterKnownLineItems(s *models.CheckoutSession, ids []string) []string {
	known := make(map[string]bool, len(s.LineItems))
	for _, li := range s.LineItems {
		known[li.ID] = true
	}
	var out []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if known[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func containsString(list []string, target string) bool {
	for _, v := range list {
		if v == target {
			return true
		}
	}
	return false
}
