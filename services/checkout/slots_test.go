package checkout

import (
	"testing"
	"time"

	"bookify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithItems(ids ...string) *models.CheckoutSession {
	s := &models.CheckoutSession{ID: "s1", Currency: "USD"}
	for _, id := range ids {
		s.LineItems = append(s.LineItems, &models.LineItem{
			ID: id, ServiceVariationID: "var-" + id, UnitPrice: 1000, Quantity: 1,
		})
	}
	return s
}

// assertSlotInvariants checks that every slot references only existing line
// items, that no line item appears in more than one slot, and that no slot is
// empty.
func assertSlotInvariants(t *testing.T, s *models.CheckoutSession) {
	t.Helper()
	known := make(map[string]bool)
	for _, li := range s.LineItems {
		known[li.ID] = true
	}
	seen := make(map[string]string)
	for _, slot := range s.Appointment.Slots {
		assert.NotEmpty(t, slot.LineItemIDs, "slot %s has no line items", slot.ID)
		for _, id := range slot.LineItemIDs {
			assert.True(t, known[id], "slot %s references unknown line item %s", slot.ID, id)
			prev, dup := seen[id]
			assert.False(t, dup, "line item %s is in slots %s and %s", id, prev, slot.ID)
			seen[id] = slot.ID
		}
	}
}

func TestAttachOrUpdateSlot_CreatesThenUpdatesInPlace(t *testing.T) {
	s := sessionWithItems("li-1")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	loc := models.LocationRef{ID: "loc-1", Name: "Downtown"}

	first := attachOrUpdateSlot(s, "li-1", loc, "staff-1", start, 30, "")
	require.Len(t, s.Appointment.Slots, 1)

	later := start.Add(2 * time.Hour)
	second := attachOrUpdateSlot(s, "li-1", loc, "staff-2", later, 30, "note")

	// Repeating the attach must not grow the slot list.
	require.Len(t, s.Appointment.Slots, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "note", second.Notes)
	require.Len(t, second.Options, 1)
	assert.Equal(t, later, second.Options[0].StartTime)
	assert.Equal(t, "staff-2", second.Options[0].StaffID)
	assert.Equal(t, second.Options[0].ID, second.SelectedOptionID)
	assertSlotInvariants(t, s)
}

func TestAttachOrUpdateSlot_OptionEndTime(t *testing.T) {
	s := sessionWithItems("li-1")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	slot := attachOrUpdateSlot(s, "li-1", models.LocationRef{ID: "loc-1"}, "", start, 45, "")

	require.Len(t, slot.Options, 1)
	require.NotNil(t, slot.Options[0].EndTime)
	assert.Equal(t, start.Add(45*time.Minute), *slot.Options[0].EndTime)
	assert.Equal(t, 45, slot.Options[0].DurationMinutes)
}

func TestApplySlotRequests_DropsUnknownLineItems(t *testing.T) {
	s := sessionWithItems("li-1")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	applied := applySlotRequests(s, []resolvedSlotRequest{{
		req: models.SlotRequest{
			LineItemIDs: []string{"li-1", "li-ghost", "li-1"},
			StartTime:   start,
		},
		location:        models.LocationRef{ID: "loc-1"},
		durationMinutes: 60,
	}})

	require.Len(t, applied, 1)
	assert.Equal(t, []string{"li-1"}, applied[0].LineItemIDs)
	assertSlotInvariants(t, s)
}

func TestApplySlotRequests_SkipsRequestWithNoValidItems(t *testing.T) {
	s := sessionWithItems("li-1")

	applied := applySlotRequests(s, []resolvedSlotRequest{{
		req:             models.SlotRequest{LineItemIDs: []string{"li-ghost"}},
		durationMinutes: 60,
	}})

	assert.Empty(t, applied)
	assert.Empty(t, s.Appointment.Slots)
}

func TestApplySlotRequests_ClaimsItemsFromOtherSlots(t *testing.T) {
	s := sessionWithItems("li-1", "li-2")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Slot A holds both items; a new request claims li-2 for its own slot.
	applySlotRequests(s, []resolvedSlotRequest{{
		req: models.SlotRequest{
			ID:          "slot-a",
			LineItemIDs: []string{"li-1", "li-2"},
			StartTime:   start,
		},
		durationMinutes: 60,
	}})
	require.Len(t, s.Appointment.Slots, 1)

	applySlotRequests(s, []resolvedSlotRequest{{
		req: models.SlotRequest{
			LineItemIDs: []string{"li-2"},
			StartTime:   start.Add(time.Hour),
		},
		durationMinutes: 60,
	}})

	require.Len(t, s.Appointment.Slots, 2)
	assert.Equal(t, []string{"li-1"}, s.Appointment.Slots[0].LineItemIDs)
	assert.Equal(t, []string{"li-2"}, s.Appointment.Slots[1].LineItemIDs)
	assertSlotInvariants(t, s)
}

func TestApplySlotRequests_ClaimDeletesEmptiedSlot(t *testing.T) {
	s := sessionWithItems("li-1")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	applySlotRequests(s, []resolvedSlotRequest{{
		req:             models.SlotRequest{ID: "slot-a", LineItemIDs: []string{"li-1"}, StartTime: start},
		durationMinutes: 60,
	}})
	// A fresh slot claims the only member of slot-a, which must then be
	// deleted.
	applySlotRequests(s, []resolvedSlotRequest{{
		req:             models.SlotRequest{LineItemIDs: []string{"li-1"}, StartTime: start.Add(time.Hour)},
		durationMinutes: 60,
	}})

	require.Len(t, s.Appointment.Slots, 1)
	assert.NotEqual(t, "slot-a", s.Appointment.Slots[0].ID)
	assertSlotInvariants(t, s)
}

func TestApplySlotRequests_UpdatesKnownSlotWholesale(t *testing.T) {
	s := sessionWithItems("li-1", "li-2")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	applySlotRequests(s, []resolvedSlotRequest{{
		req:             models.SlotRequest{ID: "slot-a", LineItemIDs: []string{"li-1"}, StartTime: start},
		durationMinutes: 60,
	}})
	applySlotRequests(s, []resolvedSlotRequest{{
		req: models.SlotRequest{
			ID:          "slot-a",
			LineItemIDs: []string{"li-2"},
			StartTime:   start.Add(time.Hour),
			Notes:       "updated",
		},
		location:        models.LocationRef{ID: "loc-2"},
		durationMinutes: 30,
	}})

	require.Len(t, s.Appointment.Slots, 1)
	slot := s.Appointment.Slots[0]
	assert.Equal(t, "slot-a", slot.ID)
	assert.Equal(t, []string{"li-2"}, slot.LineItemIDs)
	assert.Equal(t, "loc-2", slot.Location.ID)
	assert.Equal(t, "updated", slot.Notes)
	assertSlotInvariants(t, s)
}

func TestApplySlotRequests_RetainsRequestedID(t *testing.T) {
	s := sessionWithItems("li-1")

	applied := applySlotRequests(s, []resolvedSlotRequest{{
		req:             models.SlotRequest{ID: "client-slot-7", LineItemIDs: []string{"li-1"}},
		durationMinutes: 60,
	}})

	require.Len(t, applied, 1)
	assert.Equal(t, "client-slot-7", applied[0].ID)
}

func TestRemoveLineItemFromSlots_CascadesAndDeletesEmpty(t *testing.T) {
	s := sessionWithItems("li-1", "li-2", "li-3")
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	applySlotRequests(s, []resolvedSlotRequest{
		{req: models.SlotRequest{ID: "slot-a", LineItemIDs: []string{"li-1", "li-2"}, StartTime: start}, durationMinutes: 60},
		{req: models.SlotRequest{ID: "slot-b", LineItemIDs: []string{"li-3"}, StartTime: start}, durationMinutes: 60},
	})
	require.Len(t, s.Appointment.Slots, 2)

	// Removing one of two members keeps the slot.
	removeLineItemFromSlots(s, "li-2")
	require.Len(t, s.Appointment.Slots, 2)
	assert.Equal(t, []string{"li-1"}, s.Appointment.Slots[0].LineItemIDs)

	// Removing a sole member deletes the slot.
	removeLineItemFromSlots(s, "li-3")
	require.Len(t, s.Appointment.Slots, 1)
	assert.Equal(t, "slot-a", s.Appointment.Slots[0].ID)
}

func TestFilterKnownLineItems_PreservesOrderAndDedupes(t *testing.T) {
	s := sessionWithItems("li-1", "li-2")

	out := filterKnownLineItems(s, []string{"li-2", "li-x", "li-1", "li-2"})

	assert.Equal(t, []string{"li-2", "li-1"}, out)
}
