package models

import "time"

// LocationRef is a minimal location reference denormalized onto a slot. When
// the location lookup fails during enrichment the name is left blank and the
// id is retained.
type LocationRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppointmentOption is one concrete time/staff choice for a slot.
type AppointmentOption struct {
	ID              string     `json:"id"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	StaffID         string     `json:"staffId,omitempty"`
	StaffName       string     `json:"staffName,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
}

// AppointmentSlot groups one or more line items under a single
// time/location/staff assignment. Every line item id referenced here must
// exist in the owning session, and no line item belongs to more than one slot.
type AppointmentSlot struct {
	ID               string              `json:"id"`
	LineItemIDs      []string            `json:"lineItemIds"`
	Location         LocationRef         `json:"location"`
	Options          []AppointmentOption `json:"options,omitempty"`
	SelectedOptionID string              `json:"selectedOptionId,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	Extra            map[string]any      `json:"extra,omitempty"`
}

// Appointment is the container for a session's appointment slots.
type Appointment struct {
	Slots []*AppointmentSlot `json:"slots"`
}

// SlotRequest describes one requested slot assignment. An empty or unknown ID
// creates a new slot; a known ID updates that slot in place, replacing its
// line item set wholesale.
type SlotRequest struct {
	ID          string         `json:"id,omitempty"`
	LineItemIDs []string       `json:"lineItemIds"`
	LocationID  string         `json:"locationId"`
	StaffID     string         `json:"staffId,omitempty"`
	StartTime   time.Time      `json:"startTime"`
	Notes       string         `json:"notes,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}
