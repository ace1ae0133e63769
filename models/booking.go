package models

import "time"

// BookingSegment is one service/staff portion of a confirmed booking.
type BookingSegment struct {
	ServiceVariationID string `json:"serviceVariationId"`
	ServiceName        string `json:"serviceName,omitempty"`
	StaffID            string `json:"staffId,omitempty"`
	StaffName          string `json:"staffName,omitempty"`
	DurationMinutes    int    `json:"durationMinutes"`
}

// Booking is a confirmed real-world booking owned by the booking provider.
type Booking struct {
	ID              string           `json:"id"`
	Location        LocationRef      `json:"location"`
	StartTime       time.Time        `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Segments        []BookingSegment `json:"segments,omitempty"`
	CustomerNotes   string           `json:"customerNotes,omitempty"`
}

// CreateBookingRequest carries everything the provider needs to create a
// single booking.
type CreateBookingRequest struct {
	LocationID         string    `json:"locationId"`
	StartTime          time.Time `json:"startTime"`
	ServiceVariationID string    `json:"serviceVariationId"`
	Buyer              Buyer     `json:"buyer"`
	StaffID            string    `json:"staffId,omitempty"`
	Notes              string    `json:"notes,omitempty"`
}
