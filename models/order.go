package models

import "time"

// OrderRef is the order confirmation attached to a completed session.
type OrderRef struct {
	ID           string `json:"id"`
	PermalinkURL string `json:"permalinkUrl,omitempty"`
}

// Order is the immutable record produced by finalizing a session. BookingIDs
// may be shorter than the session's slot coverage when individual booking
// creations failed; that mismatch is the signal for manual follow-up.
type Order struct {
	ID         string           `json:"id"`
	Checkout   *CheckoutSession `json:"checkout"`
	BookingIDs []string         `json:"bookingIds"`
	CreatedAt  time.Time        `json:"createdAt"`
}
