package models

// CheckoutStatus is the lifecycle state of a checkout session.
type CheckoutStatus string

const (
	CheckoutIncomplete       CheckoutStatus = "incomplete"
	CheckoutReadyForComplete CheckoutStatus = "ready_for_complete"
	CheckoutCompleted        CheckoutStatus = "completed"
)

// LineItemTotals is the computed totals breakdown for a single line item.
// All amounts are integer minor currency units.
type LineItemTotals struct {
	ItemsDiscount int64 `json:"itemsDiscount"`
	Subtotal      int64 `json:"subtotal"`
	Total         int64 `json:"total"`
}

// CheckoutTotals is the computed totals breakdown for a whole session.
type CheckoutTotals struct {
	ItemsDiscount int64 `json:"itemsDiscount"`
	Subtotal      int64 `json:"subtotal"`
	Discount      int64 `json:"discount"`
	Tax           int64 `json:"tax"`
	Total         int64 `json:"total"`
}

// LineItem is one priced entry in a checkout session, referencing a bookable
// service variation.
type LineItem struct {
	ID                 string         `json:"id"`
	ServiceVariationID string         `json:"serviceVariationId"`
	Name               string         `json:"name"`
	UnitPrice          int64          `json:"unitPrice"`
	Quantity           int            `json:"quantity"`
	Totals             LineItemTotals `json:"totals"`
	Extra              map[string]any `json:"extra,omitempty"`
}

// Buyer carries the buyer contact details recorded on a session.
type Buyer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// CheckoutSession is one in-progress checkout instance. Sessions are owned by
// the checkout session store for the process lifetime.
type CheckoutSession struct {
	ID          string         `json:"id"`
	Currency    string         `json:"currency"`
	LineItems   []*LineItem    `json:"lineItems"`
	Appointment Appointment    `json:"appointment"`
	Buyer       *Buyer         `json:"buyer,omitempty"`
	Totals      CheckoutTotals `json:"totals"`
	Status      CheckoutStatus `json:"status"`
	Order       *OrderRef      `json:"order,omitempty"`
}

// Clone returns a deep copy of the session. Used to snapshot session state
// before releasing the per-session lock around outbound provider calls.
func (s *CheckoutSession) Clone() *CheckoutSession {
	out := *s
	out.LineItems = make([]*LineItem, len(s.LineItems))
	for i, li := range s.LineItems {
		cp := *li
		out.LineItems[i] = &cp
	}
	out.Appointment.Slots = make([]*AppointmentSlot, len(s.Appointment.Slots))
	for i, slot := range s.Appointment.Slots {
		cp := *slot
		cp.LineItemIDs = append([]string(nil), slot.LineItemIDs...)
		cp.Options = append([]AppointmentOption(nil), slot.Options...)
		out.Appointment.Slots[i] = &cp
	}
	if s.Buyer != nil {
		b := *s.Buyer
		out.Buyer = &b
	}
	if s.Order != nil {
		o := *s.Order
		out.Order = &o
	}
	return &out
}
