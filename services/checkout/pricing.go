package checkout

import (
	"math"

	"bookify/models"
)

// RecalculateTotals recomputes per-line-item and session totals in place from
// the session's current line items, and resets the status to incomplete. It
// must run after every mutation that changes the priced composition of a
// session. All amounts are integer minor currency units; recomputation from
// the same inputs always yields the same outputs.
func RecalculateTotals(s *models.CheckoutSession, taxRate float64) {
	s.Status = models.CheckoutIncomplete

	var itemsDiscount, subtotal int64
	for _, li := range s.LineItems {
		base := li.UnitPrice * int64(li.Quantity)
		discount := lineItemDiscount(li)
		li.Totals = models.LineItemTotals{
			ItemsDiscount: discount,
			Subtotal:      base - discount,
			Total:         base - discount,
		}
		itemsDiscount += discount
		subtotal += base - discount
	}

	tax := roundHalfUp(float64(subtotal) * taxRate)
	s.Totals = models.CheckoutTotals{
		ItemsDiscount: itemsDiscount,
		Subtotal:      subtotal,
		Discount:      sessionDiscount(s),
		Tax:           tax,
		Total:         subtotal + tax,
	}
}

// lineItemDiscount is the extension point for future per-item discount rules.
func lineItemDiscount(_ *models.LineItem) int64 { return 0 }

// sessionDiscount is the extension point for future session-level discounts.
func sessionDiscount(_ *models.CheckoutSession) int64 { return 0 }

// roundHalfUp rounds to the nearest minor unit, half up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
