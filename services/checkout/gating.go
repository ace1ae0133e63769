package checkout

import (
	"bookify/models"

	"go.uber.org/zap"
)

// GateResult is the tagged outcome of the payment readiness gate: either a
// ready session, or the list of deficiencies keeping it incomplete.
// Deficiencies are a normal successful response, not an error.
type GateResult struct {
	Session      *models.CheckoutSession `json:"session,omitempty"`
	Deficiencies []string                `json:"deficiencies,omitempty"`
}

// Ready reports whether the gate passed.
func (r GateResult) Ready() bool { return len(r.Deficiencies) == 0 }

// GateForPayment records the buyer on the session and advances it to
// ready_for_complete when every line item is covered by an appointment slot
// and a buyer email is present. Calling it on an already-ready session is a
// no-op success.
func (s *DefaultCheckoutService) GateForPayment(sessionID string, buyer models.Buyer) (GateResult, error) {
	var result GateResult
	_, err := s.Store.Update(sessionID, func(session *models.CheckoutSession) error {
		if buyer.Email != "" {
			b := buyer
			session.Buyer = &b
		}

		if session.Status == models.CheckoutReadyForComplete {
			result = GateResult{Session: session.Clone()}
			return nil
		}

		deficiencies := gateDeficiencies(session)
		if len(deficiencies) > 0 {
			s.Logger.Info("payment gate held",
				zap.String("sessionId", sessionID),
				zap.Strings("deficiencies", deficiencies))
			result = GateResult{Deficiencies: deficiencies}
			return nil
		}

		RecalculateTotals(session, s.TaxRate)
		session.Status = models.CheckoutReadyForComplete
		result = GateResult{Session: session.Clone()}
		return nil
	})
	if err != nil {
		return GateResult{}, err
	}
	return result, nil
}

func gateDeficiencies(session *models.CheckoutSession) []string {
	var deficiencies []string

	if session.Buyer == nil || session.Buyer.Email == "" {
		deficiencies = append(deficiencies, "Provide a buyer email address")
	}

	if len(session.Appointment.Slots) > 0 {
		scheduled := make(map[string]bool)
		for _, slot := range session.Appointment.Slots {
			for _, id := range slot.LineItemIDs {
				scheduled[id] = true
			}
		}
		for _, li := range session.LineItems {
			if !scheduled[li.ID] {
				deficiencies = append(deficiencies, "Some services don't have appointments scheduled")
				break
			}
		}
	} else if len(session.LineItems) > 0 {
		deficiencies = append(deficiencies, "No appointments scheduled for services")
	}

	return deficiencies
}
