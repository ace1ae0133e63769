package checkout

import (
	"context"
	"testing"
	"time"

	"bookify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedSession builds a session with one scheduled line item, ready to pass
// the payment gate once a buyer is supplied.
func gatedSession(t *testing.T, svc *DefaultCheckoutService) *models.CheckoutSession {
	t.Helper()
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	session, err := svc.AddToCheckout(ctx, AddToCheckoutInput{
		ServiceVariationID: "var-haircut",
		LocationID:         "loc-1",
		StaffID:            "staff-1",
		StartTime:          &start,
	})
	require.NoError(t, err)
	return session
}

func TestGateForPayment_MissingBuyerEmail(t *testing.T) {
	svc := newTestService(seededProvider())
	session := gatedSession(t, svc)

	result, err := svc.GateForPayment(session.ID, models.Buyer{})

	require.NoError(t, err)
	assert.False(t, result.Ready())
	assert.Contains(t, result.Deficiencies, "Provide a buyer email address")
	assert.Nil(t, result.Session)
}

func TestGateForPayment_NoAppointments(t *testing.T) {
	svc := newTestService(seededProvider())
	session, err := svc.AddToCheckout(context.Background(), AddToCheckoutInput{ServiceVariationID: "var-haircut"})
	require.NoError(t, err)

	result, err := svc.GateForPayment(session.ID, models.Buyer{Email: "amelia@example.com"})

	require.NoError(t, err)
	assert.False(t, result.Ready())
	assert.Contains(t, result.Deficiencies, "No appointments scheduled for services")
}

func TestGateForPayment_UncoveredLineItem(t *testing.T) {
	svc := newTestService(seededProvider())
	ctx := context.Background()
	session := gatedSession(t, svc)

	// A second item without a slot keeps the gate held.
	_, err := svc.AddToCheckout(ctx, AddToCheckoutInput{
		SessionID:          session.ID,
		ServiceVariationID: "var-massage",
	})
	require.NoError(t, err)

	result, err := svc.GateForPayment(session.ID, models.Buyer{Email: "amelia@example.com"})

	require.NoError(t, err)
	assert.False(t, result.Ready())
	assert.Contains(t, result.Deficiencies, "Some services don't have appointments scheduled")
}

func TestGateForPayment_Passes(t *testing.T) {
	svc := newTestService(seededProvider())
	session := gatedSession(t, svc)

	result, err := svc.GateForPayment(session.ID, models.Buyer{Email: "amelia@example.com", FirstName: "Amelia"})

	require.NoError(t, err)
	assert.True(t, result.Ready())
	require.NotNil(t, result.Session)
	assert.Equal(t, models.CheckoutReadyForComplete, result.Session.Status)
	require.NotNil(t, result.Session.Buyer)
	assert.Equal(t, "amelia@example.com", result.Session.Buyer.Email)
}

func TestGateForPayment_AlreadyReadyIsNoOp(t *testing.T) {
	svc := newTestService(seededProvider())
	session := gatedSession(t, svc)

	first, err := svc.GateForPayment(session.ID, models.Buyer{Email: "amelia@example.com"})
	require.NoError(t, err)
	require.True(t, first.Ready())

	second, err := svc.GateForPayment(session.ID, models.Buyer{})

	require.NoError(t, err)
	assert.True(t, second.Ready())
	assert.Equal(t, models.CheckoutReadyForComplete, second.Session.Status)
	// The buyer recorded the first time survives the no-op.
	assert.Equal(t, "amelia@example.com", second.Session.Buyer.Email)
}

func TestGateForPayment_MutationResetsReadiness(t *testing.T) {
	svc := newTestService(seededProvider())
	ctx := context.Background()
	session := gatedSession(t, svc)

	result, err := svc.GateForPayment(session.ID, models.Buyer{Email: "amelia@example.com"})
	require.NoError(t, err)
	require.True(t, result.Ready())

	// Any composition change drops the session back to incomplete.
	after, err := svc.AddToCheckout(ctx, AddToCheckoutInput{
		SessionID:          session.ID,
		ServiceVariationID: "var-haircut",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CheckoutIncomplete, after.Status)
}

func TestGateForPayment_UnknownSession(t *testing.T) {
	svc := newTestService(seededProvider())

	_, err := svc.GateForPayment("nope", models.Buyer{Email: "amelia@example.com"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestCreatePaymentIntent_RequiresReadySession(t *testing.T) {
	svc := newTestService(seededProvider())
	session := gatedSession(t, svc)

	_, err := svc.CreatePaymentIntent(context.Background(), session.ID)

	var ise *InvalidStateError
	require.ErrorAs(t, err, &ise)
}

func TestCreatePaymentIntent_UsesGatedTotal(t *testing.T) {
	mock := seededProvider()
	svc := newTestService(mock)
	payments := &MockPaymentProcessor{}
	svc.Payments = payments
	session := gatedSession(t, svc)

	result, err := svc.GateForPayment(session.ID, models.Buyer{Email: "amelia@example.com"})
	require.NoError(t, err)
	require.True(t, result.Ready())

	intent, err := svc.CreatePaymentIntent(context.Background(), session.ID)

	require.NoError(t, err)
	assert.Equal(t, result.Session.Totals.Total, intent.Amount)
	assert.Equal(t, result.Session.Totals.Total, payments.Amount)
	assert.Equal(t, "USD", payments.Currency)
}
