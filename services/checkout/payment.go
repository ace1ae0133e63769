package checkout

import (
	"context"
	"fmt"
	"strings"

	"bookify/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentIntent is the opaque handle returned by the external payment
// processor. The core never touches payment instruments.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentProcessor is the single opaque call out to the payment processor.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount int64, currency, sessionID string) (*PaymentIntent, error)
}

// StripeProcessor implements PaymentProcessor against Stripe. The API key is
// set process-wide on the stripe package in main.
type StripeProcessor struct {
	Logger *zap.Logger
}

func (p *StripeProcessor) CreateIntent(_ context.Context, amount int64, currency, sessionID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("checkoutSessionId", sessionID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	p.Logger.Info("payment intent created",
		zap.String("sessionId", sessionID),
		zap.String("paymentIntentId", intent.ID),
		zap.Int64("amount", amount))
	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     currency,
	}, nil
}

// CreatePaymentIntent creates a processor payment intent for a gated
// session's total.
func (s *DefaultCheckoutService) CreatePaymentIntent(ctx context.Context, sessionID string) (*PaymentIntent, error) {
	var amount int64
	var currency string
	err := s.Store.View(sessionID, func(session *models.CheckoutSession) error {
		if session.Status != models.CheckoutReadyForComplete {
			return &InvalidStateError{
				Status:  session.Status,
				Message: "session must pass the payment gate before payment",
			}
		}
		amount = session.Totals.Total
		currency = session.Currency
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Payments.CreateIntent(ctx, amount, currency, sessionID)
}
