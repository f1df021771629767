// Package payment charges cards through Stripe.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/ajadmin/ajadmin/internal/config"
)

var (
	// ErrNotConfigured is returned by Charge when no secret key is set.
	ErrNotConfigured = errors.New("payment is not configured")

	// ErrInvalidAmount is returned for amounts below one minor unit.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNoPaymentMethod is returned when the payment method id is missing.
	ErrNoPaymentMethod = errors.New("payment method id is required")
)

// Charger charges an amount in minor units against a payment method.
type Charger interface {
	Charge(ctx context.Context, amount int64, paymentMethod string) (string, error)
}

type intents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Stripe creates and confirms payment intents.
type Stripe struct {
	intents     intents
	currency    string
	description string
}

// NewStripe creates a Stripe charger. Without secret key every charge fails with ErrNotConfigured.
func NewStripe(cfg config.Payment) *Stripe {
	s := &Stripe{
		currency:    strings.ToLower(cfg.Currency),
		description: cfg.Description,
	}

	if s.currency == "" {
		s.currency = string(stripe.CurrencyUSD)
	}

	if cfg.SecretKey != "" {
		s.intents = client.New(cfg.SecretKey, nil).PaymentIntents
	}

	return s
}

// Charge creates a confirmed payment intent and returns its id.
func (s *Stripe) Charge(ctx context.Context, amount int64, paymentMethod string) (string, error) {
	if s.intents == nil {
		return "", ErrNotConfigured
	}

	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	if paymentMethod == "" {
		return "", ErrNoPaymentMethod
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	if s.description != "" {
		params.Description = stripe.String(s.description)
	}

	params.Context = ctx

	intent, err := s.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	log.Info().Str("intent", intent.ID).Int64("amount", amount).Str("status", string(intent.Status)).
		Msg("Payment intent confirmed")

	return intent.ID, nil
}
