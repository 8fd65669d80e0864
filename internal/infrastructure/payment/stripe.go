package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeProvider creates payment intents against the Stripe API. The rest
// of the system only ever sees the resulting client secret; card data never
// passes through this process.
type StripeProvider struct{}

// NewStripeProvider sets the API key for the Stripe SDK and returns the
// provider. The SDK client is package-global and safe for concurrent use.
func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{}
}

// CreateIntent registers a payment intent for amountMinor units of currency
// and returns its client secret. Provider errors surface as-is; there is no
// retry at this layer.
func (p *StripeProvider) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
