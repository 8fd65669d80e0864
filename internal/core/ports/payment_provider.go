package ports

import "context"

// PaymentProvider abstracts the external payment-intent API. The service
// layer never handles card data; it only forwards an amount in integer
// minor units and hands the resulting client secret back to the caller.
type PaymentProvider interface {
	// CreateIntent registers a payment intent for amountMinor units of
	// currency and returns the client secret used to complete the charge
	// client-side.
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}
