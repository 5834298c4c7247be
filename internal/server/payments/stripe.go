package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/jpcdigital/ebookpay/internal/common"
	"github.com/jpcdigital/ebookpay/internal/logging"
)

// StripeClient implements Client on top of the Stripe PaymentIntents API.
// It holds its own client.API instance instead of setting the package-level
// stripe.Key, so tests and multi-tenant setups can inject their own.
type StripeClient struct {
	api    *client.API
	logger logging.Logger
}

// NewStripeClient builds a StripeClient for the given secret key.
func NewStripeClient(secretKey string, l logging.Logger) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api, logger: l.With("module", "stripe")}
}

// newWithAPI is the injection point used by tests to swap the backend.
func newWithAPI(api *client.API, l logging.Logger) *StripeClient {
	return &StripeClient{api: api, logger: l.With("module", "stripe")}
}

func (c *StripeClient) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.logger.Error(ctx, "payment intent creation failed", "error", err)
		return nil, fmt.Errorf("create payment intent: %w", common.ErrUpstream)
	}

	return fromStripeIntent(pi), nil
}

func (c *StripeClient) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(id, params)
	if err != nil {
		c.logger.Error(ctx, "payment intent retrieval failed", "intent_id", id, "error", err)
		return nil, fmt.Errorf("retrieve payment intent: %w", common.ErrUpstream)
	}

	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       Status(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}
