// Package payments defines the payment processor client used by the
// checkout flow and its Stripe-backed implementation. The processor owns
// the whole intent lifecycle; this package only creates intents and reads
// their current status.
package payments

import "context"

// Status is the processor-reported lifecycle status of a payment intent.
// Values are carried verbatim from the processor; only StatusSucceeded has
// authorization semantics in this system.
type Status string

const (
	StatusSucceeded             Status = "succeeded"
	StatusRequiresPaymentMethod Status = "requires_payment_method"
	StatusRequiresConfirmation  Status = "requires_confirmation"
	StatusRequiresAction        Status = "requires_action"
	StatusProcessing            Status = "processing"
	StatusCanceled              Status = "canceled"
)

// Succeeded reports whether the intent reached the succeeded terminal state.
func (s Status) Succeeded() bool { return s == StatusSucceeded }

// Intent is a read-only snapshot of a processor-side payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       Status
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

// Client is the capability-typed processor interface. Both operations are
// remote calls; neither mutates processor state beyond intent creation, so
// RetrieveIntent is safe to call on every download request.
type Client interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}
