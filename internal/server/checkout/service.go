// Package checkout contains the payment-gated download flow: intent
// issuance, payment confirmation, and the download authorization gate.
//
// The service is stateless across requests. Authorization is a per-request
// decision derived by re-querying the processor; a succeeded status is
// never cached, since a failed intent can later succeed and the intent id
// is the only credential a client holds.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jpcdigital/ebookpay/internal/common"
	"github.com/jpcdigital/ebookpay/internal/logging"
	"github.com/jpcdigital/ebookpay/internal/server/assets"
	"github.com/jpcdigital/ebookpay/internal/server/config"
	"github.com/jpcdigital/ebookpay/internal/server/payments"
)

// DownloadPath is the route the download gate is mounted on. Confirm embeds
// it in the download reference handed back to the client.
const DownloadPath = "/download-ebook"

const productTag = "ebook"

// Service orchestrates the processor client and the asset store.
type Service struct {
	processor payments.Client
	assets    assets.Store
	currency  string
	logger    logging.Logger
}

func NewService(p payments.Client, st assets.Store, cfg *config.Config, l logging.Logger) *Service {
	return &Service{
		processor: p,
		assets:    st,
		currency:  cfg.Currency,
		logger:    l.With("module", "checkout"),
	}
}

// IntentHandle is what the client needs to complete payment in the browser
// widget: the intent id and the opaque client secret.
type IntentHandle struct {
	IntentID     string
	ClientSecret string
}

// CreateIntent validates the requested amount and opens a payment intent
// with the processor. The currency is fixed by configuration; successURL,
// when non-empty, is recorded in the intent metadata.
func (s *Service) CreateIntent(ctx context.Context, amountCents int64, successURL string) (*IntentHandle, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive number of cents", common.ErrInvalidRequest)
	}

	metadata := map[string]string{"product": productTag}
	if successURL != "" {
		metadata["success_url"] = successURL
	}

	intent, err := s.processor.CreateIntent(ctx, amountCents, s.currency, metadata)
	if err != nil {
		return nil, err
	}

	return &IntentHandle{IntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// Confirm checks the current status of the intent and, once succeeded,
// returns the download reference for it. An unpaid intent is an expected
// outcome, reported as common.ErrPaymentIncomplete.
func (s *Service) Confirm(ctx context.Context, intentID string) (string, error) {
	if intentID == "" {
		return "", fmt.Errorf("%w: payment intent id is required", common.ErrInvalidRequest)
	}

	intent, err := s.processor.RetrieveIntent(ctx, intentID)
	if err != nil {
		return "", err
	}

	if !intent.Status.Succeeded() {
		s.logger.Info(ctx, "payment not successful yet", "intent_id", intentID, "status", string(intent.Status))
		return "", common.ErrPaymentIncomplete
	}

	return DownloadPath + "?payment_intent=" + url.QueryEscape(intentID), nil
}

// AuthorizeDownload re-verifies the intent status with the processor and,
// only if succeeded, opens the e-book for streaming. It never trusts a
// prior Confirm call: the id is the only credential, so the source of
// truth is consulted on every access.
func (s *Service) AuthorizeDownload(ctx context.Context, intentID string) (*assets.Asset, error) {
	if intentID == "" {
		return nil, fmt.Errorf("%w: payment intent id is required", common.ErrInvalidRequest)
	}

	intent, err := s.processor.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if !intent.Status.Succeeded() {
		s.logger.Info(ctx, "download refused, payment not completed", "intent_id", intentID, "status", string(intent.Status))
		return nil, common.ErrPaymentNotCompleted
	}

	asset, err := s.assets.Open(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// deployment misconfiguration, not a client error
			s.logger.Error(ctx, "ebook asset is missing", "error", err)
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "ebook asset open failed", "error", err)
		return nil, fmt.Errorf("open ebook: %w", common.ErrTransfer)
	}

	return asset, nil
}
