package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcdigital/ebookpay/internal/common"
	"github.com/jpcdigital/ebookpay/internal/logging"
	"github.com/jpcdigital/ebookpay/internal/server/assets"
	"github.com/jpcdigital/ebookpay/internal/server/config"
	"github.com/jpcdigital/ebookpay/internal/server/payments"
)

// --- fakes ---

type createCall struct {
	amount   int64
	currency string
	metadata map[string]string
}

type fakeProcessor struct {
	createOut *payments.Intent
	createErr error

	retrieveOut *payments.Intent
	retrieveErr error

	creates   []createCall
	retrieves []string
}

func (f *fakeProcessor) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*payments.Intent, error) {
	f.creates = append(f.creates, createCall{amount: amountCents, currency: currency, metadata: metadata})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeProcessor) RetrieveIntent(ctx context.Context, id string) (*payments.Intent, error) {
	f.retrieves = append(f.retrieves, id)
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.retrieveOut, nil
}

type fakeStore struct {
	openErr error
	body    string
	opens   int
}

func (f *fakeStore) Open(ctx context.Context) (*assets.Asset, error) {
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &assets.Asset{
		Content:     io.NopCloser(strings.NewReader(f.body)),
		Size:        int64(len(f.body)),
		ContentType: "application/pdf",
	}, nil
}

func newService(t *testing.T, p payments.Client, st assets.Store) *Service {
	t.Helper()
	cfg := &config.Config{Currency: "eur"}
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(p, st, cfg, l)
}

// --- CreateIntent ---

func TestCreateIntent_RejectsNonPositiveAmounts(t *testing.T) {
	proc := &fakeProcessor{}
	svc := newService(t, proc, &fakeStore{})

	for _, amount := range []int64{0, -1, -200} {
		_, err := svc.CreateIntent(context.Background(), amount, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInvalidRequest))
	}

	assert.Empty(t, proc.creates, "processor must never be called for invalid amounts")
}

func TestCreateIntent_PassesAmountCurrencyAndMetadata(t *testing.T) {
	proc := &fakeProcessor{
		createOut: &payments.Intent{ID: "pi_123", ClientSecret: "secret_abc"},
	}
	svc := newService(t, proc, &fakeStore{})

	handle, err := svc.CreateIntent(context.Background(), 200, "https://api.example/download-ebook")
	require.NoError(t, err)

	require.Len(t, proc.creates, 1)
	call := proc.creates[0]
	assert.Equal(t, int64(200), call.amount)
	assert.Equal(t, "eur", call.currency)
	assert.Equal(t, "ebook", call.metadata["product"])
	assert.Equal(t, "https://api.example/download-ebook", call.metadata["success_url"])

	assert.Equal(t, "pi_123", handle.IntentID)
	assert.Equal(t, "secret_abc", handle.ClientSecret)
}

func TestCreateIntent_UpstreamFailure(t *testing.T) {
	proc := &fakeProcessor{createErr: common.ErrUpstream}
	svc := newService(t, proc, &fakeStore{})

	_, err := svc.CreateIntent(context.Background(), 200, "")
	assert.True(t, errors.Is(err, common.ErrUpstream))
}

// --- Confirm ---

func TestConfirm_MissingID(t *testing.T) {
	proc := &fakeProcessor{}
	svc := newService(t, proc, &fakeStore{})

	_, err := svc.Confirm(context.Background(), "")
	assert.True(t, errors.Is(err, common.ErrInvalidRequest))
	assert.Empty(t, proc.retrieves)
}

func TestConfirm_NotSucceeded(t *testing.T) {
	for _, status := range []payments.Status{
		payments.StatusRequiresPaymentMethod,
		payments.StatusProcessing,
		payments.StatusCanceled,
	} {
		proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_1", Status: status}}
		svc := newService(t, proc, &fakeStore{})

		_, err := svc.Confirm(context.Background(), "pi_1")
		assert.True(t, errors.Is(err, common.ErrPaymentIncomplete), "status %s", status)
	}
}

func TestConfirm_Succeeded(t *testing.T) {
	proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_123", Status: payments.StatusSucceeded}}
	svc := newService(t, proc, &fakeStore{})

	downloadURL, err := svc.Confirm(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.Equal(t, "/download-ebook?payment_intent=pi_123", downloadURL)
}

func TestConfirm_UpstreamFailure(t *testing.T) {
	proc := &fakeProcessor{retrieveErr: common.ErrUpstream}
	svc := newService(t, proc, &fakeStore{})

	_, err := svc.Confirm(context.Background(), "pi_1")
	assert.True(t, errors.Is(err, common.ErrUpstream))
}

// --- AuthorizeDownload ---

func TestAuthorizeDownload_MissingID(t *testing.T) {
	proc := &fakeProcessor{}
	store := &fakeStore{}
	svc := newService(t, proc, store)

	_, err := svc.AuthorizeDownload(context.Background(), "")
	assert.True(t, errors.Is(err, common.ErrInvalidRequest))
	assert.Empty(t, proc.retrieves)
	assert.Zero(t, store.opens)
}

func TestAuthorizeDownload_NotSucceeded(t *testing.T) {
	proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_1", Status: payments.StatusRequiresPaymentMethod}}
	store := &fakeStore{body: "bytes"}
	svc := newService(t, proc, store)

	_, err := svc.AuthorizeDownload(context.Background(), "pi_1")
	assert.True(t, errors.Is(err, common.ErrPaymentNotCompleted))
	assert.Zero(t, store.opens, "file must never be touched for an unpaid intent")
}

func TestAuthorizeDownload_Succeeded(t *testing.T) {
	proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_123", Status: payments.StatusSucceeded}}
	store := &fakeStore{body: "%PDF-1.4 fake"}
	svc := newService(t, proc, store)

	asset, err := svc.AuthorizeDownload(context.Background(), "pi_123")
	require.NoError(t, err)
	defer asset.Content.Close()

	body, err := io.ReadAll(asset.Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(body))
}

func TestAuthorizeDownload_IsIdempotent(t *testing.T) {
	proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_123", Status: payments.StatusSucceeded}}
	store := &fakeStore{body: "bytes"}
	svc := newService(t, proc, store)

	for i := 0; i < 2; i++ {
		asset, err := svc.AuthorizeDownload(context.Background(), "pi_123")
		require.NoError(t, err)
		asset.Content.Close()
	}

	// one fresh processor check per request, no cached authorization
	assert.Equal(t, []string{"pi_123", "pi_123"}, proc.retrieves)
	assert.Equal(t, 2, store.opens)
}

func TestAuthorizeDownload_MissingAsset(t *testing.T) {
	proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_123", Status: payments.StatusSucceeded}}
	store := &fakeStore{openErr: common.ErrorNotFound}
	svc := newService(t, proc, store)

	_, err := svc.AuthorizeDownload(context.Background(), "pi_123")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestAuthorizeDownload_OpenFailure(t *testing.T) {
	proc := &fakeProcessor{retrieveOut: &payments.Intent{ID: "pi_123", Status: payments.StatusSucceeded}}
	store := &fakeStore{openErr: errors.New("disk on fire")}
	svc := newService(t, proc, store)

	_, err := svc.AuthorizeDownload(context.Background(), "pi_123")
	assert.True(t, errors.Is(err, common.ErrTransfer))
}
