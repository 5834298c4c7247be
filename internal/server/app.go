package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jpcdigital/ebookpay/internal/logging"
	"github.com/jpcdigital/ebookpay/internal/server/assets"
	"github.com/jpcdigital/ebookpay/internal/server/checkout"
	"github.com/jpcdigital/ebookpay/internal/server/config"
	"github.com/jpcdigital/ebookpay/internal/server/payments"
	"github.com/jpcdigital/ebookpay/internal/server/web"
)

// App wires the payment processor, the asset store and the HTTP server
// together and manages their lifecycle.
type App struct {
	config *config.Config
	logger logging.Logger
	web    *web.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	processor := payments.NewStripeClient(cfg.StripeSecretKey, logger)

	store, err := newAssetStore(cfg)
	if err != nil {
		return nil, err
	}

	svc := checkout.NewService(processor, store, cfg, logger)
	srv := web.NewServer(cfg, logger, svc)

	return &App{config: cfg, logger: logger, web: srv}, nil
}

func newAssetStore(cfg *config.Config) (assets.Store, error) {
	switch cfg.AssetBackend {
	case "local":
		return assets.NewLocal(cfg.EbookPath), nil
	case "s3":
		return assets.NewS3(assets.S3Options{
			User:         cfg.S3RootUser,
			Password:     cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Key:          cfg.S3Key,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		}), nil
	default:
		return nil, fmt.Errorf("unknown asset backend: %s", cfg.AssetBackend)
	}
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	exitChan := make(chan os.Signal, 1)
	signal.Notify(exitChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		s := <-exitChan
		a.logger.Info(context.Background(), "received signal, shutting down", "signal", s.String())
		cancelFunc()
	}()
}

// Run starts the HTTP server and blocks until the context is cancelled
// or a termination signal arrives.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.initSignalHandler(cancel)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.web.Run(ctx); err != nil {
			a.logger.Error(ctx, "http server stopped", "error", err)
			cancel()
		}
	}()

	wg.Wait()
	a.logger.Info(ctx, "app stopped")
}
