// Package web exposes the HTTP surface: intent issuance, payment
// confirmation, the payment-gated download route, and liveness probes.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jpcdigital/ebookpay/internal/logging"
	"github.com/jpcdigital/ebookpay/internal/server/checkout"
	"github.com/jpcdigital/ebookpay/internal/server/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config   *config.Config
	logger   logging.Logger
	checkout *checkout.Service
	router   *gin.Engine
}

func NewServer(cfg *config.Config, l logging.Logger, svc *checkout.Service) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		config:   cfg,
		logger:   l.With("module", "web"),
		checkout: svc,
		router:   router,
	}

	router.Use(
		s.requestLogger(),
		gin.CustomRecovery(s.recovered),
		corsMiddleware(cfg.AllowedOrigins),
	)

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.POST("/create-payment-intent", s.handleCreateIntent)
	router.POST("/confirm-payment", s.handleConfirmPayment)
	router.GET(checkout.DownloadPath, s.handleDownload)

	return s
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
