package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jpcdigital/ebookpay/internal/common"
	"github.com/jpcdigital/ebookpay/internal/server/checkout"
)

type createIntentRequest struct {
	// pointer so that an absent field is distinguishable from zero
	Amount *int64 `json:"amount"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "eBook payment API is running")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer number of cents"})
		return
	}
	if req.Amount == nil || *req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer number of cents"})
		return
	}

	handle, err := s.checkout.CreateIntent(c.Request.Context(), *req.Amount, s.successURL(c))
	if err != nil {
		s.writeJSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret":    handle.ClientSecret,
		"paymentIntentId": handle.IntentID,
	})
}

func (s *Server) handleConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentIntentId is required"})
		return
	}

	downloadURL, err := s.checkout.Confirm(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		s.writeJSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"downloadUrl": downloadURL,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	intentID := c.Query("payment_intent")
	if intentID == "" {
		c.String(http.StatusBadRequest, "Payment Intent ID is required")
		return
	}

	asset, err := s.checkout.AuthorizeDownload(c.Request.Context(), intentID)
	if err != nil {
		s.writeDownloadError(c, err)
		return
	}
	defer asset.Content.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.config.DownloadName))
	c.Header("Content-Type", asset.ContentType)
	if asset.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(asset.Size, 10))
	}
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, asset.Content); err != nil {
		// headers are already out; nothing left to do but drop the
		// connection and log it
		s.logger.Error(c.Request.Context(), "ebook stream interrupted",
			"intent_id", intentID,
			"error", err,
		)
		c.Abort()
	}
}

// successURL builds the absolute download URL recorded in intent metadata,
// preferring the configured public base URL over the request host.
func (s *Server) successURL(c *gin.Context) string {
	base := s.config.PublicBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return strings.TrimRight(base, "/") + checkout.DownloadPath
}

// writeJSONError translates service errors for the JSON endpoints. Raw
// upstream details are logged server-side only.
func (s *Server) writeJSONError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrPaymentIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Payment not successful"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your payment."})
	}
}

// writeDownloadError translates gate errors. The download route answers in
// plain text, matching what a browser shows a user who followed a stale
// link.
func (s *Server) writeDownloadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidRequest):
		c.String(http.StatusBadRequest, "Payment Intent ID is required")
	case errors.Is(err, common.ErrPaymentNotCompleted):
		c.String(http.StatusForbidden, "Payment not completed")
	case errors.Is(err, common.ErrorNotFound):
		c.String(http.StatusNotFound, "eBook not found")
	case errors.Is(err, common.ErrTransfer):
		s.logger.Error(c.Request.Context(), "download failed", "error", err)
		c.String(http.StatusInternalServerError, "Error downloading file")
	default:
		s.logger.Error(c.Request.Context(), "payment verification failed", "error", err)
		c.String(http.StatusInternalServerError, "Error verifying payment")
	}
}
