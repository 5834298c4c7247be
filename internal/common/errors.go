// Package common defines shared sentinel errors used across the service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors (malformed or missing client input).
	ErrInvalidRequest = errors.New("invalid request")

	// Payment lifecycle errors. ErrPaymentIncomplete is the confirmation-time
	// outcome, ErrPaymentNotCompleted the download-gate one. Both mean the
	// processor has not reported the intent as succeeded; neither is
	// exceptional.
	ErrPaymentIncomplete   = errors.New("payment incomplete")
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// Processor communication or validation failure. Details stay in the
	// server log, never in a client response.
	ErrUpstream = errors.New("upstream error")

	// Asset-level errors.
	ErrorNotFound = errors.New("not found")

	// File delivery failure.
	ErrTransfer = errors.New("transfer error")
)
