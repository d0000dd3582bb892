package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateInvoice   = errors.New("invoice number already exists for this enterprise")
	ErrInvalidInput       = errors.New("invalid input")

	// Send flow error kinds. Callers pattern-match on these with errors.Is,
	// never on provider-specific detail text.
	ErrRenderFailed    = errors.New("document rendering failed")
	ErrDispatchFailed  = errors.New("message dispatch failed")
	ErrRecordingFailed = errors.New("send status recording failed")
)
