package extraction

import (
	"errors"
	"net/http"
)

// Kind buckets every failure the pipeline can surface to a caller.
type Kind int

const (
	// KindUnsupportedInput: the uploaded file failed type/size validation.
	// Rejected before any oracle call; the caller can fix and resubmit.
	KindUnsupportedInput Kind = iota
	// KindOracleTransport: the oracle call itself failed (network, quota,
	// timeout). Retryable.
	KindOracleTransport
	// KindMalformedExtraction: the oracle responded but no parsing strategy
	// recovered usable JSON. Retryable.
	KindMalformedExtraction
	// KindNotAFinancialStatement: the oracle declared the document out of
	// domain. Not retryable; its judgment is trusted.
	KindNotAFinancialStatement
)

// Error is the single error type crossing the orchestrator boundary. Internal
// failures are converted into one of the kinds above before reaching the
// caller; Message carries no stack traces or internal detail.
type Error struct {
	Kind         Kind
	Message      string
	AnalystNotes []string
	Cause        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether resubmitting the same request could succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindOracleTransport || e.Kind == KindMalformedExtraction
}

// HTTPStatus maps the failure kind to the response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnsupportedInput:
		return http.StatusBadRequest
	case KindNotAFinancialStatement:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
