// Package obs centralizes the pipeline's structured logging conventions and
// its shared error taxonomy, so every component reports failures the same
// way regardless of which external system it talks to.
package obs

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an external call (LLM gateway, embedding
// service, TTS provider) failed, matching the taxonomy callers need to
// decide whether a retry is worthwhile.
type ErrorKind interface {
	error
	errorKind() string
}

// Sentinel kinds without a payload.
var (
	ErrConfigMissing      = baseKind{"CONFIG_MISSING", "required configuration is missing"}
	ErrTransport          = baseKind{"TRANSPORT", "transport error contacting external service"}
	ErrTimeout            = baseKind{"TIMEOUT", "request timed out"}
	ErrBadJSON            = baseKind{"BAD_JSON", "response body was not valid JSON"}
	ErrSchemaIncomplete   = baseKind{"SCHEMA_INCOMPLETE", "response JSON is missing expected keys"}
	ErrInsufficientInput  = baseKind{"INSUFFICIENT_INPUT", "input text too short to process"}
	ErrDuplicate          = baseKind{"DUPLICATE", "record classified as a duplicate"}
	ErrRejectedAdjudicator = baseKind{"REJECTED_BY_ADJUDICATOR", "record rejected by adjudication"}
)

type baseKind struct {
	code string
	msg  string
}

func (b baseKind) Error() string    { return b.code + ": " + b.msg }
func (b baseKind) errorKind() string { return b.code }

// HTTPStatusError is the ErrorKind variant carrying the offending status
// code, mirroring the gateway contract's HTTP_STATUS(code) taxonomy entry.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP_STATUS(%d): unexpected response status", e.Code)
}
func (e *HTTPStatusError) errorKind() string { return "HTTP_STATUS" }

// Retryable reports whether ek represents a condition worth retrying under
// the gateway's backoff policy: transport failures, timeouts, 5xx and 429
// responses. 4xx responses other than 429 are not retried.
func Retryable(ek error) bool {
	var hs *HTTPStatusError
	if errors.As(ek, &hs) {
		return hs.Code == 429 || hs.Code >= 500
	}
	return errors.Is(ek, ErrTransport) || errors.Is(ek, ErrTimeout)
}

// Wrap annotates err with additional context while preserving errors.Is/As
// matching against the original ErrorKind.
func Wrap(context string, err error) error {
	return fmt.Errorf("%s: %w", context, err)
}
