package download

import (
	"fmt"
	"strings"
)

// Kind is the normalized, user-facing category of a failed request.
type Kind string

const (
	KindQuotaExceeded     Kind = "quota_exceeded"
	KindInvalidURL        Kind = "invalid_url"
	KindAuthRequired      Kind = "auth_required"
	KindFormatUnavailable Kind = "format_unavailable"
	KindUnavailable       Kind = "unavailable_or_restricted"
	KindPrivate           Kind = "private"
	KindTooLarge          Kind = "too_large"
	KindMissingOutput     Kind = "missing_output"
	KindDeliveryFailed    Kind = "delivery_failed"
	KindUnknown           Kind = "unknown"
)

// maxErrPrefix bounds how much raw engine output may leak into a user message.
const maxErrPrefix = 200

// Failure is the single structured error that crosses the request boundary.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s", f.Kind, f.Err.Error())
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

func NewFailure(kind Kind, msg string) *Failure {
	return &Failure{Kind: kind, Message: msg}
}

// Exhausted wraps the last engine error once the whole fallback chain has failed.
func Exhausted(last error) *Failure {
	kind, msg := classify(last)
	return &Failure{
		Kind:    kind,
		Message: msg,
		Err:     fmt.Errorf("all download methods failed: %w", last),
	}
}

func classify(err error) (Kind, string) {
	if err == nil {
		return KindUnknown, "download failed for an unknown reason"
	}
	s := err.Error()
	switch {
	case strings.Contains(s, "Sign in"):
		return KindAuthRequired, "the source requires authentication, try a lower quality"
	case strings.Contains(s, "Requested format is not available"):
		return KindFormatUnavailable, "format not available, try a different quality"
	case strings.Contains(s, "Private"):
		return KindPrivate, "this content is private"
	case strings.Contains(s, "Unavailable"), strings.Contains(s, "unavailable"):
		return KindUnavailable, "content not available or restricted"
	case strings.Contains(s, "too large"):
		return KindTooLarge, "file too large, try a lower quality"
	default:
		return KindUnknown, "download failed: " + Truncate(s, maxErrPrefix)
	}
}

// Truncate caps raw error text before it is logged or shown.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
