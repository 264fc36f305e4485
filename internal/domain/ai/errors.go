package ai

import "errors"

// ErrUnavailable indicates the generative-text capability is not configured
// or unreachable; callers degrade to zero suggestions from this source.
var ErrUnavailable = errors.New("generative capability unavailable")

// ErrQuotaExceeded indicates the provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
