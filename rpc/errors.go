package rpc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoResult      = errors.New("no result found for RPC ID")
	ErrRPCError      = errors.New("RPC error")
	ErrAuthError     = errors.New("authentication error")
	ErrRateLimited   = errors.New("rate limited")
	ErrTimeout       = errors.New("timed out waiting for generation")
	ErrInvalidFormat = errors.New("invalid response format")
)

// StatusError is a transport-level failure: the server answered with a
// non-2xx HTTP status before any envelope could be decoded.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsAuthError reports whether an error looks authentication-related,
// including wrapped status and token-scrape failures.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrAuthError) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status == 401 || se.Status == 403
	}

	errStr := strings.ToLower(err.Error())
	authKeywords := []string{
		"authentication", "unauthorized", "401", "403",
		"expired", "login", "re-authenticate",
	}
	for _, kw := range authKeywords {
		if strings.Contains(errStr, kw) {
			return true
		}
	}

	return false
}
