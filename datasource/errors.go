package datasource

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason classifies why a fetch produced no payload
type Reason string

const (
	ReasonTransport    Reason = "transport"
	ReasonUnauthorized Reason = "unauthorized"
	ReasonNotFound     Reason = "not_found"
	ReasonRateLimited  Reason = "rate_limited"
	ReasonClient       Reason = "client"
	ReasonServer       Reason = "server"
	ReasonDecode       Reason = "decode"
)

// FetchError is the failure half of a fetch result. StatusCode is zero when
// no HTTP response was received.
type FetchError struct {
	Provider   string
	Reason     Reason
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: fetch failed (%s", e.Provider, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status %d", e.StatusCode)
	}
	msg += ")"
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the same request later could succeed
func (e *FetchError) Temporary() bool {
	switch e.Reason {
	case ReasonTransport, ReasonRateLimited, ReasonServer:
		return true
	default:
		return false
	}
}

// IsTemporary reports whether err wraps a transient *FetchError
func IsTemporary(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Temporary()
	}
	return false
}

// reasonForStatus maps a non-200 status code to a Reason
func reasonForStatus(code int) Reason {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ReasonUnauthorized
	case code == http.StatusNotFound:
		return ReasonNotFound
	case code == http.StatusTooManyRequests:
		return ReasonRateLimited
	case code >= 500:
		return ReasonServer
	default:
		return ReasonClient
	}
}
