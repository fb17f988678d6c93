// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package identityclient

import (
	"fmt"
	"time"

	"github.com/juju/errors"
)

// ErrInvalidMacaroon is returned by Client.Discharge when the macaroon
// presented for discharge carries no third-party caveat, so there is
// nothing for the identity service to discharge. No request is made in
// that case.
const ErrInvalidMacaroon = errors.ConstError("macaroon has no third-party caveat to discharge")

// ServerError reports a request that the identity service answered
// with a failure, or that failed before any response arrived.
type ServerError struct {
	// StatusCode holds the HTTP status code of the response. It is
	// zero when the request failed without producing a response.
	StatusCode int

	// Message describes the failure, naming the requested URL and
	// quoting the server's response body when there is one.
	Message string
}

// Error implements error.
func (e *ServerError) Error() string {
	return e.Message
}

// IsServerError reports whether err is, or wraps, a *ServerError.
func IsServerError(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// TimeoutError reports a request that was abandoned because the server
// did not respond within the allowed time.
type TimeoutError struct {
	// URL holds the URL the request was sent to, including any
	// query string.
	URL string

	// Timeout holds the bound the request failed to meet.
	Timeout time.Duration
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %v", e.URL, e.Timeout)
}

// IsTimeout reports whether err is, or wraps, a *TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}
