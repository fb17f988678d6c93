// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package identityclient implements a client for the Juju identity
// service, which authenticates users and discharges the third-party
// macaroon caveats that gate access to the charm store.
//
// A Client is bound to one identity service endpoint and is safe for
// concurrent use: every operation is a single bounded HTTP round trip
// with no client-side state or retries. Failures are reported through
// a small typed taxonomy (ServerError, TimeoutError and
// ErrInvalidMacaroon) so that callers can branch on the outcome.
package identityclient
