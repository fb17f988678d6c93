// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

// Package params defines the wire types shared with the identity
// service.
package params

// LoginMethods holds the login endpoints advertised by the identity
// service for an interaction URL. Each non-empty field names the URL
// implementing that login method.
type LoginMethods struct {
	// Agent is the endpoint for non-interactive agent login.
	Agent string `json:"agent,omitempty"`

	// Interactive is the endpoint a human should visit in a web
	// browser.
	Interactive string `json:"interactive,omitempty"`

	// UbuntuSSO is the endpoint accepting Ubuntu SSO tokens.
	UbuntuSSO string `json:"usso,omitempty"`

	// UbuntuSSOOAuth is the endpoint accepting requests signed
	// with Ubuntu SSO OAuth credentials.
	UbuntuSSOOAuth string `json:"usso_oauth,omitempty"`

	// Form is the endpoint accepting schema-driven form login.
	Form string `json:"form,omitempty"`
}
