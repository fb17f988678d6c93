// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package identityclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-macaroon-bakery/macaroon-bakery/v3/httpbakery"
	"github.com/juju/errors"
)

// Well-known identity service locations.
const (
	Production = "https://api.jujucharms.com/identity"
	Staging    = "https://api.staging.jujucharms.com/identity"
)

// NewParams holds the parameters for creating a new client.
type NewParams struct {
	// BaseURL holds the identity service endpoint. A trailing
	// slash is appended if not already present.
	BaseURL string

	// Doer is used to execute requests. It defaults to
	// http.DefaultClient; an *httpbakery.Client may be supplied
	// so that requests take part in bakery interaction.
	Doer Doer

	// AuthUsername and AuthPassword, when set, are sent as HTTP
	// basic auth credentials on every request, for admin access.
	AuthUsername string
	AuthPassword string

	// Timeout bounds each request. It defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client represents the client of an identity service. Its only state
// is configuration fixed at construction, so a single Client may be
// used concurrently; every call is one independent HTTP round trip.
type Client struct {
	url     string
	doer    Doer
	timeout time.Duration
}

// New returns a new identity service client.
func New(p NewParams) *Client {
	c := &Client{
		url:     p.BaseURL,
		doer:    p.Doer,
		timeout: p.Timeout,
	}
	if !strings.HasSuffix(c.url, "/") {
		c.url += "/"
	}
	if c.doer == nil {
		c.doer = http.DefaultClient
	}
	if p.AuthUsername != "" {
		c.doer = &basicAuthDoer{
			doer:     c.doer,
			user:     p.AuthUsername,
			password: p.AuthPassword,
		}
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// URL returns the normalized base URL of the identity service.
func (c *Client) URL() string {
	return c.url
}

// Login logs the given user in to the identity service, sending
// credentials as the JSON request body. A nil error means the service
// accepted the login; any non-2xx response surfaces as *ServerError.
func (c *Client) Login(ctx context.Context, username string, credentials interface{}) error {
	_, err := makeRequest(ctx, c.doer, request{
		method:  "PUT",
		url:     c.url + "u/" + username,
		body:    credentials,
		timeout: c.timeout,
	})
	return errors.Trace(err)
}

// Discharge obtains a discharge macaroon for the first third-party
// caveat of m, on behalf of the given user. The identity service is
// trusted to resolve the caveat identifier itself, so only the
// caveat's location and id take part in the request.
//
// The discharge macaroon is returned in URL-safe base64 form of its
// JSON encoding, ready for transmission. If m has no third-party
// caveat the call fails with ErrInvalidMacaroon without touching the
// network.
func (c *Client) Discharge(ctx context.Context, username string, m CaveatSource) ([]byte, error) {
	caveats := m.ThirdPartyCaveats()
	if len(caveats) == 0 {
		return nil, ErrInvalidMacaroon
	}
	cav := caveats[0]
	// The caveat id deliberately bypasses query escaping: the
	// discharger expects it verbatim.
	dischargeURL := strings.TrimSuffix(cav.Location, "/") +
		"/discharger/discharge" +
		"?discharge-for-user=" + url.QueryEscape(username) +
		"&id=" + cav.Id
	result, err := makeRequest(ctx, c.doer, request{
		method:  "POST",
		url:     dischargeURL,
		timeout: c.timeout,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return encodeResult(result, "Macaroon", false)
}

// DischargeToken obtains a discharge token for the given user. The
// token is returned in URL-safe base64 form of a JSON array holding
// the token, the form consumed by the charm store.
func (c *Client) DischargeToken(ctx context.Context, username string) ([]byte, error) {
	result, err := makeRequest(ctx, c.doer, request{
		method:  "GET",
		url:     c.url + "discharge-token-for-user",
		query:   url.Values{"username": {username}},
		timeout: c.timeout,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return encodeResult(result, "DischargeToken", true)
}

// Debug fetches the identity service's debug status document. Unlike
// every other operation a server-side failure is folded into the
// result as {"error": message} rather than returned as an error;
// timeouts still propagate.
func (c *Client) Debug(ctx context.Context) (interface{}, error) {
	result, err := makeRequest(ctx, c.doer, request{
		method:  "GET",
		url:     c.url + "debug/status",
		timeout: c.timeout,
	})
	if err != nil {
		var serverErr *ServerError
		if errors.As(err, &serverErr) {
			return map[string]interface{}{"error": serverErr.Message}, nil
		}
		return nil, errors.Trace(err)
	}
	return result, nil
}

// User fetches the identity record of the given user. The macaroons
// value, when not empty, is attached as the request's macaroon
// credential header.
func (c *Client) User(ctx context.Context, username, macaroons string) (interface{}, error) {
	var header http.Header
	if macaroons != "" {
		header = http.Header{httpbakery.MacaroonsHeader: {macaroons}}
	}
	result, err := makeRequest(ctx, c.doer, request{
		method:  "GET",
		url:     c.url + "u/" + username,
		header:  header,
		timeout: c.timeout,
	})
	return result, errors.Trace(err)
}

// ExtraInfo fetches the extra-info document stored for the given
// user, an arbitrary key/value mapping.
func (c *Client) ExtraInfo(ctx context.Context, username string) (map[string]interface{}, error) {
	result, err := makeRequest(ctx, c.doer, request{
		method:  "GET",
		url:     c.extraInfoURL(username),
		timeout: c.timeout,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	info, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.NotValidf("extra-info response of type %T", result)
	}
	return info, nil
}

// SetExtraInfo replaces the extra-info document stored for the given
// user. Any response body is discarded.
func (c *Client) SetExtraInfo(ctx context.Context, username string, info interface{}) error {
	_, err := makeRequest(ctx, c.doer, request{
		method:  "PUT",
		url:     c.extraInfoURL(username),
		body:    info,
		timeout: c.timeout,
	})
	return errors.Trace(err)
}

func (c *Client) extraInfoURL(username string) string {
	return c.url + "u/" + username + "/extra-info"
}

// encodeResult extracts key from a JSON object response and returns
// the URL-safe base64 encoding of the value's JSON form, wrapping the
// value in a one-element array first when wrap is set.
func encodeResult(result interface{}, key string, wrap bool) ([]byte, error) {
	obj, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.NotFoundf("%q key in response of type %T", key, result)
	}
	value, ok := obj[key]
	if !ok {
		return nil, errors.NotFoundf("%q key in response", key)
	}
	if wrap {
		value = []interface{}{value}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Trace(err)
	}
	encoded := make([]byte, base64.URLEncoding.EncodedLen(len(data)))
	base64.URLEncoding.Encode(encoded, data)
	return encoded, nil
}

// basicAuthDoer wraps a Doer, adding a basic auth header to every
// request.
type basicAuthDoer struct {
	doer     Doer
	user     string
	password string
}

// Do implements Doer.
func (d *basicAuthDoer) Do(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(d.user, d.password)
	return d.doer.Do(req)
}
