// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package identityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("identityclient")

// DefaultTimeout bounds any request made by a Client that was not
// configured with its own timeout. The value is slightly above a
// multiple of three seconds to stay clear of TCP retransmission
// windows.
const DefaultTimeout = 3050 * time.Millisecond

// Doer is implemented by any client that can execute an HTTP request.
// Both *http.Client and *httpbakery.Client satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// request describes one outbound call. The URL may already carry a
// query string; anything in query is encoded and appended to it.
type request struct {
	method  string
	url     string
	query   url.Values
	body    interface{}
	header  http.Header
	timeout time.Duration
}

// makeRequest performs a single HTTP round trip and decodes the JSON
// response body, without imposing any shape on it. It never retries.
//
// Failures are reported as *TimeoutError when the server does not
// answer within the request's timeout, and as *ServerError for
// everything else, including non-2xx responses (which carry the
// response status code) and undecodable response bodies.
func makeRequest(ctx context.Context, doer Doer, p request) (interface{}, error) {
	switch p.method {
	case "GET", "POST", "PUT", "DELETE":
	default:
		return nil, errors.NotSupportedf("method %q", p.method)
	}
	fullURL := p.url
	if len(p.query) > 0 {
		fullURL += "?" + p.query.Encode()
	}
	body, err := marshalBody(p.body)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot marshal request body for %s", fullURL)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, p.method, fullURL, bodyReader)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot create request for %s", fullURL)
	}
	for k, vs := range p.header {
		req.Header[k] = vs
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	logger.Tracef("%s %s", p.method, fullURL)
	resp, err := doer.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: fullURL, Timeout: p.timeout}
		}
		return nil, serverError(0, fullURL, err.Error())
	}
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{URL: fullURL, Timeout: p.timeout}
		}
		return nil, serverError(0, fullURL, err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serverError(resp.StatusCode, fullURL, string(content))
	}
	if len(content) == 0 {
		return map[string]interface{}{}, nil
	}
	var result interface{}
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, &ServerError{
			Message: fmt.Sprintf("Error decoding JSON response: %v message: %s", err, content),
		}
	}
	return result, nil
}

// marshalBody renders a request body to JSON, passing pre-encoded
// string and byte values through untouched.
func marshalBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}

func serverError(statusCode int, url, message string) *ServerError {
	err := &ServerError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Error during request: %s message: %s", url, message),
	}
	logger.Errorf("%s", err.Message)
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
