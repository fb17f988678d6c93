// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package identityclient_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/identityclient"
)

type LoginMethodsSuite struct {
	testing.IsolationSuite

	server  *httptest.Server
	handler http.Handler
}

var _ = gc.Suite(&LoginMethodsSuite{})

func (s *LoginMethodsSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler.ServeHTTP(w, r)
	}))
	s.AddCleanup(func(c *gc.C) { s.server.Close() })
}

func (s *LoginMethodsSuite) TestLoginMethods(c *gc.C) {
	var accept string
	s.handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"interactive": "http://example.com/login", "agent": "http://example.com/agent"}`)
	})
	lm, err := identityclient.LoginMethods(http.DefaultClient, mustParseURL(s.server.URL))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(accept, gc.Equals, "application/json")
	c.Assert(lm.Interactive, gc.Equals, "http://example.com/login")
	c.Assert(lm.Agent, gc.Equals, "http://example.com/agent")
}

func (s *LoginMethodsSuite) TestLoginMethodsError(c *gc.C) {
	s.handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"Message": "bad wolf", "Code": "bad request"}`)
	})
	_, err := identityclient.LoginMethods(http.DefaultClient, mustParseURL(s.server.URL))
	c.Assert(err, gc.ErrorMatches, "bad wolf")
}

func mustParseURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
