// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package identityclient_test

import (
	"encoding/base64"
	"encoding/json"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
	"gopkg.in/macaroon.v2"

	"github.com/juju/identityclient"
)

type MacaroonSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&MacaroonSuite{})

func (s *MacaroonSuite) newMacaroon(c *gc.C) *macaroon.Macaroon {
	m, err := macaroon.New([]byte("root-key"), []byte("root-id"), "https://idm.example.com", macaroon.LatestVersion)
	c.Assert(err, jc.ErrorIsNil)
	return m
}

func (s *MacaroonSuite) TestMacaroonCaveats(c *gc.C) {
	m := s.newMacaroon(c)
	err := m.AddFirstPartyCaveat([]byte("declared username bob"))
	c.Assert(err, jc.ErrorIsNil)
	err = m.AddThirdPartyCaveat([]byte("third-party-key"), []byte("caveat-id"), "https://discharge.example.com")
	c.Assert(err, jc.ErrorIsNil)

	caveats := identityclient.MacaroonCaveats(m).ThirdPartyCaveats()
	c.Assert(caveats, gc.HasLen, 1)
	c.Assert(caveats[0].Location, gc.Equals, "https://discharge.example.com")
	c.Assert(caveats[0].Id, gc.Equals, "caveat-id")
	c.Assert(caveats[0].Key, gc.Not(gc.Equals), "")
}

func (s *MacaroonSuite) TestMacaroonCaveatsOrder(c *gc.C) {
	m := s.newMacaroon(c)
	err := m.AddThirdPartyCaveat([]byte("key-one"), []byte("first"), "https://one.example.com")
	c.Assert(err, jc.ErrorIsNil)
	err = m.AddThirdPartyCaveat([]byte("key-two"), []byte("second"), "https://two.example.com")
	c.Assert(err, jc.ErrorIsNil)

	caveats := identityclient.MacaroonCaveats(m).ThirdPartyCaveats()
	c.Assert(caveats, gc.HasLen, 2)
	c.Assert(caveats[0].Id, gc.Equals, "first")
	c.Assert(caveats[1].Id, gc.Equals, "second")
}

func (s *MacaroonSuite) TestMacaroonCaveatsFirstPartyOnly(c *gc.C) {
	m := s.newMacaroon(c)
	err := m.AddFirstPartyCaveat([]byte("declared username bob"))
	c.Assert(err, jc.ErrorIsNil)

	c.Assert(identityclient.MacaroonCaveats(m).ThirdPartyCaveats(), gc.HasLen, 0)
}

func (s *MacaroonSuite) TestMacaroonsHeaderValue(c *gc.C) {
	m := s.newMacaroon(c)
	value, err := identityclient.MacaroonsHeaderValue(macaroon.Slice{m})
	c.Assert(err, jc.ErrorIsNil)

	data, err := base64.StdEncoding.DecodeString(value)
	c.Assert(err, jc.ErrorIsNil)
	var ms macaroon.Slice
	err = json.Unmarshal(data, &ms)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(ms, gc.HasLen, 1)
	c.Assert(string(ms[0].Id()), gc.Equals, "root-id")
}
