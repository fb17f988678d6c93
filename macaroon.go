// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package identityclient

import (
	"encoding/base64"
	"encoding/json"

	"github.com/juju/errors"
	"gopkg.in/macaroon.v2"
)

// ThirdPartyCaveat describes one third-party caveat of a macaroon:
// a condition that the service at Location must discharge before the
// macaroon is valid. The discharge protocol sends only Location and
// Id; the Key stays with the caveat.
type ThirdPartyCaveat struct {
	Location string
	Key      string
	Id       string
}

// CaveatSource is implemented by credentials that can enumerate their
// third-party caveats in order. Discharge consults only the first
// caveat returned.
type CaveatSource interface {
	ThirdPartyCaveats() []ThirdPartyCaveat
}

// MacaroonCaveats adapts a macaroon to the CaveatSource consumed by
// Discharge. Third-party caveats are the ones carrying a verification
// id; first-party caveats are skipped. Order follows the macaroon.
func MacaroonCaveats(m *macaroon.Macaroon) CaveatSource {
	return macaroonSource{m}
}

type macaroonSource struct {
	m *macaroon.Macaroon
}

// ThirdPartyCaveats implements CaveatSource.
func (s macaroonSource) ThirdPartyCaveats() []ThirdPartyCaveat {
	var caveats []ThirdPartyCaveat
	for _, cav := range s.m.Caveats() {
		if len(cav.VerificationId) == 0 {
			continue
		}
		caveats = append(caveats, ThirdPartyCaveat{
			Location: cav.Location,
			Key:      string(cav.VerificationId),
			Id:       string(cav.Id),
		})
	}
	return caveats
}

// MacaroonsHeaderValue serializes a discharged macaroon slice to the
// form carried by the macaroon credential header: base64 of the JSON
// encoding of the slice.
func MacaroonsHeaderValue(ms macaroon.Slice) (string, error) {
	data, err := json.Marshal(ms)
	if err != nil {
		return "", errors.Annotate(err, "cannot marshal macaroons")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
