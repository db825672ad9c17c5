// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"crypto/subtle"

	"github.com/veridiantls/tlscore/pkg/protocol/alert"
	"github.com/veridiantls/tlscore/pkg/protocol/extension"
)

// verifyRenegotiationClientHello checks a ClientHello's 0xff01
// extension payload against what we expect given the session's
// previously-seen client verify data: the extension's
// renegotiated_connection field must be exactly clientVerifyData.
func verifyRenegotiationClientHello(s *SessionState, payload []byte) error {
	got, err := extension.ParseClientHello(payload)
	if err != nil {
		return &DecodeError{Err: err}
	}
	if subtle.ConstantTimeCompare(got, s.ClientVerifyData()) != 1 {
		s.errorf("renegotiation_info mismatch on ClientHello")
		return protocolError("client verified data not matching: renegotiation_info mismatch", true, alert.HandshakeFailure)
	}
	s.setSecureRenegotiation()
	return nil
}

// verifyRenegotiationServerHello checks a ServerHello's 0xff01
// extension payload against the concatenation of clientVerifyData and
// serverVerifyData. Both comparisons always run, combined without
// short-circuiting, so a client-side mismatch cannot be distinguished by
// timing from a server-side one.
func verifyRenegotiationServerHello(s *SessionState, payload []byte) error {
	gotClient, gotServer, err := extension.ParseServerHello(
		payload, len(s.ClientVerifyData()), len(s.ServerVerifyData()))
	if err != nil {
		return &DecodeError{Err: err}
	}

	clientOK := subtle.ConstantTimeCompare(gotClient, s.ClientVerifyData())
	serverOK := subtle.ConstantTimeCompare(gotServer, s.ServerVerifyData())
	if clientOK&serverOK != 1 {
		s.errorf("renegotiation_info mismatch on ServerHello")
		return protocolError("server verified data not matching: renegotiation_info mismatch", true, alert.HandshakeFailure)
	}
	s.setSecureRenegotiation()
	return nil
}
