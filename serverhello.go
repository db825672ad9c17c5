// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import "github.com/veridiantls/tlscore/pkg/protocol/handshake"

// CipherSuiteLookup resolves the 16-bit cipher suite identifier
// ServerHello selected to this core's CipherSuite interface. Cipher
// suite tables live in the external cipher/crypto layer; this core only
// needs to know the hash function and key-exchange kind of whichever
// one was chosen.
type CipherSuiteLookup func(id uint16) (CipherSuite, error)

// ProcessServerHello is the client-side entry point for ServerHello,
// kept separate from ProcessHandshake because it must run before the
// pending cipher is known and before the generic transcript-update path
// reads it back. It does not itself update the transcript; callers must
// also invoke ProcessHandshake (or use ProcessServerHelloAndUpdateTranscript)
// on the same message.
func ProcessServerHello(s *SessionState, m *handshake.MessageServerHello, lookup CipherSuiteLookup) error {
	if ext, ok := handshake.Find(m.Extensions, handshake.ExtensionTypeRenegotiationInfo); ok {
		if err := verifyRenegotiationServerHello(s, ext.Data); err != nil {
			return err
		}
	}

	cs, err := lookup(m.CipherSuiteID)
	if err != nil {
		return &DecodeError{Err: err}
	}

	h := s.Handshake()
	random := m.Random.MarshalFixed()
	h.serverRandom = random[:]
	h.SetPendingCipher(cs)

	return s.SetVersion(m.Version)
}

// ProcessServerHelloAndUpdateTranscript runs ProcessServerHello and then
// ProcessHandshake's generic transcript-update path on the same
// message, for callers who want ServerHello handled in one call. It is
// a convenience wrapper, not the only path: the two steps remain
// independently callable (open question O3).
func ProcessServerHelloAndUpdateTranscript(s *SessionState, m *handshake.MessageServerHello, lookup CipherSuiteLookup) error {
	if err := ProcessServerHello(s, m, lookup); err != nil {
		return err
	}
	return ProcessHandshake(s, m)
}
