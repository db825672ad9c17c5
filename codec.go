// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"github.com/veridiantls/tlscore/pkg/protocol"
	"github.com/veridiantls/tlscore/pkg/protocol/alert"
	"github.com/veridiantls/tlscore/pkg/protocol/handshake"
)

// CurrentParams is the snapshot of negotiation state the classifier
// computes before asking the codec to decode a Handshake record's
// fragment: it is everything the wire codec needs to know to parse a
// message correctly (e.g. whether NPN framing is in play) without
// reaching back into SessionState itself.
type CurrentParams struct {
	Version         protocol.Version
	PendingKXAlgo   KeyExchangeAlgorithm
	NPNEnabled      bool
}

// Codec is the external wire codec this core calls into. It owns every
// TLS version's message grammar and every extension's byte layout; this
// core only ever hands it already-classified record fragments and reads
// back typed messages.
type Codec interface {
	// DecodeAlerts parses one or more Alert messages out of fragment.
	DecodeAlerts(fragment []byte) ([]alert.Alert, error)

	// DecodeChangeCipherSpec validates the single-byte CCS payload.
	DecodeChangeCipherSpec(fragment []byte) error

	// DecodeHandshakes splits a Handshake record's fragment into its
	// constituent (type, raw body) pairs without interpreting any of
	// them.
	DecodeHandshakes(fragment []byte) ([]RawHandshake, error)

	// DecodeHandshake fully decodes one raw handshake message given the
	// negotiation parameters in effect when it arrived.
	DecodeHandshake(params CurrentParams, raw RawHandshake) (handshake.Message, error)

	// DecodeDeprecatedHandshake decodes an SSLv2-compatibility
	// ClientHello.
	DecodeDeprecatedHandshake(fragment []byte) (handshake.Message, error)

	// DecodePreMasterSecret parses the two-byte version prefix and 46
	// bytes of randomness out of an RSA-decrypted premaster secret,
	// erroring if decrypted is not exactly 48 bytes long. kx.go's
	// choosePreMasterSecret calls this to implement the anti-rollback
	// version check (RFC 5246 §7.4.7.1); negotiatedVersion receives the
	// version ClientHello advertised, passed through for a codec that
	// wants to log or reject on mismatch itself, but the caller performs
	// the actual comparison.
	DecodePreMasterSecret(decrypted []byte, negotiatedVersion protocol.Version) (PreMasterSecret, error)

	// EncodeHandshake re-derives the authoritative wire bytes (header +
	// body) for a handshake message. ProcessHandshake does not call it:
	// its transcript accounting uses handshake.Encode directly.
	EncodeHandshake(m handshake.Message) ([]byte, error)

	// ExtensionEncode encodes a single extension's payload.
	ExtensionEncode(ext handshake.Extension) ([]byte, error)
}

// RawHandshake is one undecoded handshake message as split out of a
// record's fragment: a type byte plus its body, before any
// type-specific parsing.
type RawHandshake struct {
	Type handshake.Type
	Body []byte
}

// PreMasterSecret is the decoded RSA premaster secret: a two-byte
// version plus 46 bytes of randomness, per RFC 5246 section 7.4.7.1.
type PreMasterSecret struct {
	Version protocol.Version
	Random  [46]byte
}

// Bytes returns the 48-byte premaster secret wire encoding.
func (p PreMasterSecret) Bytes() []byte {
	out := make([]byte, 0, 48)
	out = append(out, p.Version.Major, p.Version.Minor)
	out = append(out, p.Random[:]...)
	return out
}

// ReceiveCipherSwitcher is the small interface the caller implements so
// ChangeCipherSpec handling can flip the receive side to the pending
// cipher spec without this core reaching into the record layer itself.
// It mirrors the boundary the teacher draws between its state machine
// and the transport-facing connection type.
type ReceiveCipherSwitcher interface {
	SwitchReceiveCipher() error
}
