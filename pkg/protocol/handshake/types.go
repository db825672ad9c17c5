// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package handshake holds the decoded handshake message types this core's
// handshake processor dispatches on. Only the fields the processor reads
// or re-encodes for the transcript are modeled; full wire parsing of every
// extension and every protocol version's grammar is the external,
// out-of-scope wire codec's job.
package handshake

import "fmt"

// Type identifies a handshake message's wire type.
//
// https://tools.ietf.org/html/rfc5246#section-7.4
type Type byte

// Handshake message types.
const (
	TypeHelloRequest       Type = 0
	TypeClientHello        Type = 1
	TypeServerHello        Type = 2
	TypeCertificate        Type = 11
	TypeServerKeyExchange  Type = 12
	TypeCertificateRequest Type = 13
	TypeServerHelloDone    Type = 14
	TypeCertificateVerify  Type = 15
	TypeClientKeyExchange  Type = 16
	TypeFinished           Type = 20
	// TypeNextProtocol is the (non-standard, pre-ALPN) Next Protocol
	// Negotiation message type, retained for NPN-capable peers.
	TypeNextProtocol Type = 67
)

func (t Type) String() string {
	switch t {
	case TypeHelloRequest:
		return "HelloRequest"
	case TypeClientHello:
		return "ClientHello"
	case TypeServerHello:
		return "ServerHello"
	case TypeCertificate:
		return "Certificate"
	case TypeServerKeyExchange:
		return "ServerKeyExchange"
	case TypeCertificateRequest:
		return "CertificateRequest"
	case TypeServerHelloDone:
		return "ServerHelloDone"
	case TypeCertificateVerify:
		return "CertificateVerify"
	case TypeClientKeyExchange:
		return "ClientKeyExchange"
	case TypeFinished:
		return "Finished"
	case TypeNextProtocol:
		return "NextProtocol"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(t))
	}
}

// Message is a decoded handshake message body (without the 4-byte
// handshake header). Every concrete message type in this package
// implements it. The interface has no unexported method, so types
// outside this package (and Raw, for unknown types) can implement it
// too; the handshake processor's type switch treats any message it does
// not name as having no role-specific side effect.
type Message interface {
	Type() Type
	// Marshal returns the authoritative encoded body, used to re-derive
	// wire bytes for the transcript (see Encode).
	Marshal() ([]byte, error)
}

// Raw is an opaque handshake message of a type this core does not need
// to inspect (e.g. a TLS 1.3 post-handshake message, or an extension
// grammar variant left to the external codec). It still participates in
// transcript accounting: unknown types are treated as described in the
// handshake processor's CertVerify/Finished material rules.
type Raw struct {
	MsgType Type
	Body    []byte
}

// Type returns the Handshake Type.
func (m Raw) Type() Type { return m.MsgType }

// Marshal returns the raw body verbatim: for an unknown type we have no
// semantic re-encoding, only the bytes the caller already decoded it
// from.
func (m *Raw) Marshal() ([]byte, error) {
	return append([]byte{}, m.Body...), nil
}

// Header returns the 4-byte handshake header (type + 3-byte length)
// Marshal's callers prepend when producing the on-wire or transcript
// bytes for a message.
func Header(t Type, bodyLen int) []byte {
	return []byte{
		byte(t),
		byte(bodyLen >> 16),
		byte(bodyLen >> 8),
		byte(bodyLen),
	}
}

// Encode returns the full wire encoding (header + body) of a message,
// the "authoritative wire bytes" the handshake processor folds into the
// transcript.
func Encode(m Message) ([]byte, error) {
	body, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	return append(Header(m.Type(), len(body)), body...), nil
}
