// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"encoding/binary"

	"github.com/veridiantls/tlscore/pkg/crypto/signaturehash"
	"github.com/veridiantls/tlscore/pkg/protocol"
	"github.com/zmap/zcrypto/x509"
)

// MessageHelloRequest carries no data; a server uses it to ask a client
// to renegotiate.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.1
type MessageHelloRequest struct{}

func (MessageHelloRequest) Type() Type                { return TypeHelloRequest }
func (*MessageHelloRequest) Marshal() ([]byte, error) { return nil, nil }

// MessageClientHello is the first message a client sends.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.2
type MessageClientHello struct {
	Version        protocol.Version
	Random         Random
	SessionID      []byte
	CipherSuiteIDs []uint16
	Extensions     []Extension
}

func (MessageClientHello) Type() Type { return TypeClientHello }

// Marshal encodes the body. Cipher suite and compression-method lists are
// encoded in the minimal, single-compression-method ("null") shape this
// core's own client emits; a richer negotiation surface belongs to the
// external wire codec.
func (m *MessageClientHello) Marshal() ([]byte, error) {
	out := []byte{m.Version.Major, m.Version.Minor}
	random := m.Random.MarshalFixed()
	out = append(out, random[:]...)
	out = append(out, byte(len(m.SessionID)))
	out = append(out, m.SessionID...)

	csLen := make([]byte, 2)
	binary.BigEndian.PutUint16(csLen, uint16(2*len(m.CipherSuiteIDs)))
	out = append(out, csLen...)
	for _, id := range m.CipherSuiteIDs {
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, id)
		out = append(out, b...)
	}

	out = append(out, 1, 0) // compression_methods: length 1, "null"

	if ext := MarshalExtensions(m.Extensions); ext != nil {
		out = append(out, ext...)
	}
	return out, nil
}

// MessageServerHello is sent in response to a ClientHello when the
// server found an acceptable set of algorithms.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.3
type MessageServerHello struct {
	Version           protocol.Version
	Random            Random
	SessionID         []byte
	CipherSuiteID     uint16
	CompressionMethod byte
	Extensions        []Extension
}

func (MessageServerHello) Type() Type { return TypeServerHello }

func (m *MessageServerHello) Marshal() ([]byte, error) {
	out := []byte{m.Version.Major, m.Version.Minor}
	random := m.Random.MarshalFixed()
	out = append(out, random[:]...)
	out = append(out, byte(len(m.SessionID)))
	out = append(out, m.SessionID...)

	cs := make([]byte, 2)
	binary.BigEndian.PutUint16(cs, m.CipherSuiteID)
	out = append(out, cs...)
	out = append(out, m.CompressionMethod)

	if ext := MarshalExtensions(m.Extensions); ext != nil {
		out = append(out, ext...)
	}
	return out, nil
}

// MessageCertificate carries the sender's certificate chain, leaf first.
// Chain parsing (DER→x509.Certificate) is the external codec's job; this
// core only ever holds already-parsed certificates.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.2
type MessageCertificate struct {
	Chain []*x509.Certificate
}

func (MessageCertificate) Type() Type { return TypeCertificate }

func (m *MessageCertificate) Marshal() ([]byte, error) {
	var body []byte
	for _, cert := range m.Chain {
		raw := cert.Raw
		body = append(body, byte(len(raw)>>16), byte(len(raw)>>8), byte(len(raw)))
		body = append(body, raw...)
	}
	out := []byte{byte(len(body) >> 16), byte(len(body) >> 8), byte(len(body))}
	return append(out, body...), nil
}

// MessageServerKeyExchange is opaque to this core: its key-schedule
// contents feed send-side logic that is out of scope here. It is
// retained only so its raw bytes can be folded into the transcript.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.3
type MessageServerKeyExchange struct {
	Raw []byte
}

func (MessageServerKeyExchange) Type() Type                { return TypeServerKeyExchange }
func (m *MessageServerKeyExchange) Marshal() ([]byte, error) { return append([]byte{}, m.Raw...), nil }

// MessageCertificateRequest is sent by a server that wants to
// authenticate the client with a certificate.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.4
type MessageCertificateRequest struct {
	CertificateTypes            []byte
	SignatureHashAlgorithms     []signaturehash.Algorithm
	CertificateAuthoritiesNames [][]byte
}

func (MessageCertificateRequest) Type() Type { return TypeCertificateRequest }

func (m *MessageCertificateRequest) Marshal() ([]byte, error) {
	out := []byte{byte(len(m.CertificateTypes))}
	out = append(out, m.CertificateTypes...)

	sigLen := make([]byte, 2)
	binary.BigEndian.PutUint16(sigLen, uint16(2*len(m.SignatureHashAlgorithms)))
	out = append(out, sigLen...)
	for _, alg := range m.SignatureHashAlgorithms {
		out = append(out, byte(alg.Hash), byte(alg.Signature))
	}

	var cas []byte
	for _, name := range m.CertificateAuthoritiesNames {
		nameLen := make([]byte, 2)
		binary.BigEndian.PutUint16(nameLen, uint16(len(name)))
		cas = append(cas, nameLen...)
		cas = append(cas, name...)
	}
	casLen := make([]byte, 2)
	binary.BigEndian.PutUint16(casLen, uint16(len(cas)))
	out = append(out, casLen...)
	out = append(out, cas...)
	return out, nil
}

// MessageServerHelloDone marks the end of the server's first flight.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.5
type MessageServerHelloDone struct{}

func (MessageServerHelloDone) Type() Type                { return TypeServerHelloDone }
func (*MessageServerHelloDone) Marshal() ([]byte, error) { return nil, nil }

// MessageClientKeyExchange carries the client's contribution to the
// premaster secret. For RSA key exchange this is the RSA-encrypted
// premaster, two-byte length prefixed for TLS 1.0+.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.7
type MessageClientKeyExchange struct {
	EncryptedPreMasterSecret []byte
}

func (MessageClientKeyExchange) Type() Type { return TypeClientKeyExchange }

func (m *MessageClientKeyExchange) Marshal() ([]byte, error) {
	out := make([]byte, 2, 2+len(m.EncryptedPreMasterSecret))
	binary.BigEndian.PutUint16(out, uint16(len(m.EncryptedPreMasterSecret)))
	return append(out, m.EncryptedPreMasterSecret...), nil
}

// MessageCertificateVerify proves possession of the private key
// corresponding to the certificate a client just sent.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.8
type MessageCertificateVerify struct {
	Algorithm signaturehash.Algorithm
	Signature []byte
}

func (MessageCertificateVerify) Type() Type { return TypeCertificateVerify }

func (m *MessageCertificateVerify) Marshal() ([]byte, error) {
	out := []byte{byte(m.Algorithm.Hash), byte(m.Algorithm.Signature)}
	sigLen := make([]byte, 2)
	binary.BigEndian.PutUint16(sigLen, uint16(len(m.Signature)))
	out = append(out, sigLen...)
	return append(out, m.Signature...), nil
}

// MessageFinished is the first message protected under the
// just-negotiated keys; its contents are the PRF-derived verify data.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.9
type MessageFinished struct {
	VerifyData []byte
}

func (MessageFinished) Type() Type { return TypeFinished }

func (m *MessageFinished) Marshal() ([]byte, error) {
	return append([]byte{}, m.VerifyData...), nil
}

// MessageNextProtocol is the client's NPN reply, naming the protocol it
// selected from the server's advertised list.
type MessageNextProtocol struct {
	SelectedProtocol []byte
	Padding          []byte
}

func (MessageNextProtocol) Type() Type { return TypeNextProtocol }

func (m *MessageNextProtocol) Marshal() ([]byte, error) {
	out := []byte{byte(len(m.SelectedProtocol))}
	out = append(out, m.SelectedProtocol...)
	out = append(out, byte(len(m.Padding)))
	return append(out, m.Padding...), nil
}
