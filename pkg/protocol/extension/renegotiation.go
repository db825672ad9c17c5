// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package extension

import "golang.org/x/crypto/cryptobyte"

// SecureRenegotiation is the renegotiation_info extension payload.
//
// https://tools.ietf.org/html/rfc5746#section-3.2
//
//	struct {
//	    opaque renegotiated_connection<0..255>;
//	} RenegotiationInfo;
//
// On ClientHello, renegotiated_connection is the client's verify data
// from its most recent Finished (empty on an initial handshake). On
// ServerHello it is the concatenation of the client's and the server's
// most recent verify data.
type SecureRenegotiation struct {
	ClientVerifyData []byte
	ServerVerifyData []byte // nil on a ClientHello-side value
}

// Marshal encodes the extension_data payload (the part after the
// extension's own 2-byte type and 2-byte length).
func (s SecureRenegotiation) Marshal() ([]byte, error) {
	connection := append(append([]byte{}, s.ClientVerifyData...), s.ServerVerifyData...)
	if len(connection) > 255 {
		return nil, errRenegotiationInfoTooLong
	}

	var b cryptobyte.Builder
	b.AddUint8LengthPrefixed(func(inner *cryptobyte.Builder) {
		inner.AddBytes(connection)
	})
	return b.Bytes()
}

// ParseClientHello decodes a renegotiation_info payload carried on a
// ClientHello: the entire renegotiated_connection field is the client's
// verify data.
func ParseClientHello(data []byte) (clientVerifyData []byte, err error) {
	s := cryptobyte.String(data)
	var connection cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&connection) || !s.Empty() {
		return nil, errRenegotiationInfoMalformed
	}
	return []byte(connection), nil
}

// ParseServerHello decodes a renegotiation_info payload carried on a
// ServerHello: the renegotiated_connection field is the client's verify
// data followed by the server's, each of which must be the given length
// (the caller already knows both verify-data lengths from its own
// cipher suite's hash).
func ParseServerHello(data []byte, clientLen, serverLen int) (clientVerifyData, serverVerifyData []byte, err error) {
	s := cryptobyte.String(data)
	var connection cryptobyte.String
	if !s.ReadUint8LengthPrefixed(&connection) || !s.Empty() {
		return nil, nil, errRenegotiationInfoMalformed
	}
	if len(connection) != clientLen+serverLen {
		return nil, nil, errRenegotiationInfoMalformed
	}
	return []byte(connection[:clientLen]), []byte(connection[clientLen:]), nil
}
