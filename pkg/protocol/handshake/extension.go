// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import "encoding/binary"

// ExtensionType is the two-byte extension identifier.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.4
type ExtensionType uint16

// Extension types this core names. Only renegotiation_info is inspected
// by the processor; every other extension, ALPN included, is opaque to
// the core and left for the external codec layer.
const (
	ExtensionTypeRenegotiationInfo ExtensionType = 0xff01
	ExtensionTypeALPN              ExtensionType = 0x0010
)

// Extension is a single, still-encoded ClientHello/ServerHello extension.
// The handshake processor only decodes the handful of extension payloads
// it is responsible for (renegotiation_info); everything else is passed
// through untouched.
type Extension struct {
	Type ExtensionType
	Data []byte
}

// Find returns the first extension of the given type, if present.
func Find(extensions []Extension, t ExtensionType) (Extension, bool) {
	for _, e := range extensions {
		if e.Type == t {
			return e, true
		}
	}
	return Extension{}, false
}

// MarshalExtensions encodes a list of extensions with their outer
// 2-byte-type + 2-byte-length + data framing, prefixed by the 2-byte
// total-length the ClientHello/ServerHello body expects.
func MarshalExtensions(extensions []Extension) []byte {
	var body []byte
	for _, e := range extensions {
		hdr := make([]byte, 4)
		binary.BigEndian.PutUint16(hdr[0:2], uint16(e.Type))
		binary.BigEndian.PutUint16(hdr[2:4], uint16(len(e.Data)))
		body = append(body, hdr...)
		body = append(body, e.Data...)
	}
	if len(body) == 0 {
		return nil
	}
	out := make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(out, uint16(len(body)))
	return append(out, body...)
}
