// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package recordlayer

import "github.com/veridiantls/tlscore/pkg/protocol"

// ContentType is the type of content carried by a Record.
//
// https://tools.ietf.org/html/rfc5246#section-6.2.1
type ContentType byte

// Record content types.
const (
	ContentTypeChangeCipherSpec ContentType = 20
	ContentTypeAlert            ContentType = 21
	ContentTypeHandshake        ContentType = 22
	ContentTypeApplicationData  ContentType = 23
	// ContentTypeDeprecatedHandshake marks an SSLv2-compatibility
	// ClientHello. It is not a real TLS content type byte; record-layer
	// framing recognizes the legacy format and tags it this way before
	// handing the record to the classifier.
	ContentTypeDeprecatedHandshake ContentType = 0xff
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeChangeCipherSpec:
		return "ChangeCipherSpec"
	case ContentTypeAlert:
		return "Alert"
	case ContentTypeHandshake:
		return "Handshake"
	case ContentTypeApplicationData:
		return "ApplicationData"
	case ContentTypeDeprecatedHandshake:
		return "DeprecatedHandshake"
	default:
		return "Unknown"
	}
}

// Record is a single already-decrypted plaintext record as it crosses the
// boundary from the external record layer into this core's classifier.
type Record struct {
	Type     ContentType
	Version  protocol.Version
	Fragment []byte
}
