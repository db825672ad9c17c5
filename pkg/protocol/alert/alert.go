// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package alert implements the TLS Alert protocol https://tools.ietf.org/html/rfc5246#section-7.2
package alert

import "fmt"

// Level is the Alert Level, either Warning or Fatal.
//
// https://tools.ietf.org/html/rfc5246#section-7.2
type Level byte

// Alert levels.
const (
	Warning Level = 1
	Fatal   Level = 2
)

// String returns the string representation of an Alert Level.
func (l Level) String() string {
	switch l {
	case Warning:
		return "Warning"
	case Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(l))
	}
}

// Description is the reason an Alert was raised.
//
// https://tools.ietf.org/html/rfc5246#section-7.2
type Description byte

// Alert descriptions used by this core. Only the subset the handshake
// processor and record classifier can raise is named; anything else
// belongs to the out-of-scope send-side/record layer.
const (
	CloseNotify            Description = 0
	UnexpectedMessage      Description = 10
	BadRecordMac           Description = 20
	DecryptionFailed       Description = 21
	RecordOverflow         Description = 22
	DecompressionFailure   Description = 30
	HandshakeFailure       Description = 40
	NoCertificate          Description = 41
	BadCertificate         Description = 42
	UnsupportedCertificate Description = 43
	CertificateExpired     Description = 45
	IllegalParameter       Description = 47
	DecodeError            Description = 50
	DecryptError           Description = 51
	ProtocolVersion        Description = 70
	InsufficientSecurity   Description = 71
	InternalError          Description = 80
	NoRenegotiation        Description = 100
	UnsupportedExtension   Description = 110
)

var descriptionNames = map[Description]string{
	CloseNotify:            "close notify",
	UnexpectedMessage:      "unexpected message",
	BadRecordMac:           "bad record mac",
	DecryptionFailed:       "decryption failed",
	RecordOverflow:         "record overflow",
	DecompressionFailure:   "decompression failure",
	HandshakeFailure:       "handshake failure",
	NoCertificate:          "no certificate",
	BadCertificate:         "bad certificate",
	UnsupportedCertificate: "unsupported certificate",
	CertificateExpired:     "certificate expired",
	IllegalParameter:       "illegal parameter",
	DecodeError:            "decode error",
	DecryptError:           "decrypt error",
	ProtocolVersion:        "protocol version",
	InsufficientSecurity:   "insufficient security",
	InternalError:          "internal error",
	NoRenegotiation:        "no renegotiation",
	UnsupportedExtension:   "unsupported extension",
}

// String returns the string representation of an Alert Description.
func (d Description) String() string {
	if name, ok := descriptionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", byte(d))
}

// Alert is a single decoded TLS alert: a level paired with a description.
//
// https://tools.ietf.org/html/rfc5246#section-7.2
type Alert struct {
	Level       Level
	Description Description
}

func (a Alert) String() string {
	return fmt.Sprintf("Alert %s: %s", a.Level, a.Description)
}
