// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package signaturehash provides the SignatureHashAlgorithm pairs used by
// CertificateRequest/CertificateVerify, as defined in TLS 1.2.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.4.1
package signaturehash

import (
	"crypto"
	"fmt"
)

// Hash identifies the hash half of a signature/hash pair.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.4.1
type Hash byte

// Hash algorithms.
const (
	HashSHA256 Hash = 4
	HashSHA384 Hash = 5
	HashSHA512 Hash = 6
	// HashEd25519 has no explicit hash byte on the wire (Ed25519 hashes
	// internally); it is used here only to pair with SignatureEd25519.
	HashEd25519 Hash = 8
)

// CryptoHash maps to the standard library hash identifier, or 0 if none
// applies (Ed25519 never calls the hash package directly).
func (h Hash) CryptoHash() crypto.Hash {
	switch h {
	case HashSHA256:
		return crypto.SHA256
	case HashSHA384:
		return crypto.SHA384
	case HashSHA512:
		return crypto.SHA512
	default:
		return 0
	}
}

// Signature identifies the signature half of a signature/hash pair.
type Signature byte

// Signature algorithms.
const (
	SignatureRSA     Signature = 1
	SignatureECDSA   Signature = 3
	SignatureEd25519 Signature = 7
)

// Algorithm is a signature/hash algorithm pair which may be used in a
// digital signature.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.4.1
type Algorithm struct {
	Hash      Hash
	Signature Signature
}

func (a Algorithm) String() string {
	return fmt.Sprintf("%v+%v", a.Hash, a.Signature)
}

func (h Hash) String() string {
	switch h {
	case HashSHA256:
		return "SHA256"
	case HashSHA384:
		return "SHA384"
	case HashSHA512:
		return "SHA512"
	case HashEd25519:
		return "Ed25519(internal)"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(h))
	}
}

func (s Signature) String() string {
	switch s {
	case SignatureRSA:
		return "RSA"
	case SignatureECDSA:
		return "ECDSA"
	case SignatureEd25519:
		return "Ed25519"
	default:
		return fmt.Sprintf("Unknown(%d)", byte(s))
	}
}
