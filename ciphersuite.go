// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"crypto/sha256"
	"hash"
)

// KeyExchangeAlgorithm identifies how a cipher suite derives its
// premaster secret. Only RSA key exchange is implemented by this core's
// key-exchange helpers (kx.go); other algorithms are recognized so the
// classifier can report the pending cipher's key-exchange kind to the
// codec (CurrentParams.PendingKXAlgo). ClientKeyExchange processing
// always takes the RSA path; other derivations live in the external
// key-schedule layer.
type KeyExchangeAlgorithm byte

// Key exchange algorithms this core recognizes.
const (
	KeyExchangeAlgorithmNone  KeyExchangeAlgorithm = iota
	KeyExchangeAlgorithmRSA
	KeyExchangeAlgorithmECDHE
	KeyExchangeAlgorithmPSK
)

func (k KeyExchangeAlgorithm) String() string {
	switch k {
	case KeyExchangeAlgorithmRSA:
		return "RSA"
	case KeyExchangeAlgorithmECDHE:
		return "ECDHE"
	case KeyExchangeAlgorithmPSK:
		return "PSK"
	default:
		return "None"
	}
}

// CipherSuite is the trimmed slice of a full cipher suite this core
// needs: enough to know which PRF hash to run for the master secret and
// Finished verify data, and which key-exchange kind ClientKeyExchange
// decoding must expect. Record-layer encryption/decryption (AEAD setup,
// MAC, IV derivation) belongs to the external cipher/crypto layer and is
// not modeled here.
type CipherSuite interface {
	ID() uint16
	String() string
	KeyExchangeAlgorithm() KeyExchangeAlgorithm
	HashFunc() func() hash.Hash
}

// rsaCipherSuite is the one concrete suite this core ships, covering the
// RSA key-exchange path the spec's anti-rollback countermeasure and
// ClientKeyExchange handling exercise end to end.
type rsaCipherSuite struct {
	id       uint16
	name     string
	hashFunc func() hash.Hash
}

func (c *rsaCipherSuite) ID() uint16                             { return c.id }
func (c *rsaCipherSuite) String() string                         { return c.name }
func (c *rsaCipherSuite) KeyExchangeAlgorithm() KeyExchangeAlgorithm { return KeyExchangeAlgorithmRSA }
func (c *rsaCipherSuite) HashFunc() func() hash.Hash             { return c.hashFunc }

// TLS_RSA_WITH_AES_128_GCM_SHA256 is the RSA key-exchange suite this
// core's tests and key-exchange helpers exercise.
//
// https://www.iana.org/assignments/tls-parameters/tls-parameters.xml
func TLS_RSA_WITH_AES_128_GCM_SHA256() CipherSuite { //nolint:revive,stylecheck
	return &rsaCipherSuite{id: 0x009c, name: "TLS_RSA_WITH_AES_128_GCM_SHA256", hashFunc: sha256.New}
}
