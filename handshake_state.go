// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"crypto"
	"crypto/rsa"
	"hash"

	"github.com/veridiantls/tlscore/pkg/protocol"
)

// HandshakeState is the cryptographic scratch space and transcript
// accumulator that exists only between a handshake's first message and
// its Finished. SessionState.handshake is nil when idle; every accessor
// on it that requires an in-progress handshake panics with an internal
// invariant error if called while nil, per the sealed Idle/InHandshake
// variant the design calls for.
type HandshakeState struct {
	// pendingCipher is set once ServerHello has been processed.
	pendingCipher CipherSuite

	// clientVersion is the version byte pair ClientHello advertised,
	// retained verbatim for the ClientKeyExchange anti-rollback check.
	clientVersion protocol.Version

	// handshakeMessages is the ordered, concatenated wire encoding of
	// every message in the CertVerify-material set.
	handshakeMessages []byte

	// finishedMaterial is the ordered, concatenated wire encoding of
	// every message in the Finished-material set. It is buffered as raw
	// bytes rather than hashed incrementally: ClientHello itself is
	// Finished-material, but the hash algorithm to use isn't known
	// until ServerHello negotiates a cipher suite, so the digest can
	// only be computed once that's known (see digest below).
	finishedMaterial []byte

	// serverRandom is captured from ServerHello.
	serverRandom []byte
	clientRandom []byte

	// publicKey/clientPublicKey are the peer public keys observed in
	// Certificate messages: publicKey when we are the client looking at
	// the server's chain, clientPublicKey when we are the server
	// looking at the client's.
	publicKey       crypto.PublicKey
	clientPublicKey crypto.PublicKey

	// rsaPrivateKey is the server's own key, used by kxDecrypt.
	rsaPrivateKey *rsa.PrivateKey

	// negotiatedNPNProtocol is the protocol the client selected from the
	// server's Next Protocol Negotiation list.
	negotiatedNPNProtocol []byte

	masterSecret []byte
}

// newHandshakeState allocates a fresh handshake substate. A handshake
// always starts with an empty transcript.
func newHandshakeState() *HandshakeState {
	return &HandshakeState{}
}

func (h *HandshakeState) requireNonNil(field string) {
	if h == nil {
		panicInvariant("handshake state accessed via " + field + " while no handshake is in progress")
	}
}

// appendCertVerifyMaterial appends encoded bytes to the CertVerify
// transcript (I2).
func (h *HandshakeState) appendCertVerifyMaterial(encoded []byte) {
	h.requireNonNil("appendCertVerifyMaterial")
	h.handshakeMessages = append(h.handshakeMessages, encoded...)
}

// foldFinishedMaterial appends encoded bytes to the Finished-material
// buffer (I1). The running digest is derived from this buffer on
// demand, once the negotiated cipher suite's hash is known.
func (h *HandshakeState) foldFinishedMaterial(encoded []byte) {
	h.requireNonNil("foldFinishedMaterial")
	h.finishedMaterial = append(h.finishedMaterial, encoded...)
}

// digest hashes the current Finished-material buffer with hashFunc.
// Called only once a cipher suite (and therefore a PRF hash) has been
// negotiated, which for any real handshake is true by the time a
// Finished message needs verifying.
func (h *HandshakeState) digest(hashFunc func() hash.Hash) []byte {
	h.requireNonNil("digest")
	sum := hashFunc()
	sum.Write(h.finishedMaterial) //nolint:errcheck
	return sum.Sum(nil)
}
