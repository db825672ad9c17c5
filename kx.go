// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"crypto/rsa"
	"hash"
	"io"

	"github.com/veridiantls/tlscore/pkg/crypto/prf"
	"github.com/veridiantls/tlscore/pkg/crypto/signaturehash"
	"github.com/veridiantls/tlscore/pkg/protocol"
)

const preMasterSecretLength = 48

// rngReader adapts an RNG to io.Reader so crypto/rsa's blinding-capable
// primitives can draw randomness through the connection's own seeded
// source instead of crypto/rand's global reader.
type rngReader struct{ rng *RNG }

func (r rngReader) Read(p []byte) (int, error) {
	copy(p, r.rng.Draw(len(p)))
	return len(p), nil
}

// Reader exposes r as an io.Reader for callers (like crypto/rsa) that
// need a random source rather than a fixed-length draw.
func (r *RNG) Reader() io.Reader { return rngReader{rng: r} }

// kxDecrypt attempts RSA decryption of a ClientKeyExchange ciphertext
// using crypto/rsa.DecryptPKCS1v15, passing the session RNG as its
// random source; crypto/rsa blinds internally and ignores that argument,
// so no bytes are drawn from the RNG here. This is
// a soft failure: its error is never surfaced to the caller of
// processHandshake, only absorbed by choosePreMasterSecret below.
func kxDecrypt(rng *RNG, priv *rsa.PrivateKey, cipherText []byte) ([]byte, error) {
	pt, err := rsa.DecryptPKCS1v15(rng.Reader(), priv, cipherText)
	if err != nil {
		return nil, &KXError{Err: err}
	}
	return pt, nil
}

// choosePreMasterSecret implements the CVE-2003-0147-style anti-rollback
// countermeasure. It always draws a fresh 48-byte random premaster and
// always attempts decryption, following the exact same sequence of
// operations whether or not decryption succeeds, so that decrypt
// failure, codec decode failure, and version mismatch are all
// indistinguishable from a successful decrypt of an attacker-controlled
// plaintext that happens to carry the wrong version. Parsing the
// two-byte version prefix and 46 bytes of randomness out of the
// decrypted plaintext is delegated to codec.DecodePreMasterSecret; the
// comparison against clientHelloVersion is made here.
func choosePreMasterSecret(rng *RNG, priv *rsa.PrivateKey, clientHelloVersion protocol.Version, cipherText []byte, codec Codec) []byte {
	random := rng.Draw(preMasterSecretLength)

	decrypted, decryptErr := kxDecrypt(rng, priv, cipherText)
	pre, err := codec.DecodePreMasterSecret(decrypted, clientHelloVersion)
	if decryptErr != nil || err != nil || !pre.Version.Equal(clientHelloVersion) {
		return random
	}
	return pre.Bytes()
}

// deriveMasterSecretFromClientKeyExchange runs the full RSA
// ClientKeyExchange path: choose the premaster per the anti-rollback
// rule, then derive and store the 48-byte master secret. It never
// returns an error: the only possible failure inside prf.MasterSecret
// is an internal invariant (an unavailable hash function), which would
// indicate a misconfigured cipher suite, not a protocol event.
func deriveMasterSecretFromClientKeyExchange(s *SessionState, priv *rsa.PrivateKey, cipherText []byte, hashFunc func() hash.Hash) {
	h := s.Handshake()
	pre := choosePreMasterSecret(s.RNG(), priv, h.clientVersion, cipherText, s.Codec())

	master, err := prf.MasterSecret(pre, h.clientRandom, h.serverRandom, hashFunc)
	if err != nil {
		panicInvariant("master secret derivation failed: " + err.Error())
	}
	h.masterSecret = master
	s.logf("master secret derived")
}

// VerifyRSA checks a CertificateVerify signature over content using
// pub. It returns false rather than an error: a bad signature is a
// protocol-level rejection the caller turns into an alert, not a
// mechanical failure.
func VerifyRSA(pub *rsa.PublicKey, alg signaturehash.Algorithm, content, signature []byte) bool {
	cryptoHash := alg.Hash.CryptoHash()
	if cryptoHash == 0 || !cryptoHash.Available() {
		return false
	}
	h := cryptoHash.New()
	h.Write(content) //nolint:errcheck
	return rsa.VerifyPKCS1v15(pub, cryptoHash, h.Sum(nil), signature) == nil
}
