// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package prf implements the TLS 1.2 pseudo-random function and the two
// derivations this core needs from it: the master secret and Finished
// verify data. Full key-schedule derivation (key/IV expansion for the
// record cipher) is out of scope; only the master-secret entry point the
// handshake processor calls is implemented.
//
// https://tools.ietf.org/html/rfc5246#section-5
package prf

import (
	"crypto/hmac"
	"hash"
)

const masterSecretLength = 48

var (
	clientFinishedLabel = []byte("client finished")
	serverFinishedLabel = []byte("server finished")
	masterSecretLabel   = []byte("master secret")
)

// pHash implements the P_hash function from RFC 5246 section 5.
func pHash(result []byte, secret, seed []byte, hashFunc func() hash.Hash) error {
	h := hmac.New(hashFunc, secret)

	h.Write(seed) //nolint:errcheck
	a := h.Sum(nil)

	for len(result) > 0 {
		h.Reset()
		h.Write(a)    //nolint:errcheck
		h.Write(seed) //nolint:errcheck
		b := h.Sum(nil)

		n := copy(result, b)
		result = result[n:]

		h.Reset()
		h.Write(a) //nolint:errcheck
		a = h.Sum(nil)
	}
	return nil
}

// MasterSecret derives the 48-byte master secret from the premaster
// secret and the two hello randoms.
//
// https://tools.ietf.org/html/rfc5246#section-8.1
func MasterSecret(preMasterSecret, clientRandom, serverRandom []byte, hashFunc func() hash.Hash) ([]byte, error) {
	seed := append(append([]byte{}, clientRandom...), serverRandom...)
	out := make([]byte, masterSecretLength)
	if err := pHash(out, preMasterSecret, append(append([]byte{}, masterSecretLabel...), seed...), hashFunc); err != nil {
		return nil, err
	}
	return out, nil
}

func verifyData(masterSecret []byte, transcriptHash []byte, label []byte, hashFunc func() hash.Hash) ([]byte, error) {
	out := make([]byte, 12)
	seed := append(append([]byte{}, label...), transcriptHash...)
	if err := pHash(out, masterSecret, seed, hashFunc); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyDataClient computes the Finished verify data a client sends,
// over the running transcript hash up to (but not including) its own
// Finished message.
func VerifyDataClient(masterSecret, transcriptHash []byte, hashFunc func() hash.Hash) ([]byte, error) {
	return verifyData(masterSecret, transcriptHash, clientFinishedLabel, hashFunc)
}

// VerifyDataServer computes the Finished verify data a server sends,
// over the running transcript hash up to (but not including) its own
// Finished message.
func VerifyDataServer(masterSecret, transcriptHash []byte, hashFunc func() hash.Hash) ([]byte, error) {
	return verifyData(masterSecret, transcriptHash, serverFinishedLabel, hashFunc)
}
