// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veridiantls/tlscore/pkg/crypto/signaturehash"
	"github.com/veridiantls/tlscore/pkg/protocol"
	"github.com/veridiantls/tlscore/pkg/protocol/handshake"
)

func genRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestChoosePreMasterSecretAcceptsValidPremaster(t *testing.T) {
	priv := genRSAKey(t)
	var seed [32]byte
	rng := NewRNG(seed)

	clientVersion := protocol.Version1_2
	plaintext := append([]byte{clientVersion.Major, clientVersion.Minor}, rng.Draw(46)...)
	cipherText, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, plaintext)
	require.NoError(t, err)

	out := choosePreMasterSecret(rng, priv, clientVersion, cipherText, &fakeCodec{})
	require.Equal(t, plaintext, out)
}

func TestChoosePreMasterSecretRollbackUsesRandomFallback(t *testing.T) {
	priv := genRSAKey(t)
	var seed [32]byte
	rng := NewRNG(seed)

	clientHelloVersion := protocol.Version1_2
	// Plaintext declares TLS 1.0, not the negotiated TLS 1.2 — a
	// version-rollback attempt.
	plaintext := append([]byte{protocol.Version1_0.Major, protocol.Version1_0.Minor}, make([]byte, 46)...)
	cipherText, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, plaintext)
	require.NoError(t, err)

	out := choosePreMasterSecret(rng, priv, clientHelloVersion, cipherText, &fakeCodec{})
	require.NotEqual(t, plaintext, out)
	require.Len(t, out, preMasterSecretLength)
}

func TestChoosePreMasterSecretTamperedCiphertextUsesRandomFallback(t *testing.T) {
	priv := genRSAKey(t)
	var seed [32]byte
	rng := NewRNG(seed)

	clientVersion := protocol.Version1_2
	plaintext := append([]byte{clientVersion.Major, clientVersion.Minor}, make([]byte, 46)...)
	cipherText, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, plaintext)
	require.NoError(t, err)
	cipherText[0] ^= 0xff // flip bits: decryption should now fail or mismatch

	out := choosePreMasterSecret(rng, priv, clientVersion, cipherText, &fakeCodec{})
	require.Len(t, out, preMasterSecretLength)
	require.NotEqual(t, plaintext, out)
}

func TestDeriveMasterSecretFromClientKeyExchangeNeverPanics(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()
	priv := genRSAKey(t)
	cs := TLS_RSA_WITH_AES_128_GCM_SHA256()
	s.Handshake().SetPendingCipher(cs)
	s.Handshake().clientVersion = protocol.Version1_2
	s.Handshake().clientRandom = make([]byte, handshake.RandomLength)
	s.Handshake().serverRandom = make([]byte, handshake.RandomLength)
	s.Handshake().rsaPrivateKey = priv

	cipherText, err := rsa.EncryptPKCS1v15(rand.Reader, &priv.PublicKey, make([]byte, 48))
	require.NoError(t, err)

	require.NotPanics(t, func() {
		deriveMasterSecretFromClientKeyExchange(s, priv, cipherText, cs.HashFunc())
	})
	require.Len(t, s.Handshake().MasterSecret(), 48)
}

func TestVerifyRSAAcceptsValidSignature(t *testing.T) {
	priv := genRSAKey(t)
	content := []byte("CertificateVerify content")
	digest := sha256.Sum256(content)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	require.NoError(t, err)

	alg := signaturehash.Algorithm{Hash: signaturehash.HashSHA256, Signature: signaturehash.SignatureRSA}
	require.True(t, VerifyRSA(&priv.PublicKey, alg, content, sig))
}

func TestVerifyRSARejectsTamperedSignature(t *testing.T) {
	priv := genRSAKey(t)
	content := []byte("CertificateVerify content")
	digest := sha256.Sum256(content)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
	require.NoError(t, err)
	sig[0] ^= 0xff

	alg := signaturehash.Algorithm{Hash: signaturehash.HashSHA256, Signature: signaturehash.SignatureRSA}
	require.False(t, VerifyRSA(&priv.PublicKey, alg, content, sig))
}

func TestVerifyRSARejectsUnavailableHash(t *testing.T) {
	priv := genRSAKey(t)

	// HashEd25519 has no crypto.Hash mapping (CryptoHash returns 0), so
	// VerifyRSA must reject it before ever looking at the signature.
	alg := signaturehash.Algorithm{Hash: signaturehash.HashEd25519, Signature: signaturehash.SignatureEd25519}
	require.False(t, VerifyRSA(&priv.PublicKey, alg, []byte("content"), []byte("not even a signature")))
}
