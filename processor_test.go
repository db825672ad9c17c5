// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veridiantls/tlscore/pkg/protocol"
	"github.com/veridiantls/tlscore/pkg/protocol/handshake"
	"github.com/zmap/zcrypto/x509"
)

func TestMaterialSetMembership(t *testing.T) {
	cases := []struct {
		t                  handshake.Type
		wantCertVerifyMat  bool
		wantFinishedMat    bool
	}{
		{handshake.TypeHelloRequest, false, false},
		{handshake.TypeClientHello, true, true},
		{handshake.TypeServerHello, true, true},
		{handshake.TypeCertificate, true, true},
		{handshake.TypeServerKeyExchange, true, true},
		{handshake.TypeCertificateRequest, true, true},
		{handshake.TypeServerHelloDone, true, true},
		{handshake.TypeClientKeyExchange, true, true},
		{handshake.TypeCertificateVerify, false, true},
		{handshake.TypeFinished, false, false},
		{handshake.TypeNextProtocol, false, true}, // unknown-to-the-named-sets default (O1)
	}

	for _, c := range cases {
		require.Equal(t, c.wantCertVerifyMat, isCertVerifyMaterial(c.t), "CertVerify set: %s", c.t)
		require.Equal(t, c.wantFinishedMat, isFinishedMaterial(c.t), "Finished set: %s", c.t)
	}
}

// TestProcessHandshakeRawUnknownTypeDefaultsPerO1 exercises O1 via the
// vehicle handshake.Raw actually documents for it: a handshake type this
// core never named, not a named-but-otherwise-unhandled type like
// TypeNextProtocol.
func TestProcessHandshakeRawUnknownTypeDefaultsPerO1(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()

	const unknownType = handshake.Type(99)
	msg := &handshake.Raw{MsgType: unknownType, Body: []byte{0xAB, 0xCD}}

	require.NoError(t, ProcessHandshake(s, msg))

	encoded, err := handshake.Encode(msg)
	require.NoError(t, err)
	require.Empty(t, s.Handshake().handshakeMessages)       // excluded from CertVerify set (O1)
	require.Equal(t, encoded, s.Handshake().finishedMaterial) // included in Finished set (O1)
}

func TestProcessHandshakeUpdatesTranscript(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()

	ch := &handshake.MessageClientHello{Version: protocol.Version1_2, SessionID: []byte{0x01}}
	err := ProcessHandshake(s, ch)
	require.NoError(t, err)

	encoded, err := handshake.Encode(ch)
	require.NoError(t, err)
	require.Equal(t, encoded, s.Handshake().handshakeMessages) // I2
	require.Equal(t, encoded, s.Handshake().finishedMaterial)  // I1 (buffered, hashed on demand)

	hr := &handshake.MessageHelloRequest{}
	err = ProcessHandshake(s, hr)
	require.NoError(t, err)
	// HelloRequest is excluded from both sets: transcript unchanged.
	require.Equal(t, encoded, s.Handshake().handshakeMessages)
	require.Equal(t, encoded, s.Handshake().finishedMaterial)
}

func TestProcessClientHelloStampsVersionAndRandom(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()

	ch := &handshake.MessageClientHello{Version: protocol.Version1_2}
	require.NoError(t, ProcessHandshake(s, ch))

	require.True(t, s.Handshake().clientVersion.Equal(protocol.Version1_2))
	require.Len(t, s.Handshake().clientRandom, handshake.RandomLength)
}

func TestProcessCertificateMissingOnClientIsFatal(t *testing.T) {
	s := newTestState(t, RoleClient)
	s.BeginHandshake()

	err := ProcessHandshake(s, &handshake.MessageCertificate{})
	require.Error(t, err)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.True(t, pe.Fatal)
	require.Equal(t, "server certificate missing", pe.Message)
}

func TestProcessCertificateEmptyChainPermittedOnServer(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()

	err := ProcessHandshake(s, &handshake.MessageCertificate{})
	require.NoError(t, err)
}

func TestProcessCertificateSetsPublicKey(t *testing.T) {
	s := newTestState(t, RoleClient)
	s.BeginHandshake()

	cert := &x509.Certificate{Raw: []byte{0x01, 0x02, 0x03}, PublicKey: "fake-pubkey-for-test"}
	err := ProcessHandshake(s, &handshake.MessageCertificate{Chain: []*x509.Certificate{cert}})
	require.NoError(t, err)
	require.Equal(t, "fake-pubkey-for-test", s.Handshake().publicKey)
}

func TestProcessClientHelloRenegotiationMismatchIsFatal(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()
	s.SetClientVerifyData([]byte{0x01, 0x02, 0x03})

	// Encodes SecureRenegotiation(0x01 0x02 0x04, None): one byte off
	// from what the session remembers.
	mismatched := []byte{0x03, 0x01, 0x02, 0x04}

	ch := &handshake.MessageClientHello{
		Extensions: []handshake.Extension{{Type: handshake.ExtensionTypeRenegotiationInfo, Data: mismatched}},
	}
	err := ProcessHandshake(s, ch)
	require.Error(t, err)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.True(t, pe.Fatal)
	require.False(t, s.SecureRenegotiation())
}

func TestProcessClientHelloRenegotiationMatchSetsFlag(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()
	s.SetClientVerifyData([]byte{0x01, 0x02, 0x03})

	matching := []byte{0x03, 0x01, 0x02, 0x03}
	ch := &handshake.MessageClientHello{
		Extensions: []handshake.Extension{{Type: handshake.ExtensionTypeRenegotiationInfo, Data: matching}},
	}
	require.NoError(t, ProcessHandshake(s, ch))
	require.True(t, s.SecureRenegotiation())
}

// TestSecureRenegotiationIsMonotonic is I5: once established, the flag
// survives a later failed renegotiation attempt on the same connection.
func TestSecureRenegotiationIsMonotonic(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()
	s.SetClientVerifyData([]byte{0x01, 0x02, 0x03})

	matching := []byte{0x03, 0x01, 0x02, 0x03}
	require.NoError(t, ProcessHandshake(s, &handshake.MessageClientHello{
		Extensions: []handshake.Extension{{Type: handshake.ExtensionTypeRenegotiationInfo, Data: matching}},
	}))
	require.True(t, s.SecureRenegotiation())

	// A later renegotiation attempt with a mismatched extension fails,
	// but the flag this connection already earned must not revert.
	s.BeginHandshake()
	s.SetClientVerifyData([]byte{0x01, 0x02, 0x03})
	mismatched := []byte{0x03, 0x01, 0x02, 0x04}
	err := ProcessHandshake(s, &handshake.MessageClientHello{
		Extensions: []handshake.Extension{{Type: handshake.ExtensionTypeRenegotiationInfo, Data: mismatched}},
	})
	require.Error(t, err)
	require.True(t, s.SecureRenegotiation())
}

func TestProcessFinishedMismatchIsBadRecordMac(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()
	s.Handshake().SetPendingCipher(TLS_RSA_WITH_AES_128_GCM_SHA256())
	s.Handshake().masterSecret = make([]byte, 48)

	err := ProcessHandshake(s, &handshake.MessageFinished{VerifyData: []byte("not the real verify data!!!")})
	require.Error(t, err)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.True(t, pe.Fatal)
	require.Equal(t, "bad record mac", pe.Message)
}

func TestProcessFinishedSuccessStoresVerifyData(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.BeginHandshake()
	cs := TLS_RSA_WITH_AES_128_GCM_SHA256()
	s.Handshake().SetPendingCipher(cs)
	s.Handshake().masterSecret = make([]byte, 48)

	hashFunc := cs.HashFunc()
	expected, err := verifyDataFor(RoleClient, s.Handshake().masterSecret, s.Handshake().digest(hashFunc), hashFunc)
	require.NoError(t, err)

	require.NoError(t, ProcessHandshake(s, &handshake.MessageFinished{VerifyData: expected}))
	require.Equal(t, expected, s.ClientVerifyData())
}

func TestReadingHandshakeWhileIdlePanics(t *testing.T) {
	s := newTestState(t, RoleServer)
	require.Panics(t, func() { s.Handshake() })
}

func TestReadingVersionBeforeNegotiationPanics(t *testing.T) {
	s := newTestState(t, RoleServer)
	require.Panics(t, func() { s.Version() })
}

func TestSetVersionRejectsSilentChange(t *testing.T) {
	s := newTestState(t, RoleServer)
	require.NoError(t, s.SetVersion(protocol.Version1_2))
	err := s.SetVersion(protocol.Version1_1)
	require.Error(t, err)
}

func TestSetVersionIfUnsetIsNoOpAfterFirstSet(t *testing.T) {
	s := newTestState(t, RoleServer)
	s.SetVersionIfUnset(protocol.Version1_2)
	s.SetVersionIfUnset(protocol.Version1_0)
	require.True(t, s.Version().Equal(protocol.Version1_2))
}
