// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"crypto/rsa"
	"crypto/subtle"
	"hash"

	"github.com/veridiantls/tlscore/pkg/crypto/prf"
	"github.com/veridiantls/tlscore/pkg/protocol/alert"
	"github.com/veridiantls/tlscore/pkg/protocol/handshake"
)

// isCertVerifyMaterial reports whether t belongs to the CertVerify
// material set (§4.4). Unknown types default to excluded.
func isCertVerifyMaterial(t handshake.Type) bool {
	switch t {
	case handshake.TypeClientHello,
		handshake.TypeServerHello,
		handshake.TypeCertificate,
		handshake.TypeServerHelloDone,
		handshake.TypeClientKeyExchange,
		handshake.TypeServerKeyExchange,
		handshake.TypeCertificateRequest:
		return true
	default:
		return false
	}
}

// isFinishedMaterial reports whether t belongs to the Finished material
// set (§4.4): the CertVerify set plus CertificateVerify, excluding
// HelloRequest and Finished itself. Unknown types default to included
// (open question O1, preserved bit-for-bit).
func isFinishedMaterial(t handshake.Type) bool {
	switch t {
	case handshake.TypeHelloRequest, handshake.TypeFinished:
		return false
	default:
		return true
	}
}

// SetRSAPrivateKey installs the server's RSA private key for the
// current handshake, used by ClientKeyExchange decryption.
func (h *HandshakeState) SetRSAPrivateKey(priv *rsa.PrivateKey) {
	h.requireNonNil("SetRSAPrivateKey")
	h.rsaPrivateKey = priv
}

// SetPendingCipher records the cipher suite ServerHello selected.
func (h *HandshakeState) SetPendingCipher(cs CipherSuite) {
	h.requireNonNil("SetPendingCipher")
	h.pendingCipher = cs
}

// PendingCipher returns the cipher suite ServerHello selected, or nil
// before it has been.
func (h *HandshakeState) PendingCipher() CipherSuite {
	h.requireNonNil("PendingCipher")
	return h.pendingCipher
}

// MasterSecret returns the derived master secret once ClientKeyExchange
// has been processed.
func (h *HandshakeState) MasterSecret() []byte {
	h.requireNonNil("MasterSecret")
	return h.masterSecret
}

// ProcessHandshake applies one decoded handshake message to s: it runs
// the message's role-gated side effect (if any), then unconditionally
// updates the transcript per the CertVerify/Finished material sets.
// ServerHello's side effects are NOT run here (see ProcessServerHello);
// this still folds ServerHello's bytes into the transcript like any
// other message.
func ProcessHandshake(s *SessionState, m handshake.Message) error {
	if err := applyRoleSpecific(s, m); err != nil {
		return err
	}

	encoded, err := handshake.Encode(m)
	if err != nil {
		return &DecodeError{Err: err}
	}

	h := s.Handshake()
	if isCertVerifyMaterial(m.Type()) {
		h.appendCertVerifyMaterial(encoded)
	}
	if isFinishedMaterial(m.Type()) {
		h.foldFinishedMaterial(encoded)
	}
	return nil
}

func applyRoleSpecific(s *SessionState, m handshake.Message) error {
	switch msg := m.(type) {
	case *handshake.MessageClientHello:
		if s.Role() != RoleServer {
			return nil
		}
		return processClientHello(s, msg)

	case *handshake.MessageCertificate:
		return processCertificate(s, msg)

	case *handshake.MessageClientKeyExchange:
		if s.Role() != RoleServer {
			return nil
		}
		return processClientKeyExchange(s, msg)

	case *handshake.MessageNextProtocol:
		if s.Role() != RoleServer {
			return nil
		}
		s.Handshake().negotiatedNPNProtocol = msg.SelectedProtocol
		s.logf("client selected NPN protocol %q", msg.SelectedProtocol)
		return nil

	case *handshake.MessageFinished:
		return processFinished(s, msg)

	default:
		return nil
	}
}

func processClientHello(s *SessionState, m *handshake.MessageClientHello) error {
	if ext, ok := handshake.Find(m.Extensions, handshake.ExtensionTypeRenegotiationInfo); ok {
		if err := verifyRenegotiationClientHello(s, ext.Data); err != nil {
			return err
		}
	}

	h := s.Handshake()
	h.clientVersion = m.Version
	random := m.Random.MarshalFixed()
	h.clientRandom = random[:]
	return nil
}

func processCertificate(s *SessionState, m *handshake.MessageCertificate) error {
	h := s.Handshake()

	if len(m.Chain) == 0 {
		if s.Role() == RoleServer {
			// A client declining to send a certificate is permitted.
			return nil
		}
		s.errorf("server sent an empty certificate chain")
		return protocolError("server certificate missing", true, alert.HandshakeFailure)
	}

	leaf := m.Chain[0]
	if s.Role() == RoleClient {
		h.publicKey = leaf.PublicKey
	} else {
		h.clientPublicKey = leaf.PublicKey
		s.SetClientCertificateChain(m.Chain)
	}
	return nil
}

func processClientKeyExchange(s *SessionState, m *handshake.MessageClientKeyExchange) error {
	h := s.Handshake()
	if h.rsaPrivateKey == nil {
		panicInvariant("ClientKeyExchange processed with no RSA private key installed")
	}
	hashFunc := s.finishedHashFunc()
	deriveMasterSecretFromClientKeyExchange(s, h.rsaPrivateKey, m.EncryptedPreMasterSecret, hashFunc)
	return nil
}

func processFinished(s *SessionState, m *handshake.MessageFinished) error {
	h := s.Handshake()
	hashFunc := s.finishedHashFunc()
	transcript := h.digest(hashFunc)

	var expected []byte
	var err error
	// The expected Finished data is computed for the sender's side: if
	// we are the server receiving, that is the client's PRF label.
	if s.Role() == RoleServer {
		expected, err = verifyDataFor(RoleClient, h.masterSecret, transcript, hashFunc)
	} else {
		expected, err = verifyDataFor(RoleServer, h.masterSecret, transcript, hashFunc)
	}
	if err != nil {
		return &DecodeError{Err: err}
	}

	if subtle.ConstantTimeCompare(expected, m.VerifyData) != 1 {
		s.errorf("Finished verify data mismatch")
		return protocolError("bad record mac", true, alert.BadRecordMac)
	}

	if s.Role() == RoleServer {
		s.SetClientVerifyData(m.VerifyData)
	} else {
		s.SetServerVerifyData(m.VerifyData)
	}
	return nil
}

// finishedHashFunc returns the hash constructor the current handshake's
// pending cipher uses for PRF/Finished computation. Reading it before a
// cipher has been negotiated is an internal invariant error.
func (s *SessionState) finishedHashFunc() func() hash.Hash {
	cs := s.Handshake().pendingCipher
	if cs == nil {
		panicInvariant("Finished-related PRF requested before a cipher suite was negotiated")
	}
	return cs.HashFunc()
}

// verifyDataFor computes the Finished verify data the given role would
// have sent, over transcript.
func verifyDataFor(role Role, masterSecret, transcript []byte, hashFunc func() hash.Hash) ([]byte, error) {
	if role == RoleClient {
		return prf.VerifyDataClient(masterSecret, transcript, hashFunc)
	}
	return prf.VerifyDataServer(masterSecret, transcript, hashFunc)
}
