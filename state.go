// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package tlscore implements the receive-side handshake state machine
// and per-connection session state of a TLS endpoint: record
// classification, handshake dispatch, transcript digest maintenance,
// RSA ClientKeyExchange decryption with its anti-rollback
// countermeasure, Finished verification, and renegotiation-extension
// verification. The byte-level record layer, the wire codec, cipher
// tables, X.509 validation, the send-side state machine, and connection
// I/O are all external collaborators this package calls into or is
// called from, never reimplements.
package tlscore

import (
	"github.com/pion/logging"
	"github.com/veridiantls/tlscore/pkg/protocol"
	"github.com/veridiantls/tlscore/pkg/protocol/alert"
	"github.com/zmap/zcrypto/x509"
)

// downgradeAlert is sent when a peer attempts to silently change an
// already-negotiated protocol version.
const downgradeAlert = alert.ProtocolVersion

// Role is fixed at connection creation and never changes.
type Role byte

// Roles.
const (
	RoleClient Role = iota
	RoleServer
)

func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}

// SessionState is the single-threaded, per-connection record every
// component in this package reads and mutates. It is created once at
// connection construction and destroyed with the connection; there is
// no pooling or reuse across connections.
type SessionState struct {
	role Role

	version      *protocol.Version
	sessionID    []byte
	resuming     bool

	secureRenegotiation bool
	clientVerifyData    []byte
	serverVerifyData    []byte

	serverEndPoint []byte

	extensionALPN              bool
	extensionNPN               bool
	negotiatedProtocol         []byte
	clientALPNSuggest          [][]byte
	clientGroupSuggest         []uint16
	clientEcPointFormatSuggest []byte

	clientCertificateChain []*x509.Certificate
	clientSNI              string

	// handshakeRecordCont/handshakeRecordCont13 hold whatever
	// undecoded tail bytes the external wire codec left behind when a
	// handshake record's fragment didn't end on a message boundary.
	// They are stored and read back only through
	// SetHandshakeRecordContinuations/HandshakeRecordContinuations;
	// ProcessPacket does not pass them to the codec.
	handshakeRecordCont   []byte
	handshakeRecordCont13 []byte

	randomGen *RNG

	// TLS 1.3 fields. Full 1.3 post-handshake logic is out of scope;
	// these are held because later handshake steps read them back.
	keyShare             []byte
	preSharedKey         []byte
	helloRetryRequest    bool
	cookie               []byte
	exporterMasterSecret []byte
	clientSupportsPHA    bool

	tls12SessionTicket []byte

	handshake *HandshakeState

	logger logging.LeveledLogger
	codec  Codec
}

// NewSessionState constructs a fresh, idle session state for one
// connection. The caller supplies a seeded RNG (deterministic tests
// inject their own seed), a leveled logger, and the wire codec this core
// calls back into wherever it needs to interpret bytes it does not own
// the grammar for (currently: decoding an RSA-decrypted premaster secret
// during ClientKeyExchange).
func NewSessionState(role Role, rng *RNG, logger logging.LeveledLogger, codec Codec) *SessionState {
	return &SessionState{role: role, randomGen: rng, logger: logger, codec: codec}
}

// Role returns the fixed role this state was created with.
func (s *SessionState) Role() Role { return s.role }

// Version returns the negotiated version. Reading before it is set is a
// caller bug and panics with an internal invariant error.
func (s *SessionState) Version() protocol.Version {
	if s.version == nil {
		panicInvariant("Version read before it was negotiated")
	}
	return *s.version
}

// HasVersion reports whether a version has been negotiated yet.
func (s *SessionState) HasVersion() bool { return s.version != nil }

// SetVersion sets the negotiated version. Calling it a second time with
// a different value is a protocol error (I4); calling it again with the
// same value is harmless.
func (s *SessionState) SetVersion(v protocol.Version) error {
	if s.version != nil && !s.version.Equal(v) {
		return protocolError("version renegotiated to a different value", true, downgradeAlert)
	}
	s.version = &v
	s.logf("version negotiated: %s", v)
	return nil
}

// SetVersionIfUnset sets the negotiated version only if none has been
// set yet; otherwise it is a no-op (I4).
func (s *SessionState) SetVersionIfUnset(v protocol.Version) {
	if s.version == nil {
		s.version = &v
		s.logf("version negotiated: %s", v)
	}
}

// SessionID returns the abstract session identifier and whether this
// handshake is resuming a prior session.
func (s *SessionState) SessionID() ([]byte, bool) { return s.sessionID, s.resuming }

// SetSessionID records the session identifier and resumption flag.
func (s *SessionState) SetSessionID(id []byte, resuming bool) {
	s.sessionID = id
	s.resuming = resuming
}

// SecureRenegotiation reports whether the connection has ever completed
// a verified renegotiation-indication handshake.
func (s *SessionState) SecureRenegotiation() bool { return s.secureRenegotiation }

// setSecureRenegotiation is monotonic: it can only ever set the flag to
// true (I5); callers never need to revert it.
func (s *SessionState) setSecureRenegotiation() {
	if !s.secureRenegotiation {
		s.secureRenegotiation = true
		s.logf("secure renegotiation established")
	}
}

// ClientVerifyData returns the client's most recently validated
// Finished verify data, if any.
func (s *SessionState) ClientVerifyData() []byte { return s.clientVerifyData }

// SetClientVerifyData records the client's verify data.
func (s *SessionState) SetClientVerifyData(data []byte) { s.clientVerifyData = data }

// ServerVerifyData returns the server's most recently validated
// Finished verify data, if any.
func (s *SessionState) ServerVerifyData() []byte { return s.serverVerifyData }

// SetServerVerifyData records the server's verify data.
func (s *SessionState) SetServerVerifyData(data []byte) { s.serverVerifyData = data }

// ResetVerifyData clears both sides' verify data; called when a fresh
// handshake begins.
func (s *SessionState) ResetVerifyData() {
	s.clientVerifyData = nil
	s.serverVerifyData = nil
}

// ServerEndPoint returns the channel-binding material captured from the
// server's certificate.
func (s *SessionState) ServerEndPoint() []byte { return s.serverEndPoint }

// SetServerEndPoint records channel-binding material.
func (s *SessionState) SetServerEndPoint(b []byte) { s.serverEndPoint = b }

// ExtensionALPN reports whether ALPN was advertised.
func (s *SessionState) ExtensionALPN() bool { return s.extensionALPN }

// SetExtensionALPN records whether ALPN was advertised.
func (s *SessionState) SetExtensionALPN(v bool) { s.extensionALPN = v }

// ExtensionNPN reports whether Next Protocol Negotiation was advertised.
func (s *SessionState) ExtensionNPN() bool { return s.extensionNPN }

// SetExtensionNPN records whether NPN was advertised.
func (s *SessionState) SetExtensionNPN(v bool) { s.extensionNPN = v }

// NegotiatedProtocol returns the ALPN-selected protocol, if any.
func (s *SessionState) NegotiatedProtocol() []byte { return s.negotiatedProtocol }

// SetNegotiatedProtocol records the ALPN-selected protocol.
func (s *SessionState) SetNegotiatedProtocol(p []byte) { s.negotiatedProtocol = p }

// ClientALPNSuggest returns the client's advertised ALPN protocol list.
func (s *SessionState) ClientALPNSuggest() [][]byte { return s.clientALPNSuggest }

// SetClientALPNSuggest records the client's advertised ALPN protocol list.
func (s *SessionState) SetClientALPNSuggest(p [][]byte) { s.clientALPNSuggest = p }

// ClientGroupSuggest returns the client's advertised named groups.
func (s *SessionState) ClientGroupSuggest() []uint16 { return s.clientGroupSuggest }

// SetClientGroupSuggest records the client's advertised named groups.
func (s *SessionState) SetClientGroupSuggest(g []uint16) { s.clientGroupSuggest = g }

// ClientEcPointFormatSuggest returns the client's advertised EC point formats.
func (s *SessionState) ClientEcPointFormatSuggest() []byte { return s.clientEcPointFormatSuggest }

// SetClientEcPointFormatSuggest records the client's advertised EC point formats.
func (s *SessionState) SetClientEcPointFormatSuggest(f []byte) { s.clientEcPointFormatSuggest = f }

// ClientCertificateChain returns the client certificate chain a server
// observed, leaf first, if any.
func (s *SessionState) ClientCertificateChain() []*x509.Certificate { return s.clientCertificateChain }

// SetClientCertificateChain records the client certificate chain.
func (s *SessionState) SetClientCertificateChain(chain []*x509.Certificate) {
	s.clientCertificateChain = chain
}

// ClientSNI returns the host name the client requested via SNI.
func (s *SessionState) ClientSNI() string { return s.clientSNI }

// SetClientSNI records the host name the client requested via SNI.
func (s *SessionState) SetClientSNI(name string) { s.clientSNI = name }

// KeyShare, PreSharedKey, HelloRetryRequest, Cookie,
// ExporterMasterSecret, and ClientSupportsPHA are the TLS 1.3 fields
// this state holds but does not itself process.
func (s *SessionState) KeyShare() []byte             { return s.keyShare }
func (s *SessionState) SetKeyShare(b []byte)         { s.keyShare = b }
func (s *SessionState) PreSharedKey() []byte         { return s.preSharedKey }
func (s *SessionState) SetPreSharedKey(b []byte)     { s.preSharedKey = b }
func (s *SessionState) HelloRetryRequest() bool       { return s.helloRetryRequest }
func (s *SessionState) SetHelloRetryRequest(v bool)   { s.helloRetryRequest = v }
func (s *SessionState) Cookie() []byte               { return s.cookie }
func (s *SessionState) SetCookie(b []byte)           { s.cookie = b }
func (s *SessionState) ExporterMasterSecret() []byte { return s.exporterMasterSecret }
func (s *SessionState) SetExporterMasterSecret(b []byte) { s.exporterMasterSecret = b }
func (s *SessionState) ClientSupportsPHA() bool       { return s.clientSupportsPHA }
func (s *SessionState) SetClientSupportsPHA(v bool)   { s.clientSupportsPHA = v }

// TLS12SessionTicket returns the stored session ticket, if any.
func (s *SessionState) TLS12SessionTicket() []byte { return s.tls12SessionTicket }

// SetTLS12SessionTicket records a session ticket.
func (s *SessionState) SetTLS12SessionTicket(b []byte) { s.tls12SessionTicket = b }

// HandshakeRecordContinuations returns the external wire codec's
// leftover undecoded bytes for the pre-1.3 and 1.3 record streams.
func (s *SessionState) HandshakeRecordContinuations() (pre13, tls13 []byte) {
	return s.handshakeRecordCont, s.handshakeRecordCont13
}

// SetHandshakeRecordContinuations stores the codec's leftover bytes.
func (s *SessionState) SetHandshakeRecordContinuations(pre13, tls13 []byte) {
	s.handshakeRecordCont = pre13
	s.handshakeRecordCont13 = tls13
}

// RNG returns the session's random byte source.
func (s *SessionState) RNG() *RNG { return s.randomGen }

// Codec returns the wire codec this session was constructed with.
func (s *SessionState) Codec() Codec { return s.codec }

// InHandshake reports whether a handshake substate is currently
// allocated (invariant 1).
func (s *SessionState) InHandshake() bool { return s.handshake != nil }

// Handshake returns the in-progress handshake substate. Calling it
// while idle is a caller bug and panics.
func (s *SessionState) Handshake() *HandshakeState {
	if s.handshake == nil {
		panicInvariant("Handshake accessed while no handshake is in progress")
	}
	return s.handshake
}

// BeginHandshake allocates a fresh handshake substate and resets both
// sides' verify data. Called at ClientHello (server) or in anticipation
// of one (client).
func (s *SessionState) BeginHandshake() {
	s.handshake = newHandshakeState()
	s.ResetVerifyData()
	s.logf("handshake begun")
}

// EndHandshake tears down the handshake substate once Finished has been
// verified on both sides (invariant 1).
func (s *SessionState) EndHandshake() {
	s.handshake = nil
	s.logf("handshake complete")
}

func (s *SessionState) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Tracef(format, args...)
	}
}

func (s *SessionState) errorf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Errorf(format, args...)
	}
}
