// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"fmt"

	"github.com/veridiantls/tlscore/pkg/protocol/alert"
)

// TLSError is the single error channel this core reports through. It is
// a closed discriminated union: ProtocolError, DecodeError, and KXError
// are its only variants. A switch over a TLSError's concrete type should
// end in a panicking default arm so a new, unhandled variant fails
// loudly rather than silently falling through.
type TLSError interface {
	error
	isTLSError()
}

// ProtocolError is a semantic handshake violation: bad Finished MAC,
// renegotiation-extension mismatch, a missing required certificate.
// Fatal reports whether the caller must tear down the connection;
// Description is the alert the caller should send back.
type ProtocolError struct {
	Message     string
	Fatal       bool
	Description alert.Description
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s (%s)", e.Message, e.Description)
}

func (*ProtocolError) isTLSError() {}

// DecodeError wraps a malformed-wire-bytes failure from the codec layer.
// Always fatal at the protocol level.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode error: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }
func (*DecodeError) isTLSError()     {}

// KXError wraps an RSA key-exchange failure. It is never returned from
// processHandshake: ClientKeyExchange absorbs it via the anti-rollback
// countermeasure (see kx.go). It exists so kxDecrypt has a typed error
// to report to callers that bypass the countermeasure in tests.
type KXError struct {
	Err error
}

func (e *KXError) Error() string { return fmt.Sprintf("key exchange error: %v", e.Err) }
func (e *KXError) Unwrap() error { return e.Err }
func (*KXError) isTLSError()     {}

func protocolError(message string, fatal bool, desc alert.Description) *ProtocolError {
	return &ProtocolError{Message: message, Fatal: fatal, Description: desc}
}

// internalInvariantError panics with a named error describing a caller
// bug (reading version before it is set, or a handshake-scoped field
// while no handshake is in progress). These never cross the TLSError
// channel; they indicate the core itself was misused.
type internalInvariantError struct {
	Message string
}

func (e *internalInvariantError) Error() string { return "internal invariant violated: " + e.Message }

func panicInvariant(message string) {
	panic(&internalInvariantError{Message: message})
}
