// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package extension implements the handful of ClientHello/ServerHello
// extensions this core's handshake processor inspects directly
// (renegotiation_info). All other extension grammars are the external
// wire codec's concern.
package extension

import (
	"errors"

	"github.com/veridiantls/tlscore/pkg/protocol"
)

var (
	errRenegotiationInfoTooLong = &protocol.FatalError{
		Err: errors.New("renegotiation_info payload exceeds 255 bytes"),
	}
	errRenegotiationInfoMalformed = &protocol.TemporaryError{
		Err: errors.New("renegotiation_info payload malformed"),
	}
)
