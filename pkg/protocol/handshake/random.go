// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package handshake

import (
	"encoding/binary"
	"time"
)

// RandomLength is the wire length of a ClientHello/ServerHello random.
//
// https://tools.ietf.org/html/rfc5246#section-7.4.1.2
const RandomLength = 32

// Random is the 32-byte nonce carried in ClientHello and ServerHello: a
// 4-byte GMT timestamp followed by 28 bytes drawn from the RNG facility.
type Random struct {
	GMTUnixTime time.Time
	RandomBytes [28]byte
}

// MarshalFixed returns the 32-byte wire encoding.
func (r Random) MarshalFixed() [RandomLength]byte {
	var out [RandomLength]byte
	binary.BigEndian.PutUint32(out[:4], uint32(r.GMTUnixTime.Unix()))
	copy(out[4:], r.RandomBytes[:])
	return out
}

// UnmarshalFixed populates Random from its 32-byte wire encoding.
func (r *Random) UnmarshalFixed(raw [RandomLength]byte) {
	r.GMTUnixTime = time.Unix(int64(binary.BigEndian.Uint32(raw[:4])), 0)
	copy(r.RandomBytes[:], raw[4:])
}
