// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package protocol

import "fmt"

// Version is the two-byte protocol version carried in every TLS record
// and in ClientHello/ServerHello.
//
// https://tools.ietf.org/html/rfc5246#section-6.2.1
type Version struct {
	Major, Minor byte
}

// TLS protocol versions this core recognizes.
var (
	Version1_0 = Version{Major: 0x03, Minor: 0x01}
	Version1_1 = Version{Major: 0x03, Minor: 0x02}
	Version1_2 = Version{Major: 0x03, Minor: 0x03}
	Version1_3 = Version{Major: 0x03, Minor: 0x04}
)

// Equal reports whether two versions are identical.
func (v Version) Equal(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// Less reports whether v negotiates an earlier protocol version than other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

func (v Version) String() string {
	switch {
	case v.Equal(Version1_3):
		return "TLS 1.3"
	case v.Equal(Version1_2):
		return "TLS 1.2"
	case v.Equal(Version1_1):
		return "TLS 1.1"
	case v.Equal(Version1_0):
		return "TLS 1.0"
	default:
		return fmt.Sprintf("TLS (%d,%d)", v.Major, v.Minor)
	}
}
