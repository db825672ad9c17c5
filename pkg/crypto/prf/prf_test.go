// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package prf

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMasterSecret(t *testing.T) {
	preMasterSecret := []byte{0xdf, 0x4a, 0x29, 0x1b, 0xaa, 0x1e, 0xb7, 0xcf, 0xa6, 0x93, 0x4b, 0x29, 0xb4, 0x74, 0xba, 0xad, 0x26, 0x97, 0xe2, 0x9f, 0x1f, 0x92, 0x0d, 0xcc, 0x77, 0xc8, 0xa0, 0xa0, 0x88, 0x44, 0x76, 0x24}
	clientRandom := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f}
	serverRandom := []byte{0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79, 0x7a, 0x7b, 0x7c, 0x7d, 0x7e, 0x7f, 0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89, 0x8a, 0x8b, 0x8c, 0x8d, 0x8e, 0x8f}
	expectedMasterSecret := []byte{0x91, 0x6a, 0xbf, 0x9d, 0xa5, 0x59, 0x73, 0xe1, 0x36, 0x14, 0xae, 0x0a, 0x3f, 0x5d, 0x3f, 0x37, 0xb0, 0x23, 0xba, 0x12, 0x9a, 0xee, 0x02, 0xcc, 0x91, 0x34, 0x33, 0x81, 0x27, 0xcd, 0x70, 0x49, 0x78, 0x1c, 0x8e, 0x19, 0xfc, 0x1e, 0xb2, 0xa7, 0x38, 0x7a, 0xc0, 0x6a, 0xe2, 0x37, 0x34, 0x4c}

	masterSecret, err := MasterSecret(preMasterSecret, clientRandom, serverRandom, sha256.New)
	require.NoError(t, err)
	require.Equal(t, expectedMasterSecret, masterSecret)
}

func TestVerifyDataDiffersByRole(t *testing.T) {
	masterSecret := make([]byte, 48)
	for i := range masterSecret {
		masterSecret[i] = byte(i)
	}
	transcriptHash := make([]byte, 32)
	for i := range transcriptHash {
		transcriptHash[i] = byte(2 * i)
	}

	client, err := VerifyDataClient(masterSecret, transcriptHash, sha256.New)
	require.NoError(t, err)
	server, err := VerifyDataServer(masterSecret, transcriptHash, sha256.New)
	require.NoError(t, err)

	require.Len(t, client, 12)
	require.Len(t, server, 12)
	require.NotEqual(t, client, server)

	// Deterministic: same inputs, same output.
	again, err := VerifyDataClient(masterSecret, transcriptHash, sha256.New)
	require.NoError(t, err)
	require.Equal(t, client, again)
}
