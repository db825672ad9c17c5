// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, role Role) *SessionState {
	t.Helper()
	var seed [32]byte
	return NewSessionState(role, NewRNG(seed), nil, &fakeCodec{})
}

func TestSTBindThreadsStateForward(t *testing.T) {
	s := newTestState(t, RoleClient)

	setSNI := Bind(Get(), func(st *SessionState) ST[struct{}] {
		return Modify(func(st *SessionState) { st.SetClientSNI("example.com") })
	})

	_, err := Run(s, setSNI)
	require.NoError(t, err)
	require.Equal(t, "example.com", s.ClientSNI())
}

func TestSTFailShortCircuits(t *testing.T) {
	s := newTestState(t, RoleClient)
	boom := errors.New("boom")

	sideEffectRan := false
	chain := Then(Fail[struct{}](boom), Modify(func(*SessionState) { sideEffectRan = true }))

	_, err := Run(s, chain)
	require.ErrorIs(t, err, boom)
	require.False(t, sideEffectRan)
}

func TestSTThenSequencesInOrder(t *testing.T) {
	s := newTestState(t, RoleClient)

	var order []int
	step1 := Modify(func(*SessionState) { order = append(order, 1) })
	step2 := Modify(func(*SessionState) { order = append(order, 2) })

	_, err := Run(s, Then(step1, step2))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, order)
}
