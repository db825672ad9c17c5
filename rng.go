// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import "math/rand/v2"

// RNG is the per-connection random byte source. There is no global RNG:
// every SessionState owns one, and every draw replaces its internal
// state so that identical seeds and identical call sequences always
// produce identical output.
type RNG struct {
	src *rand.ChaCha8
}

// NewRNG seeds a fresh RNG. The same seed always yields the same
// sequence of draws, which is what lets tests replay a handshake
// deterministically.
func NewRNG(seed [32]byte) *RNG {
	return &RNG{src: rand.NewChaCha8(seed)}
}

// Draw returns n fresh random bytes, advancing the RNG's state.
func (r *RNG) Draw(n int) []byte {
	buf := make([]byte, n)
	// ChaCha8.Read never returns an error; it always fills buf.
	_, _ = r.src.Read(buf)
	return buf
}

// WithRNG runs fn against r and returns its result. It exists as the Go
// shape of "run an arbitrary RNG-consuming computation and commit its
// post-state": because r is a pointer every draw fn makes is already
// committed to the caller's RNG, so this is mostly documentation of
// intent at call sites like key-exchange helpers that need to thread
// the RNG through a sub-computation.
func WithRNG[A any](r *RNG, fn func(*RNG) A) A {
	return fn(r)
}
