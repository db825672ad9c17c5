// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

// ST is a sequenced, failable computation over a *SessionState: the
// Go-idiomatic equivalent of "mutable state object passed by exclusive
// reference, plus an early return for typed errors". A failing ST
// short-circuits the rest of a Bind/Then chain; Run is the single
// top-level entry point that drives one to completion.
type ST[A any] func(*SessionState) (A, error)

// Get reads the whole state without modifying it.
func Get() ST[*SessionState] {
	return func(s *SessionState) (*SessionState, error) {
		return s, nil
	}
}

// Put replaces the whole state with a copy of n and produces no value.
func Put(n *SessionState) ST[struct{}] {
	return func(s *SessionState) (struct{}, error) {
		*s = *n
		return struct{}{}, nil
	}
}

// Modify mutates the state in place and produces no value.
func Modify(f func(*SessionState)) ST[struct{}] {
	return func(s *SessionState) (struct{}, error) {
		f(s)
		return struct{}{}, nil
	}
}

// Fail short-circuits the computation with a typed error.
func Fail[A any](err error) ST[A] {
	return func(*SessionState) (A, error) {
		var zero A
		return zero, err
	}
}

// Return lifts a plain value into ST without touching state.
func Return[A any](a A) ST[A] {
	return func(*SessionState) (A, error) {
		return a, nil
	}
}

// Run drives m against s, returning either the failure or the produced
// value. s is mutated in place, so after a failure it holds the state at
// the point of failure.
func Run[A any](s *SessionState, m ST[A]) (A, error) {
	return m(s)
}

// Bind sequences m then f, threading m's result into f and short
// circuiting on either step's failure.
func Bind[A, B any](m ST[A], f func(A) ST[B]) ST[B] {
	return func(s *SessionState) (B, error) {
		a, err := m(s)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a)(s)
	}
}

// Then sequences m then next, discarding m's result.
func Then[A, B any](m ST[A], next ST[B]) ST[B] {
	return Bind(m, func(A) ST[B] { return next })
}
