// Package versiondispatch selects between alternative implementations of a
// function based on the environment the process runs in: versions of the
// modules the binary was built with, the Go runtime version, the operating
// system, and environment variables.
//
// It replaces version checks scattered through function bodies with a
// declarative registration table that is resolved once. After the first
// call, dispatch is a single atomic load; predicates are never re-evaluated.
//
// # Usage
//
// Create a dispatcher around the default implementation and register
// alternatives guarded by predicates:
//
//	var greet = versiondispatch.New(func() string { return "default" })
//
//	func init() {
//		greet.MustRegister("github.com/lib/pq<1.10", func() string { return "old pq" })
//		greet.MustRegister("os==windows, go>=1.24", func() string { return "modern windows" })
//	}
//
//	func Greet() string { return greet.Call()() }
//
// When several registered predicates match, the most recently registered
// one wins, regardless of which predicate is more specific. When none
// match, the default implementation is used.
//
// # Resolution
//
// Resolution is lazy: the first Call evaluates all predicates, picks the
// winner, and binds it under a one-time initialization guard, so concurrent
// first calls are safe and resolution runs exactly once. Registration must
// complete before the first call; Register returns ErrBound afterwards.
// Package init ordering gives this for free when registrations live in
// init functions.
//
// # Predicates
//
// A predicate is one or more comma-separated clauses, ANDed together.
// Each clause is subject, operator, operand:
//
//	github.com/lib/pq<1.10    component (module path), version comparison
//	go>=1.22                  Go runtime version
//	os==linux                 operating system (GOOS), equality only
//	$LANG==en_US.UTF-8        environment variable, equality only
//
// Version operators are < <= == >= >. Malformed predicates fail at
// registration time, never silently at call time. A component that is not
// compiled into the binary makes its clause false rather than failing.
package versiondispatch
