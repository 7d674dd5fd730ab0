// Package facts answers "what does the current environment look like"
// questions for predicate evaluation: the Go runtime version, the operating
// system identity, environment variables, and the versions of the modules
// the running binary was built with.
//
// Two sources are provided. System reads the real process environment and
// build info; Static is a fixture source for tests and CLI fact files.
//
// Component and environment-variable lookups distinguish "not present"
// (ErrUnavailable, a defined non-match) from genuine failures, which
// callers treat as fatal.
package facts
