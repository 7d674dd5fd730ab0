package predicate

import (
	"errors"
	"fmt"
)

// InvalidError reports a predicate that cannot be parsed. It is surfaced
// at registration time so that authoring mistakes fail before any call.
type InvalidError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Predicate is the full predicate text being parsed.
	Predicate string

	// Clause is the offending clause, when one can be isolated.
	Clause string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes predicate parse errors.
type ErrorCode string

const (
	// ErrCodeEmpty indicates an empty predicate or empty clause.
	ErrCodeEmpty ErrorCode = "EMPTY_PREDICATE"

	// ErrCodeNoOperator indicates a clause without a recognized operator.
	ErrCodeNoOperator ErrorCode = "NO_OPERATOR"

	// ErrCodeBadSubject indicates a malformed subject identifier.
	ErrCodeBadSubject ErrorCode = "BAD_SUBJECT"

	// ErrCodeBadOperator indicates an operator not permitted for the
	// clause's subject kind (ordered comparison on os/env subjects).
	ErrCodeBadOperator ErrorCode = "BAD_OPERATOR"

	// ErrCodeBadVersion indicates a version operand that does not parse.
	ErrCodeBadVersion ErrorCode = "BAD_VERSION"
)

// Error implements the error interface.
func (e *InvalidError) Error() string {
	if e.Clause != "" {
		return fmt.Sprintf("%s: %s (clause %q in %q)", e.Code, e.Message, e.Clause, e.Predicate)
	}
	return fmt.Sprintf("%s: %s (%q)", e.Code, e.Message, e.Predicate)
}

// IsInvalid reports whether err is (or wraps) an InvalidError.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}
