package versiondispatch

import (
	"errors"

	"github.com/BenjaminBossan/versiondispatch/internal/predicate"
)

// InvalidPredicateError reports a predicate that failed to parse at
// registration time: a clause without an operator, an ordered comparison
// on an os/env subject, or a version operand that does not parse.
type InvalidPredicateError = predicate.InvalidError

// PredicateErrorCode categorizes predicate parse errors; see the
// ErrCode constants.
type PredicateErrorCode = predicate.ErrorCode

// Error codes carried by InvalidPredicateError.Code.
const (
	ErrCodeEmpty       = predicate.ErrCodeEmpty
	ErrCodeNoOperator  = predicate.ErrCodeNoOperator
	ErrCodeBadSubject  = predicate.ErrCodeBadSubject
	ErrCodeBadOperator = predicate.ErrCodeBadOperator
	ErrCodeBadVersion  = predicate.ErrCodeBadVersion
)

// ErrBound is returned by Register when the dispatcher has already
// resolved. Registration must complete before the first call.
var ErrBound = errors.New("versiondispatch: dispatcher already bound")

// IsInvalidPredicate reports whether err is (or wraps) an
// *InvalidPredicateError.
func IsInvalidPredicate(err error) bool {
	return predicate.IsInvalid(err)
}
