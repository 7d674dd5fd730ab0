// Package predicate implements the constraint language used to select
// between alternative implementations: parsing textual predicates like
//
//	"github.com/lib/pq<1.10, go>=1.22, os==linux, $LANG==C"
//
// into structured constraints, and evaluating them against a fact source.
//
// A predicate is one or more comma-separated clauses combined by AND.
// Each clause compares a subject against an operand:
//
//   - "go" (reserved) compares the Go runtime version; operators < <= == >= >
//   - "os" (reserved) compares the operating system identity; == only
//   - "$NAME" compares an environment variable; == only
//   - any other subject names a component (a Go module path) whose
//     installed version is compared; operators < <= == >= >
//
// Version operands are validated at parse time, so malformed predicates
// fail before any evaluation happens. Evaluation never fails on absent
// facts: a component that is not installed or an unset environment
// variable makes its clause false.
package predicate
