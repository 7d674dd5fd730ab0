package predicate

import (
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"
)

// Reserved subject tokens and markers.
const (
	// RuntimeToken is the reserved subject naming the Go runtime version.
	RuntimeToken = "go"

	// OSToken is the reserved subject naming the operating system identity.
	OSToken = "os"

	// EnvMarker prefixes environment-variable subjects.
	EnvMarker = "$"
)

// Kind discriminates the four subject kinds a clause can compare.
type Kind int

const (
	// KindComponent compares the installed version of a named component.
	KindComponent Kind = iota

	// KindRuntime compares the Go runtime version.
	KindRuntime

	// KindOS compares the operating system identity string.
	KindOS

	// KindEnv compares an environment variable's value.
	KindEnv
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindRuntime:
		return "runtime"
	case KindOS:
		return "os"
	case KindEnv:
		return "env"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Subject identifies what a clause compares. Name is the component module
// path for KindComponent and the variable name for KindEnv; it is empty
// for the two reserved kinds.
type Subject struct {
	Kind Kind
	Name string
}

func (s Subject) String() string {
	switch s.Kind {
	case KindRuntime:
		return RuntimeToken
	case KindOS:
		return OSToken
	case KindEnv:
		return EnvMarker + s.Name
	}
	return s.Name
}

// Op is a comparison operator.
type Op int

const (
	OpLT Op = iota
	OpLE
	OpEQ
	OpGE
	OpGT
)

func (op Op) String() string {
	switch op {
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpEQ:
		return "=="
	case OpGE:
		return ">="
	case OpGT:
		return ">"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// holds reports whether the ordered comparison result cmp (negative, zero,
// positive) satisfies the operator.
func (op Op) holds(cmp int) bool {
	switch op {
	case OpLT:
		return cmp < 0
	case OpLE:
		return cmp <= 0
	case OpEQ:
		return cmp == 0
	case OpGE:
		return cmp >= 0
	case OpGT:
		return cmp > 0
	}
	return false
}

// Constraint is a single subject/operator/operand comparison. For version
// subjects the operand is pre-parsed at Parse time and cached in ver.
type Constraint struct {
	Subject Subject
	Op      Op
	Operand string

	ver *version.Version
}

func (c Constraint) String() string {
	return c.Subject.String() + c.Op.String() + c.Operand
}

// Predicate is a non-empty AND-combination of constraints.
type Predicate struct {
	text        string
	constraints []Constraint
}

// Text returns the original predicate text.
func (p Predicate) Text() string { return p.text }

// Constraints returns the parsed clauses in source order.
func (p Predicate) Constraints() []Constraint { return p.constraints }

func (p Predicate) String() string {
	parts := make([]string, len(p.constraints))
	for i, c := range p.constraints {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
