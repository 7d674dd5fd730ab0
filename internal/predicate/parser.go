package predicate

import (
	"strconv"
	"strings"

	version "github.com/hashicorp/go-version"
)

// Operators ordered longest-first so that "<=" wins over "<" and "==" is
// found before either half of it could be misread.
var operators = []struct {
	text string
	op   Op
}{
	{"==", OpEQ},
	{"<=", OpLE},
	{">=", OpGE},
	{"<", OpLT},
	{">", OpGT},
}

// Parse turns predicate text into a structured Predicate. It is a pure
// function of its input: no facts are consulted and nothing is evaluated.
//
// Clauses are separated by ',' (or ';', accepted as an alias). Whitespace
// around separators, subjects, and operands is trimmed. All validation
// happens here: unknown operators, ordered comparison on os/env subjects,
// and unparseable version operands are rejected with *InvalidError.
func Parse(text string) (Predicate, error) {
	if strings.TrimSpace(text) == "" {
		return Predicate{}, &InvalidError{
			Code:      ErrCodeEmpty,
			Predicate: text,
			Message:   "predicate is empty",
		}
	}

	clauses := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';'
	})
	// FieldsFunc drops empty fields, so ",," would silently shrink the
	// clause list. Count separators to catch that.
	if len(clauses) != strings.Count(text, ",")+strings.Count(text, ";")+1 {
		return Predicate{}, &InvalidError{
			Code:      ErrCodeEmpty,
			Predicate: text,
			Message:   "empty clause",
		}
	}

	constraints := make([]Constraint, 0, len(clauses))
	for _, clause := range clauses {
		c, err := parseClause(text, clause)
		if err != nil {
			return Predicate{}, err
		}
		constraints = append(constraints, c)
	}

	return Predicate{text: text, constraints: constraints}, nil
}

// MustParse is like Parse but panics on error. For tests and fixed
// predicates known valid at compile time.
func MustParse(text string) Predicate {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

func parseClause(predicate, clause string) (Constraint, error) {
	trimmed := strings.TrimSpace(clause)
	if trimmed == "" {
		return Constraint{}, &InvalidError{
			Code:      ErrCodeEmpty,
			Predicate: predicate,
			Message:   "empty clause",
		}
	}

	subjText, op, operand, found := splitOperator(trimmed)
	if !found {
		return Constraint{}, &InvalidError{
			Code:      ErrCodeNoOperator,
			Predicate: predicate,
			Clause:    trimmed,
			Message:   "no operator found, expected one of < <= == >= >",
		}
	}

	subj, err := parseSubject(predicate, trimmed, strings.TrimSpace(subjText))
	if err != nil {
		return Constraint{}, err
	}

	operand = strings.TrimSpace(operand)
	if operand == "" {
		return Constraint{}, &InvalidError{
			Code:      ErrCodeEmpty,
			Predicate: predicate,
			Clause:    trimmed,
			Message:   "missing operand",
		}
	}

	c := Constraint{Subject: subj, Op: op, Operand: operand}

	switch subj.Kind {
	case KindOS, KindEnv:
		// Opaque strings ordered by nothing: equality only.
		if op != OpEQ {
			return Constraint{}, &InvalidError{
				Code:      ErrCodeBadOperator,
				Predicate: predicate,
				Clause:    trimmed,
				Message:   "only == is supported for " + subj.Kind.String() + " subjects",
			}
		}
	default:
		ver, err := version.NewVersion(operand)
		if err != nil {
			return Constraint{}, &InvalidError{
				Code:      ErrCodeBadVersion,
				Predicate: predicate,
				Clause:    trimmed,
				Message:   "invalid version " + strconv.Quote(operand),
			}
		}
		c.ver = ver
	}

	return c, nil
}

// splitOperator finds the first operator occurrence in the clause,
// preferring two-character operators at each position.
func splitOperator(clause string) (subject string, op Op, operand string, found bool) {
	for i := 0; i < len(clause); i++ {
		for _, cand := range operators {
			if strings.HasPrefix(clause[i:], cand.text) {
				return clause[:i], cand.op, clause[i+len(cand.text):], true
			}
		}
	}
	return "", 0, "", false
}

func parseSubject(predicate, clause, text string) (Subject, error) {
	switch {
	case text == "":
		return Subject{}, &InvalidError{
			Code:      ErrCodeBadSubject,
			Predicate: predicate,
			Clause:    clause,
			Message:   "missing subject",
		}
	case text == RuntimeToken:
		return Subject{Kind: KindRuntime}, nil
	case text == OSToken:
		return Subject{Kind: KindOS}, nil
	case strings.HasPrefix(text, EnvMarker):
		name := text[len(EnvMarker):]
		if !validEnvName(name) {
			return Subject{}, &InvalidError{
				Code:      ErrCodeBadSubject,
				Predicate: predicate,
				Clause:    clause,
				Message:   "invalid environment variable name " + strconv.Quote(name),
			}
		}
		return Subject{Kind: KindEnv, Name: name}, nil
	default:
		if !validComponentName(text) {
			return Subject{}, &InvalidError{
				Code:      ErrCodeBadSubject,
				Predicate: predicate,
				Clause:    clause,
				Message:   "invalid component name " + strconv.Quote(text),
			}
		}
		return Subject{Kind: KindComponent, Name: text}, nil
	}
}

// validEnvName accepts the POSIX-ish name charset: letters, digits, and
// underscore, non-empty.
func validEnvName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// validComponentName accepts Go module path characters. The goal is to
// reject obvious garbage like internal whitespace, not to fully validate
// module path syntax.
func validComponentName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_' || r == '/' || r == '~' || r == '+':
		default:
			return false
		}
	}
	return true
}
