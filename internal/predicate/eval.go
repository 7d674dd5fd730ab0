package predicate

import (
	"errors"
	"fmt"

	version "github.com/hashicorp/go-version"

	"github.com/BenjaminBossan/versiondispatch/facts"
)

// Eval evaluates the predicate against a fact source. Clauses are ANDed
// in source order with short-circuit on the first false clause.
//
// Absent facts never fail evaluation: a component that is not installed
// or an unset environment variable makes its clause false. A non-nil
// error is only returned when the fact source itself malfunctions
// (corrupt build metadata); callers treat that as fatal.
func (p Predicate) Eval(src facts.Source) (bool, error) {
	for _, c := range p.constraints {
		ok, err := c.eval(src)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (c Constraint) eval(src facts.Source) (bool, error) {
	switch c.Subject.Kind {
	case KindRuntime:
		return c.Op.holds(src.RuntimeVersion().Compare(c.ver)), nil
	case KindOS:
		// Exact, case-sensitive string equality.
		return src.OS() == c.Operand, nil
	case KindEnv:
		val, ok := src.Env(c.Subject.Name)
		return ok && val == c.Operand, nil
	case KindComponent:
		v, err := c.componentVersion(src)
		if err != nil || v == nil {
			return false, err
		}
		return c.Op.holds(v.Compare(c.ver)), nil
	}
	return false, fmt.Errorf("unknown subject kind %v", c.Subject.Kind)
}

// componentVersion looks up the clause's component. A nil version with a
// nil error means the component is not installed.
func (c Constraint) componentVersion(src facts.Source) (*version.Version, error) {
	v, err := src.ComponentVersion(c.Subject.Name)
	if errors.Is(err, facts.ErrUnavailable) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", c.Subject.Name, err)
	}
	return v, nil
}

// ClauseResult reports how a single clause evaluated, for diagnostics.
type ClauseResult struct {
	Clause  string `json:"clause"`
	Matched bool   `json:"matched"`

	// Actual is the observed fact value, empty when unavailable.
	Actual string `json:"actual,omitempty"`

	// Available reports whether the fact could be observed at all.
	Available bool `json:"available"`
}

// Explain evaluates every clause without short-circuiting and reports
// per-clause outcomes. The predicate matches iff all results match.
func (p Predicate) Explain(src facts.Source) ([]ClauseResult, error) {
	results := make([]ClauseResult, 0, len(p.constraints))
	for _, c := range p.constraints {
		res := ClauseResult{Clause: c.String()}

		switch c.Subject.Kind {
		case KindRuntime:
			v := src.RuntimeVersion()
			res.Actual, res.Available = v.String(), true
			res.Matched = c.Op.holds(v.Compare(c.ver))
		case KindOS:
			res.Actual, res.Available = src.OS(), true
			res.Matched = res.Actual == c.Operand
		case KindEnv:
			res.Actual, res.Available = src.Env(c.Subject.Name)
			res.Matched = res.Available && res.Actual == c.Operand
		case KindComponent:
			v, err := c.componentVersion(src)
			if err != nil {
				return nil, err
			}
			if v != nil {
				res.Actual, res.Available = v.String(), true
				res.Matched = c.Op.holds(v.Compare(c.ver))
			}
		}

		results = append(results, res)
	}
	return results, nil
}
