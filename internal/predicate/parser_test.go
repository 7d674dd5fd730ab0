package predicate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_SingleClause(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		subject Subject
		op      Op
		operand string
	}{
		{"component lt", "numpy<1.0", Subject{Kind: KindComponent, Name: "numpy"}, OpLT, "1.0"},
		{"component le", "numpy<=1.0", Subject{Kind: KindComponent, Name: "numpy"}, OpLE, "1.0"},
		{"component eq", "numpy==1.2.3", Subject{Kind: KindComponent, Name: "numpy"}, OpEQ, "1.2.3"},
		{"component ge", "numpy>=1.0", Subject{Kind: KindComponent, Name: "numpy"}, OpGE, "1.0"},
		{"component gt", "numpy>1.0", Subject{Kind: KindComponent, Name: "numpy"}, OpGT, "1.0"},
		{"module path", "github.com/lib/pq<1.10", Subject{Kind: KindComponent, Name: "github.com/lib/pq"}, OpLT, "1.10"},
		{"runtime", "go>=1.22", Subject{Kind: KindRuntime}, OpGE, "1.22"},
		{"os", "os==linux", Subject{Kind: KindOS}, OpEQ, "linux"},
		{"env", "$LANG==en_US.UTF-8", Subject{Kind: KindEnv, Name: "LANG"}, OpEQ, "en_US.UTF-8"},
		{"whitespace around operator", "numpy <= 1.0", Subject{Kind: KindComponent, Name: "numpy"}, OpLE, "1.0"},
		{"prerelease operand", "numpy<1.0.0-beta", Subject{Kind: KindComponent, Name: "numpy"}, OpLT, "1.0.0-beta"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.text)
			require.NoError(t, err)
			require.Len(t, p.Constraints(), 1)

			c := p.Constraints()[0]
			assert.Equal(t, tc.subject, c.Subject)
			assert.Equal(t, tc.op, c.Op)
			assert.Equal(t, tc.operand, c.Operand)
			assert.Equal(t, tc.text, p.Text())
		})
	}
}

func TestParse_MultipleClauses(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{"comma", "numpy<1.0, sklearn<1.0", []string{"numpy<1.0", "sklearn<1.0"}},
		{"comma no space", "numpy<1.0,sklearn<1.0", []string{"numpy<1.0", "sklearn<1.0"}},
		{"semicolon alias", "numpy<1.0; sklearn<1.0", []string{"numpy<1.0", "sklearn<1.0"}},
		{"mixed separators", "numpy<1.0, go>=1.22; os==linux", []string{"numpy<1.0", "go>=1.22", "os==linux"}},
		{"generous whitespace", "numpy >= 1000 , sklearn <= 1", []string{"numpy>=1000", "sklearn<=1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.text)
			require.NoError(t, err)
			require.Len(t, p.Constraints(), len(tc.want))
			for i, c := range p.Constraints() {
				assert.Equal(t, tc.want[i], c.String())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		text string
		code ErrorCode
	}{
		{"empty", "", ErrCodeEmpty},
		{"blank", "   ", ErrCodeEmpty},
		{"no operator", "numpy", ErrCodeNoOperator},
		{"single equals", "numpy=1.0", ErrCodeNoOperator},
		{"empty clause", "numpy<1.0,,sklearn<1.0", ErrCodeEmpty},
		{"trailing separator", "numpy<1.0,", ErrCodeEmpty},
		{"missing subject", "<1.0", ErrCodeBadSubject},
		{"missing operand", "numpy<", ErrCodeEmpty},
		{"subject with space", "rich kid==1.0", ErrCodeBadSubject},
		{"os ordered comparison", "os<1.0", ErrCodeBadOperator},
		{"os ge", "os>=10.4", ErrCodeBadOperator},
		{"env ordered comparison", "$LANG<1.0", ErrCodeBadOperator},
		{"env bad name", "$LA NG==x", ErrCodeBadSubject},
		{"env empty name", "$==x", ErrCodeBadSubject},
		{"bad version operand", "numpy==1.foo.0", ErrCodeBadVersion},
		{"bad runtime version", "go>one.two", ErrCodeBadVersion},
		{"second clause invalid", "numpy<1.0, sklearn=1.0", ErrCodeNoOperator},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			require.Error(t, err)

			var ie *InvalidError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tc.code, ie.Code)
			assert.Equal(t, tc.text, ie.Predicate)
			assert.True(t, IsInvalid(err))
		})
	}
}

func TestParse_OSOperandVerbatim(t *testing.T) {
	// OS and env operands are opaque strings, not versions.
	p, err := Parse("os==Darwin")
	require.NoError(t, err)
	assert.Equal(t, "Darwin", p.Constraints()[0].Operand)

	p, err = Parse("$PATH==/usr/local/bin:/usr/bin")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin:/usr/bin", p.Constraints()[0].Operand)
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("numpy<1.0") })
	assert.Panics(t, func() { MustParse("numpy=1.0") })
}

// TestParse_RoundTripProperty generates random valid clauses and checks
// that parsing preserves subject, operator, and operand.
func TestParse_RoundTripProperty(t *testing.T) {
	ops := []string{"<", "<=", "==", ">=", ">"}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "clauses")

		var clauses []string
		for i := 0; i < n; i++ {
			name := rapid.StringMatching(`[a-z][a-z0-9]{0,8}(/[a-z][a-z0-9]{0,8}){0,2}`).Draw(rt, fmt.Sprintf("name%d", i))
			if name == RuntimeToken || name == OSToken {
				name += "x"
			}
			op := rapid.SampledFrom(ops).Draw(rt, fmt.Sprintf("op%d", i))
			major := rapid.IntRange(0, 9999).Draw(rt, fmt.Sprintf("major%d", i))
			minor := rapid.IntRange(0, 99).Draw(rt, fmt.Sprintf("minor%d", i))
			clauses = append(clauses, fmt.Sprintf("%s%s%d.%d", name, op, major, minor))
		}

		text := strings.Join(clauses, ", ")
		p, err := Parse(text)
		require.NoError(rt, err)
		require.Len(rt, p.Constraints(), n)
		for i, c := range p.Constraints() {
			require.Equal(rt, clauses[i], c.String())
		}
	})
}

// TestParse_JunkProperty checks that operator-free text never parses.
func TestParse_JunkProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		junk := rapid.StringMatching(`[a-zA-Z0-9._ -]{1,20}`).Draw(rt, "junk")
		if strings.TrimSpace(junk) == "" {
			rt.Skip("blank input is a different error")
		}

		_, err := Parse(junk)
		require.Error(rt, err)

		var ie *InvalidError
		require.ErrorAs(rt, err, &ie)
	})
}
