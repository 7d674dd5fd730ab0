package cli

import (
	"github.com/spf13/cobra"

	"github.com/BenjaminBossan/versiondispatch/internal/predicate"
)

// EvalResult holds the outcome of evaluating one predicate.
type EvalResult struct {
	Predicate string                   `json:"predicate"`
	Matched   bool                     `json:"matched"`
	Clauses   []predicate.ClauseResult `json:"clauses"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	var factsPath string

	cmd := &cobra.Command{
		Use:   "eval <predicate>",
		Short: "Evaluate a predicate against environment facts",
		Long: `Parse a predicate and evaluate it clause by clause.

Facts come from the running binary's own environment by default (note that
component versions are then the modules this CLI was built with), or from
a YAML facts fixture with --facts:

    runtime: "1.24.0"
    os: linux
    env:
      LANG: en_US.UTF-8
    components:
      github.com/lib/pq: "1.9.0"

Exits 0 when the predicate matches, 1 when it does not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, factsPath, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&factsPath, "facts", "", "facts fixture (YAML) instead of the process environment")

	return cmd
}

func runEval(opts *RootOptions, factsPath, text string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	pred, err := predicate.Parse(text)
	if err != nil {
		return err
	}

	src, err := LoadFacts(factsPath)
	if err != nil {
		return err
	}

	clauses, err := pred.Explain(src)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "fact query failed", Err: err}
	}

	result := EvalResult{Predicate: text, Matched: true, Clauses: clauses}
	for _, c := range clauses {
		if !c.Matched {
			result.Matched = false
		}
	}

	if formatter.JSON() {
		if err := formatter.Emit(result); err != nil {
			return err
		}
	} else {
		for _, c := range clauses {
			status := "miss"
			if c.Matched {
				status = "match"
			}
			actual := c.Actual
			if !c.Available {
				actual = "(unavailable)"
			}
			formatter.Printf("%s\t%s\tactual=%s\n", status, c.Clause, actual)
		}
		if result.Matched {
			formatter.Printf("matched\n")
		} else {
			formatter.Printf("not matched\n")
		}
	}

	if !result.Matched {
		return &ExitError{Code: ExitFailure, Message: "predicate did not match"}
	}
	return nil
}
