package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/BenjaminBossan/versiondispatch/internal/predicate"
)

// CheckResult holds the outcome of validating one predicate.
type CheckResult struct {
	Predicate string `json:"predicate"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "check [predicate]...",
		Short: "Validate predicates without evaluating them",
		Long: `Parse-validate predicate text without consulting any facts.

Predicates come from the command line, or from a YAML rules manifest with
-f. Exits 1 if any predicate is invalid. This is the authoring-time check:
a predicate that passes here cannot fail later at registration time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, manifestPath, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "file", "f", "", "rules manifest (YAML) to check")

	return cmd
}

func runCheck(opts *RootOptions, manifestPath string, args []string, cmd *cobra.Command) error {
	preds := args
	if manifestPath != "" {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		for _, r := range m.Rules {
			preds = append(preds, r.Predicate)
		}
	}
	if len(preds) == 0 {
		return errors.New("no predicates given: pass them as arguments or with -f")
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	results := make([]CheckResult, 0, len(preds))
	invalid := 0
	for _, text := range preds {
		res := CheckResult{Predicate: text, Valid: true}
		if _, err := predicate.Parse(text); err != nil {
			res.Valid = false
			res.Error = err.Error()
			invalid++
		}
		results = append(results, res)
	}

	if formatter.JSON() {
		if err := formatter.Emit(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.Valid {
				formatter.Printf("ok\t%s\n", res.Predicate)
			} else {
				formatter.Printf("invalid\t%s\n\t%s\n", res.Predicate, res.Error)
			}
		}
	}

	if invalid > 0 {
		return &ExitError{Code: ExitFailure, Message: "invalid predicates"}
	}
	return nil
}
