package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/BenjaminBossan/versiondispatch/facts"
)

// NewFactsCommand creates the facts command.
func NewFactsCommand(rootOpts *RootOptions) *cobra.Command {
	var factsPath string

	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Show the fact base predicates are evaluated against",
		Long: `Print the runtime version, operating system, and component versions
the evaluator would see: the process environment by default, or a YAML
facts fixture with --facts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacts(rootOpts, factsPath, cmd)
		},
	}

	cmd.Flags().StringVar(&factsPath, "facts", "", "facts fixture (YAML) instead of the process environment")

	return cmd
}

func runFacts(opts *RootOptions, factsPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	var report facts.Report
	if factsPath == "" {
		report = facts.SystemReport()
	} else {
		st, err := LoadStatic(factsPath)
		if err != nil {
			return err
		}
		report = st.Report()
	}

	if formatter.JSON() {
		return formatter.Emit(report)
	}

	formatter.Printf("runtime\t%s\n", report.Runtime)
	formatter.Printf("os\t%s\n", report.OS)
	for _, name := range sortedKeys(report.Env) {
		formatter.Printf("$%s\t%s\n", name, report.Env[name])
	}
	for _, name := range sortedKeys(report.Components) {
		formatter.Printf("%s\t%s\n", name, report.Components[name])
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
