package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"symgraph/internal/slogutil"
	"symgraph/internal/version"
)

var (
	// verbosity is the CLI -v flag count
	verbosity int
	// quiet suppresses all log output
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "symgraph",
	Short: "symgraph - multi-language symbol graph extractor",
	Long: `symgraph parses source files with tree-sitter grammars and extracts a
graph of symbol definitions, usage-site identifiers, and relationships
across some thirty languages. Identifiers are recorded unresolved; edge
resolution happens in whatever consumes the graph.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("symgraph version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Suppress all log output")
}

// newLogger builds the stderr logger for a command run, honoring the
// verbosity flags.
func newLogger() *slog.Logger {
	return slogutil.NewStderrLogger(slogutil.LevelFromVerbosity(verbosity, quiet))
}
