package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"symgraph/internal/config"
	"symgraph/internal/containment"
	"symgraph/internal/export"
	"symgraph/internal/extract"
	"symgraph/internal/lang"
	"symgraph/internal/model"
)

var (
	extractFormat       string
	extractOutput       string
	extractCompress     bool
	extractContextLines int
)

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Extract the symbol graph from a file or directory",
	Long: `Parse a source file, or walk a directory tree, and extract symbols,
identifiers, and relationships into the chosen output format.

Identifier targets are left unresolved on purpose; resolution belongs
to the consumer of the graph.`,
	Args: cobra.ExactArgs(1),
	Run:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "Output format (json, ndjson, yaml, scip)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output path (default stdout)")
	extractCmd.Flags().BoolVar(&extractCompress, "compress", false, "zstd-compress the output")
	extractCmd.Flags().IntVar(&extractContextLines, "context-lines", -1, "Lines of context captured around each symbol")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	logger := newLogger()
	target := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := lang.DefaultRegistry()
	applyPriorityOverrides(registry, cfg)

	manager := extract.NewManager(registry, logger)
	switch {
	case extractContextLines >= 0:
		manager.SetContextLines(extractContextLines)
	case cfg.Extraction.ContextLines >= 0:
		manager.SetContextLines(cfg.Extraction.ContextLines)
	}

	ctx := context.Background()
	graphs, err := extractTarget(ctx, manager, cfg, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting %s: %v\n", target, err)
		os.Exit(1)
	}

	opts := export.Options{
		Format:   export.Format(cfg.Output.Format),
		Path:     cfg.Output.Path,
		Compress: cfg.Output.Compress || extractCompress,
	}
	if extractFormat != "" {
		opts.Format = export.Format(extractFormat)
	}
	if extractOutput != "" {
		opts.Path = extractOutput
	}

	if err := export.NewExporter(logger).Export(graphs, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// extractTarget runs single-file extraction for a file path and a
// filtered walk for a directory.
func extractTarget(ctx context.Context, manager *extract.Manager, cfg *config.Config, target string) ([]*extract.FileGraph, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		content, err := os.ReadFile(target)
		if err != nil {
			return nil, err
		}
		fg, err := manager.ExtractFile(ctx, target, content)
		if err != nil {
			return nil, err
		}
		return []*extract.FileGraph{fg}, nil
	}

	filter := func(path string) bool {
		if cfg.Extraction.MaxFileSizeBytes > 0 {
			if fi, err := os.Stat(path); err == nil && fi.Size() > int64(cfg.Extraction.MaxFileSizeBytes) {
				return false
			}
		}
		for _, pattern := range cfg.Extraction.Ignore {
			if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
				return false
			}
		}
		return true
	}
	return manager.ExtractDirectory(ctx, target, filter)
}

// applyPriorityOverrides pushes per-language containment rankings from
// the config file into the registry.
func applyPriorityOverrides(registry *extract.Registry, cfg *config.Config) {
	for language, kinds := range cfg.Extraction.Priorities {
		priorities := containment.Default()
		for kind, rank := range kinds {
			priorities[model.SymbolKind(kind)] = rank
		}
		registry.SetPriorities(language, priorities)
	}
}
