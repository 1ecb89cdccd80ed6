// Package export serializes extraction results: pretty JSON for humans,
// NDJSON for streaming consumers, SCIP for editor tooling, each
// optionally zstd compressed.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"symgraph/internal/extract"
	"symgraph/internal/slogutil"
	"symgraph/internal/version"
)

// Format selects the serialization of an export.
type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatSCIP   Format = "scip"
)

// Options controls a single export run.
type Options struct {
	Format   Format
	Path     string // "-" writes to stdout
	Compress bool   // zstd-wrap the output stream
}

// Snapshot is the top-level JSON export document.
type Snapshot struct {
	Version     string               `json:"version"`
	GeneratedAt time.Time            `json:"generatedAt"`
	FileCount   int                  `json:"fileCount"`
	Files       []*extract.FileGraph `json:"files"`
}

// Exporter writes extraction results in the configured format.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter creates an exporter. A nil logger discards.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Exporter{logger: logger}
}

// Export writes the graphs per the options.
func (e *Exporter) Export(graphs []*extract.FileGraph, opts Options) error {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Path == "" {
		opts.Path = "-"
	}

	w, closeFn, err := e.openSink(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	e.logger.Debug("exporting", "format", string(opts.Format), "files", len(graphs), "path", opts.Path)

	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, graphs)
	case FormatNDJSON:
		return writeNDJSON(w, graphs)
	case FormatYAML:
		return writeYAML(w, graphs)
	case FormatSCIP:
		return writeSCIP(w, graphs)
	default:
		return fmt.Errorf("unknown export format %q", opts.Format)
	}
}

// openSink opens the output stream, layering zstd when asked. The
// returned close function flushes every layer.
func (e *Exporter) openSink(opts Options) (io.Writer, func(), error) {
	var out io.WriteCloser
	if opts.Path == "-" {
		out = nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(opts.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("create %s: %w", opts.Path, err)
		}
		out = f
	}

	compress := opts.Compress || strings.HasSuffix(opts.Path, ".zst")
	if !compress {
		return out, func() { out.Close() }, nil
	}

	zw, err := zstd.NewWriter(out)
	if err != nil {
		out.Close()
		return nil, nil, fmt.Errorf("zstd writer: %w", err)
	}
	return zw, func() {
		zw.Close()
		out.Close()
	}, nil
}

func writeJSON(w io.Writer, graphs []*extract.FileGraph) error {
	snap := Snapshot{
		Version:     version.Version,
		GeneratedAt: time.Now().UTC(),
		FileCount:   len(graphs),
		Files:       graphs,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// writeNDJSON emits one file graph per line, no wrapper document, so
// consumers can stream arbitrarily large exports.
func writeNDJSON(w io.Writer, graphs []*extract.FileGraph) error {
	enc := json.NewEncoder(w)
	for _, fg := range graphs {
		if err := enc.Encode(fg); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, graphs []*extract.FileGraph) error {
	snap := Snapshot{
		Version:     version.Version,
		GeneratedAt: time.Now().UTC(),
		FileCount:   len(graphs),
		Files:       graphs,
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(snap)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
