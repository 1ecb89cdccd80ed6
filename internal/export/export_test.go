package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"

	"symgraph/internal/extract"
	"symgraph/internal/identity"
	"symgraph/internal/model"
)

func sampleGraphs() []*extract.FileGraph {
	sym := model.Symbol{
		ID:        identity.GenerateID("greet", 3, 0),
		Name:      "greet",
		Kind:      model.KindFunction,
		Language:  "go",
		FilePath:  "greet.go",
		StartLine: 3,
		EndLine:   5,
		EndCol:    1,
	}
	return []*extract.FileGraph{
		{
			FilePath: "greet.go",
			Language: "go",
			Symbols:  []model.Symbol{sym},
			Identifiers: []model.Identifier{
				{
					ID:        identity.GenerateID("println", 4, 1),
					Name:      "println",
					Kind:      model.IdentCall,
					Language:  "go",
					FilePath:  "greet.go",
					StartLine: 4,
					EndLine:   4,
				},
			},
		},
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	e := NewExporter(nil)
	if err := e.Export(sampleGraphs(), Options{Format: FormatJSON, Path: path}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if snap.FileCount != 1 || len(snap.Files) != 1 {
		t.Errorf("fileCount=%d files=%d, want 1/1", snap.FileCount, len(snap.Files))
	}
	if snap.Files[0].Symbols[0].Name != "greet" {
		t.Errorf("symbol name = %q", snap.Files[0].Symbols[0].Name)
	}
}

func TestExportNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	e := NewExporter(nil)
	graphs := append(sampleGraphs(), &extract.FileGraph{FilePath: "other.go", Language: "go"})
	if err := e.Export(graphs, Options{Format: FormatNDJSON, Path: path}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("ndjson lines = %d, want 2", len(lines))
	}
	for i, line := range lines {
		var fg extract.FileGraph
		if err := json.Unmarshal([]byte(line), &fg); err != nil {
			t.Errorf("line %d is not a standalone JSON document: %v", i+1, err)
		}
	}
}

func TestExportCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json.zst")
	e := NewExporter(nil)
	if err := e.Export(sampleGraphs(), Options{Format: FormatJSON, Path: path}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a zstd stream: %v", err)
	}
	defer r.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.IOReadCloser()); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("decompressed payload is not valid JSON: %v", err)
	}
}

func TestExportSCIP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.scip")
	e := NewExporter(nil)
	if err := e.Export(sampleGraphs(), Options{Format: FormatSCIP, Path: path}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		t.Fatalf("output is not a SCIP index: %v", err)
	}
	if index.Metadata.ToolInfo.Name != "symgraph" {
		t.Errorf("tool name = %q", index.Metadata.ToolInfo.Name)
	}
	if len(index.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(index.Documents))
	}
	doc := index.Documents[0]
	if doc.RelativePath != "greet.go" || doc.Language != "go" {
		t.Errorf("document path=%q language=%q", doc.RelativePath, doc.Language)
	}
	if len(doc.Symbols) != 1 {
		t.Fatalf("scip symbols = %d, want 1", len(doc.Symbols))
	}
	if doc.Symbols[0].Kind != scippb.SymbolInformation_Function {
		t.Errorf("scip kind = %v, want Function", doc.Symbols[0].Kind)
	}
	// Definition occurrence plus the identifier reference.
	if len(doc.Occurrences) != 2 {
		t.Errorf("occurrences = %d, want 2", len(doc.Occurrences))
	}
	if doc.Occurrences[0].Range[0] != 2 {
		t.Errorf("occurrence start line = %d, want 0-based 2", doc.Occurrences[0].Range[0])
	}
}

func TestSCIPRangeForms(t *testing.T) {
	// A method spanning lines 3-10 whose body closes left of where the
	// signature starts. The occurrence must carry all four positions.
	method := model.Symbol{
		ID:        identity.GenerateID("render", 3, 8),
		Name:      "render",
		Kind:      model.KindMethod,
		Language:  "go",
		FilePath:  "widget.go",
		StartLine: 3,
		StartCol:  8,
		EndLine:   10,
		EndCol:    5,
	}
	index := buildSCIPIndex([]*extract.FileGraph{{
		FilePath: "widget.go",
		Language: "go",
		Symbols:  []model.Symbol{method},
	}})

	got := index.Documents[0].Occurrences[0].Range
	want := []int32{2, 8, 9, 5}
	if len(got) != len(want) {
		t.Fatalf("multi-line range = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("multi-line range = %v, want %v", got, want)
		}
	}

	// Single-line occurrences keep the compact three-element form.
	if rng := scipRange(4, 1, 4, 9); len(rng) != 3 || rng[0] != 3 || rng[2] != 9 {
		t.Errorf("single-line range = %v, want [3 1 9]", rng)
	}
}

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	e := NewExporter(nil)
	if err := e.Export(sampleGraphs(), Options{Format: FormatYAML, Path: path}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var snap map[string]interface{}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if snap["filecount"] != 1 {
		t.Errorf("filecount = %v, want 1", snap["filecount"])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	e := NewExporter(nil)
	err := e.Export(nil, Options{Format: "xml", Path: filepath.Join(t.TempDir(), "x")})
	if err == nil {
		t.Fatal("unknown format should error")
	}
}
