package main

import (
	"strings"
	"testing"
)

// The --format help must list every format Validate accepts.
func TestFormatFlagHelpListsAllFormats(t *testing.T) {
	flag := extractCmd.Flags().Lookup("format")
	if flag == nil {
		t.Fatal("extract has no --format flag")
	}
	for _, format := range []string{"json", "ndjson", "yaml", "scip"} {
		if !strings.Contains(flag.Usage, format) {
			t.Errorf("--format help %q does not mention %s", flag.Usage, format)
		}
	}
}
