package lang

import (
	"testing"

	"symgraph/internal/model"
)

const markdownFixture = `# User Guide

Intro paragraph.

## Installation

Steps here.

### From Source

More steps.

## Usage

Run it.
`

func TestMarkdownSections(t *testing.T) {
	fg := extractFixture(t, "guide.md", markdownFixture)

	guide := symbolByName(t, fg.Symbols, "User Guide")
	if guide.Kind != model.KindSection {
		t.Errorf("heading kind = %s, want section", guide.Kind)
	}
	if guide.ContentType != model.ContentTypeDocumentation {
		t.Errorf("heading content type = %s, want documentation", guide.ContentType)
	}
	if guide.Metadata["level"] != "1" {
		t.Errorf("User Guide level = %q, want 1", guide.Metadata["level"])
	}

	install := symbolByName(t, fg.Symbols, "Installation")
	if install.ParentID != guide.ID {
		t.Errorf("Installation parent = %s, want User Guide", install.ParentID)
	}

	source := symbolByName(t, fg.Symbols, "From Source")
	if source.ParentID != install.ID {
		t.Errorf("From Source parent = %s, want Installation", source.ParentID)
	}

	usage := symbolByName(t, fg.Symbols, "Usage")
	if usage.ParentID != guide.ID {
		t.Errorf("Usage should pop back to the level-1 heading, got %s", usage.ParentID)
	}

	if len(fg.Relationships) != 0 || len(fg.Identifiers) != 0 {
		t.Errorf("prose should produce no identifiers or relationships, got %d/%d",
			len(fg.Identifiers), len(fg.Relationships))
	}
}
