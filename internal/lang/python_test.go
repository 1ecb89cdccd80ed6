package lang

import (
	"testing"

	"symgraph/internal/model"
)

const pythonFixture = `import os
from pathlib import Path

MAX_SIZE = 1024


class Animal:
    """Base of the hierarchy."""

    def speak(self) -> str:
        return ""


class Dog(Animal):
    @staticmethod
    def create():
        return Dog()

    def speak(self) -> str:
        return os.getenv("BARK")


def _feed(animal):
    animal.speak()
`

func TestPythonSymbols(t *testing.T) {
	fg := extractFixture(t, "zoo.py", pythonFixture)

	animal := symbolByName(t, fg.Symbols, "Animal")
	if animal.Kind != model.KindClass {
		t.Errorf("Animal kind = %s, want class", animal.Kind)
	}
	if animal.Doc != "Base of the hierarchy." {
		t.Errorf("Animal docstring = %q", animal.Doc)
	}

	dog := symbolByName(t, fg.Symbols, "Dog")
	var speakInDog bool
	for _, sym := range fg.Symbols {
		if sym.Name == "speak" && sym.ParentID == dog.ID {
			speakInDog = true
			if sym.Kind != model.KindMethod {
				t.Errorf("speak kind = %s, want method", sym.Kind)
			}
		}
	}
	if !speakInDog {
		t.Error("Dog.speak not parented to Dog")
	}

	create := symbolByName(t, fg.Symbols, "create")
	if create.Metadata["decorators"] != "staticmethod" {
		t.Errorf("create decorators = %q", create.Metadata["decorators"])
	}

	feed := symbolByName(t, fg.Symbols, "_feed")
	if feed.Kind != model.KindFunction {
		t.Errorf("_feed kind = %s, want function", feed.Kind)
	}
	if feed.Visibility != model.VisibilityPrivate {
		t.Errorf("_feed visibility = %s, want private", feed.Visibility)
	}

	if !hasSymbol(fg.Symbols, "MAX_SIZE", model.KindConstant) {
		t.Error("MAX_SIZE should be a constant by naming convention")
	}
	if !hasSymbol(fg.Symbols, "os", model.KindImport) {
		t.Error("os import missing")
	}
	path := symbolByName(t, fg.Symbols, "Path")
	if path.Kind != model.KindImport || path.Metadata["module"] != "pathlib" {
		t.Errorf("Path import kind=%s module=%q", path.Kind, path.Metadata["module"])
	}
}

func TestPythonInheritance(t *testing.T) {
	fg := extractFixture(t, "zoo.py", pythonFixture)

	animal := symbolByName(t, fg.Symbols, "Animal")
	dog := symbolByName(t, fg.Symbols, "Dog")

	var extends *model.Relationship
	for i := range fg.Relationships {
		if fg.Relationships[i].Kind == model.RelExtends {
			extends = &fg.Relationships[i]
		}
	}
	if extends == nil {
		t.Fatal("no extends relationship for Dog(Animal)")
	}
	if extends.FromID != dog.ID || extends.ToID != animal.ID {
		t.Errorf("extends edge %s -> %s, want Dog -> Animal", extends.FromID, extends.ToID)
	}
	if extends.Confidence != model.ConfidenceResolved {
		t.Errorf("locally resolved extends confidence = %v", extends.Confidence)
	}
}

func TestPythonInstantiation(t *testing.T) {
	fg := extractFixture(t, "zoo.py", pythonFixture)

	dog := symbolByName(t, fg.Symbols, "Dog")
	var instantiates bool
	for _, rel := range fg.Relationships {
		if rel.Kind == model.RelInstantiates && rel.ToID == dog.ID {
			instantiates = true
		}
	}
	if !instantiates {
		t.Error("Dog() inside create should record an instantiates edge")
	}
}

func TestPythonIdentifiers(t *testing.T) {
	fg := extractFixture(t, "zoo.py", pythonFixture)

	speak := identifierByName(fg.Identifiers, "speak")
	if speak == nil {
		t.Fatal("animal.speak() call identifier missing")
	}
	if speak.Kind != model.IdentCall {
		t.Errorf("speak identifier kind = %s, want call", speak.Kind)
	}
	feed := symbolByName(t, fg.Symbols, "_feed")
	if speak.ContainerID != feed.ID {
		t.Errorf("speak call container = %s, want _feed", speak.ContainerID)
	}
}

func TestPythonInferTypes(t *testing.T) {
	fg := extractFixture(t, "zoo.py", pythonFixture)

	for _, sym := range fg.Symbols {
		if sym.Name != "speak" {
			continue
		}
		if got := fg.Types[sym.ID]; got != "str" {
			t.Errorf("speak return type = %q, want str", got)
		}
	}
}
