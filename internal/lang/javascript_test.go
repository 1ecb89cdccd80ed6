package lang

import (
	"testing"

	"symgraph/internal/model"
)

const tsFixture = `import { Logger } from "./logger";
import * as fs from "fs";

export interface Shape {
  area(): number;
}

export type Radius = number;

export class Circle implements Shape {
  radius: Radius;

  constructor(radius: Radius) {
    this.radius = radius;
  }

  area(): number {
    return Math.PI * this.radius * this.radius;
  }
}

export class Sphere extends Circle {
}

export const describe = (shape: Shape): string => {
  return String(shape.area());
};

function makeUnit(): Circle {
  return new Circle(1);
}
`

func TestTypeScriptSymbols(t *testing.T) {
	fg := extractFixture(t, "shapes.ts", tsFixture)

	shape := symbolByName(t, fg.Symbols, "Shape")
	if shape.Kind != model.KindInterface {
		t.Errorf("Shape kind = %s, want interface", shape.Kind)
	}
	if shape.Visibility != model.VisibilityPublic {
		t.Errorf("exported Shape visibility = %s, want public", shape.Visibility)
	}

	if !hasSymbol(fg.Symbols, "Radius", model.KindType) {
		t.Error("Radius type alias missing")
	}

	circle := symbolByName(t, fg.Symbols, "Circle")
	if circle.Kind != model.KindClass {
		t.Errorf("Circle kind = %s, want class", circle.Kind)
	}

	var ctor, area bool
	for _, sym := range fg.Symbols {
		switch {
		case sym.Name == "constructor" && sym.ParentID == circle.ID:
			ctor = sym.Kind == model.KindConstructor
		case sym.Name == "area" && sym.ParentID == circle.ID:
			area = sym.Kind == model.KindMethod
		}
	}
	if !ctor {
		t.Error("constructor not recorded under Circle")
	}
	if !area {
		t.Error("area method not recorded under Circle")
	}

	// Arrow functions bound to a const are functions, not variables.
	describe := symbolByName(t, fg.Symbols, "describe")
	if describe.Kind != model.KindFunction {
		t.Errorf("describe kind = %s, want function", describe.Kind)
	}

	makeUnit := symbolByName(t, fg.Symbols, "makeUnit")
	if makeUnit.Visibility != model.VisibilityPrivate {
		t.Errorf("unexported makeUnit visibility = %s, want private", makeUnit.Visibility)
	}

	logger := symbolByName(t, fg.Symbols, "Logger")
	if logger.Kind != model.KindImport || logger.Metadata["module"] != "./logger" {
		t.Errorf("Logger import kind=%s module=%q", logger.Kind, logger.Metadata["module"])
	}
	if !hasSymbol(fg.Symbols, "fs", model.KindImport) {
		t.Error("namespace import fs missing")
	}
}

func TestTypeScriptHeritage(t *testing.T) {
	fg := extractFixture(t, "shapes.ts", tsFixture)

	shape := symbolByName(t, fg.Symbols, "Shape")
	circle := symbolByName(t, fg.Symbols, "Circle")
	sphere := symbolByName(t, fg.Symbols, "Sphere")

	var implements, extends bool
	for _, rel := range fg.Relationships {
		if rel.Kind == model.RelImplements && rel.FromID == circle.ID && rel.ToID == shape.ID {
			implements = true
		}
		if rel.Kind == model.RelExtends && rel.FromID == sphere.ID && rel.ToID == circle.ID {
			extends = true
		}
	}
	if !implements {
		t.Error("Circle implements Shape edge missing")
	}
	if !extends {
		t.Error("Sphere extends Circle edge missing")
	}
}

func TestTypeScriptInstantiation(t *testing.T) {
	fg := extractFixture(t, "shapes.ts", tsFixture)

	circle := symbolByName(t, fg.Symbols, "Circle")
	makeUnit := symbolByName(t, fg.Symbols, "makeUnit")

	var found bool
	for _, rel := range fg.Relationships {
		if rel.Kind == model.RelInstantiates && rel.FromID == makeUnit.ID && rel.ToID == circle.ID {
			found = true
		}
	}
	if !found {
		t.Error("new Circle(1) should record an instantiates edge from makeUnit")
	}
}

func TestTypeScriptInferTypes(t *testing.T) {
	fg := extractFixture(t, "shapes.ts", tsFixture)

	for _, sym := range fg.Symbols {
		if sym.Name == "area" && sym.Kind == model.KindMethod {
			if got := fg.Types[sym.ID]; got != "number" {
				t.Errorf("area return type = %q, want number", got)
			}
		}
	}
}
