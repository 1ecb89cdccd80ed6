package lang

import (
	"testing"

	"symgraph/internal/model"
)

func TestGenericCSymbols(t *testing.T) {
	source := `#define MAX_LEN 256

struct point {
    int x;
    int y;
};

int add(int a, int b) {
    return a + b;
}

int main(void) {
    return add(1, 2);
}
`
	fg := extractFixture(t, "math.c", source)

	if !hasSymbol(fg.Symbols, "point", model.KindStruct) {
		t.Error("struct point missing")
	}
	if !hasSymbol(fg.Symbols, "add", model.KindFunction) {
		t.Error("function add missing")
	}
	if !hasSymbol(fg.Symbols, "MAX_LEN", model.KindConstant) {
		t.Error("macro MAX_LEN missing")
	}

	addSym := symbolByName(t, fg.Symbols, "add")
	mainSym := symbolByName(t, fg.Symbols, "main")
	var calls bool
	for _, rel := range fg.Relationships {
		if rel.Kind == model.RelCalls && rel.FromID == mainSym.ID && rel.ToID == addSym.ID {
			calls = true
		}
	}
	if !calls {
		t.Error("main should record a resolved call edge to add")
	}
}

func TestGenericRubySymbols(t *testing.T) {
	source := `module Zoo
  class Dog
    def speak
      bark
    end
  end
end
`
	fg := extractFixture(t, "dog.rb", source)

	if !hasSymbol(fg.Symbols, "Zoo", model.KindModule) {
		t.Error("module Zoo missing")
	}
	if !hasSymbol(fg.Symbols, "Dog", model.KindClass) {
		t.Error("class Dog missing")
	}
	if !hasSymbol(fg.Symbols, "speak", model.KindMethod) {
		t.Error("method speak missing")
	}
}

func TestGenericYAMLKeys(t *testing.T) {
	source := `server:
  host: localhost
  port: 8080
`
	fg := extractFixture(t, "config.yaml", source)

	if !hasSymbol(fg.Symbols, "server", model.KindProperty) {
		t.Error("server key missing")
	}
	if !hasSymbol(fg.Symbols, "port", model.KindProperty) {
		t.Error("nested port key missing")
	}
}

func TestGenericTOMLTables(t *testing.T) {
	source := `title = "demo"

[database]
host = "localhost"
`
	fg := extractFixture(t, "config.toml", source)

	if !hasSymbol(fg.Symbols, "database", model.KindNamespace) {
		t.Error("[database] table missing")
	}
	if !hasSymbol(fg.Symbols, "title", model.KindProperty) {
		t.Error("title pair missing")
	}
}

func TestGenericProtobufSymbols(t *testing.T) {
	source := `syntax = "proto3";

message User {
  string name = 1;
}

service Directory {
  rpc Lookup (User) returns (User);
}
`
	fg := extractFixture(t, "directory.proto", source)

	if !hasSymbol(fg.Symbols, "User", model.KindStruct) {
		t.Error("message User missing")
	}
	if !hasSymbol(fg.Symbols, "Directory", model.KindInterface) {
		t.Error("service Directory missing")
	}
	if !hasSymbol(fg.Symbols, "Lookup", model.KindMethod) {
		t.Error("rpc Lookup missing")
	}
}
