package lang

import (
	"testing"

	"symgraph/internal/model"
)

const javaFixture = `package zoo;

import java.util.List;

public interface Animal {
    String speak();
}

public class Dog implements Animal {
    private String name;
    public static final int LEGS = 4;

    public Dog(String name) {
        this.name = name;
    }

    public String speak() {
        return greet();
    }

    String greet() {
        return "woof " + this.name;
    }
}

enum Mood {
    HAPPY,
    SLEEPY
}
`

func TestJavaSymbols(t *testing.T) {
	fg := extractFixture(t, "Dog.java", javaFixture)

	animal := symbolByName(t, fg.Symbols, "Animal")
	if animal.Kind != model.KindInterface {
		t.Errorf("Animal kind = %s, want interface", animal.Kind)
	}

	dog := symbolByName(t, fg.Symbols, "Dog")
	if dog.Kind != model.KindClass || dog.Visibility != model.VisibilityPublic {
		t.Errorf("Dog kind=%s visibility=%s", dog.Kind, dog.Visibility)
	}

	var ctorOK bool
	for _, sym := range fg.Symbols {
		if sym.Kind == model.KindConstructor && sym.ParentID == dog.ID {
			ctorOK = true
		}
	}
	if !ctorOK {
		t.Error("constructor not recorded under Dog")
	}

	name := symbolByName(t, fg.Symbols, "name")
	if name.Kind != model.KindField || name.Visibility != model.VisibilityPrivate {
		t.Errorf("name field kind=%s visibility=%s", name.Kind, name.Visibility)
	}
	if name.ParentID != dog.ID {
		t.Errorf("name field parent = %s, want Dog", name.ParentID)
	}

	greet := symbolByName(t, fg.Symbols, "greet")
	if greet.Visibility != model.VisibilityProtected {
		t.Errorf("package-private greet visibility = %s, want protected", greet.Visibility)
	}

	mood := symbolByName(t, fg.Symbols, "Mood")
	if mood.Kind != model.KindEnum {
		t.Errorf("Mood kind = %s, want enum", mood.Kind)
	}
	happy := symbolByName(t, fg.Symbols, "HAPPY")
	if happy.Kind != model.KindEnumMember || happy.ParentID != mood.ID {
		t.Errorf("HAPPY kind=%s parent=%s", happy.Kind, happy.ParentID)
	}

	importSym := symbolByName(t, fg.Symbols, "List")
	if importSym.Kind != model.KindImport || importSym.Metadata["path"] != "java.util.List" {
		t.Errorf("List import kind=%s path=%q", importSym.Kind, importSym.Metadata["path"])
	}
}

func TestJavaRelationships(t *testing.T) {
	fg := extractFixture(t, "Dog.java", javaFixture)

	animal := symbolByName(t, fg.Symbols, "Animal")
	dog := symbolByName(t, fg.Symbols, "Dog")

	var implements, calls bool
	for _, rel := range fg.Relationships {
		if rel.Kind == model.RelImplements && rel.FromID == dog.ID && rel.ToID == animal.ID {
			implements = true
		}
		if rel.Kind == model.RelCalls {
			calls = true
		}
	}
	if !implements {
		t.Error("Dog implements Animal edge missing")
	}
	if !calls {
		t.Error("greet() invocation should record a call edge")
	}
}

func TestJavaInferTypes(t *testing.T) {
	fg := extractFixture(t, "Dog.java", javaFixture)

	greet := symbolByName(t, fg.Symbols, "greet")
	if got := fg.Types[greet.ID]; got != "String" {
		t.Errorf("greet return type = %q, want String", got)
	}
}
