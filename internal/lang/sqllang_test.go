package lang

import (
	"testing"

	"symgraph/internal/model"
)

const sqlFixture = `CREATE TABLE users (
    id INT PRIMARY KEY,
    email TEXT
);

CREATE TABLE orders (
    id INT PRIMARY KEY,
    user_id INT,
    CONSTRAINT fk_user FOREIGN KEY (user_id) REFERENCES users (id)
);

CREATE VIEW order_emails AS
SELECT o.id, u.email
FROM orders o
JOIN users u ON u.id = o.user_id;
`

func TestSQLSymbols(t *testing.T) {
	fg := extractFixture(t, "schema.sql", sqlFixture)

	users := symbolByName(t, fg.Symbols, "users")
	if users.Kind != model.KindTable {
		t.Errorf("users kind = %s, want table", users.Kind)
	}

	if !hasSymbol(fg.Symbols, "orders", model.KindTable) {
		t.Error("orders table missing")
	}
	if !hasSymbol(fg.Symbols, "order_emails", model.KindView) {
		t.Error("order_emails view missing")
	}

	email := symbolByName(t, fg.Symbols, "email")
	if email.Kind != model.KindField {
		t.Errorf("email kind = %s, want field", email.Kind)
	}
	if email.ParentID != users.ID {
		t.Errorf("email column parent = %s, want users", email.ParentID)
	}
}

func TestSQLForeignKey(t *testing.T) {
	fg := extractFixture(t, "schema.sql", sqlFixture)

	users := symbolByName(t, fg.Symbols, "users")
	orders := symbolByName(t, fg.Symbols, "orders")

	var references bool
	for _, rel := range fg.Relationships {
		if rel.Kind == model.RelReferences && rel.FromID == orders.ID && rel.ToID == users.ID {
			references = true
		}
	}
	if !references {
		t.Error("foreign key should record a references edge orders -> users")
	}
}

func TestSQLJoin(t *testing.T) {
	fg := extractFixture(t, "schema.sql", sqlFixture)

	if !hasRelationship(fg.Relationships, model.RelJoins) {
		t.Error("JOIN clause should record a joins edge")
	}
}

// Tables outrank everything else in SQL containment, so a column seen
// on a table's span belongs to the table.
func TestSQLContainmentPriorities(t *testing.T) {
	fg := extractFixture(t, "schema.sql", sqlFixture)

	users := symbolByName(t, fg.Symbols, "users")
	email := symbolByName(t, fg.Symbols, "email")
	if email.ParentID != users.ID {
		t.Errorf("email parent = %s, want users table %s", email.ParentID, users.ID)
	}
}
