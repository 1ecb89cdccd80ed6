package lang

import (
	"testing"

	"symgraph/internal/model"
)

const goFixture = `package web

import (
	"fmt"
	nethttp "net/http"
)

const maxRetries = 3

var DefaultTimeout = 30

// Server accepts connections and dispatches handlers.
type Server struct {
	Addr    string
	handler Handler
}

type Handler interface {
	Serve() error
}

// Start begins listening on the configured address.
func (s *Server) Start() (err error) {
	fmt.Println(s.Addr)
	return nil
}

func NewServer(addr string) *Server {
	return &Server{Addr: addr}
}
`

func TestGoSymbols(t *testing.T) {
	fg := extractFixture(t, "server.go", goFixture)

	server := symbolByName(t, fg.Symbols, "Server")
	if server.Kind != model.KindStruct {
		t.Errorf("Server kind = %s, want struct", server.Kind)
	}
	if server.Visibility != model.VisibilityPublic {
		t.Errorf("Server visibility = %s, want public", server.Visibility)
	}
	if server.Doc != "Server accepts connections and dispatches handlers." {
		t.Errorf("Server doc = %q", server.Doc)
	}

	handler := symbolByName(t, fg.Symbols, "Handler")
	if handler.Kind != model.KindInterface {
		t.Errorf("Handler kind = %s, want interface", handler.Kind)
	}

	start := symbolByName(t, fg.Symbols, "Start")
	if start.Kind != model.KindMethod {
		t.Errorf("Start kind = %s, want method", start.Kind)
	}
	if start.ParentID != server.ID {
		t.Errorf("Start parent = %s, want Server %s", start.ParentID, server.ID)
	}
	if start.Metadata["receiver"] != "Server" {
		t.Errorf("Start receiver metadata = %q", start.Metadata["receiver"])
	}

	if !hasSymbol(fg.Symbols, "maxRetries", model.KindConstant) {
		t.Error("maxRetries constant missing")
	}
	retries := symbolByName(t, fg.Symbols, "maxRetries")
	if retries.Visibility != model.VisibilityPrivate {
		t.Errorf("maxRetries visibility = %s, want private", retries.Visibility)
	}
	if !hasSymbol(fg.Symbols, "DefaultTimeout", model.KindVariable) {
		t.Error("DefaultTimeout variable missing")
	}

	addr := symbolByName(t, fg.Symbols, "Addr")
	if addr.Kind != model.KindField || addr.ParentID != server.ID {
		t.Errorf("Addr field kind=%s parent=%s", addr.Kind, addr.ParentID)
	}

	// Aliased imports keep their alias as the symbol name.
	if !hasSymbol(fg.Symbols, "nethttp", model.KindImport) {
		t.Error("aliased import nethttp missing")
	}
	fmtImport := symbolByName(t, fg.Symbols, "fmt")
	if fmtImport.Metadata["path"] != "fmt" {
		t.Errorf("fmt import path = %q", fmtImport.Metadata["path"])
	}
}

func TestGoRelationships(t *testing.T) {
	fg := extractFixture(t, "server.go", goFixture)

	if !hasRelationship(fg.Relationships, model.RelImports) {
		t.Error("no import relationships recorded")
	}

	var printlnCall *model.Relationship
	for i := range fg.Relationships {
		if fg.Relationships[i].Kind == model.RelCalls {
			printlnCall = &fg.Relationships[i]
		}
	}
	if printlnCall == nil {
		t.Fatal("no call relationship for fmt.Println")
	}
	start := symbolByName(t, fg.Symbols, "Start")
	if printlnCall.FromID != start.ID {
		t.Errorf("call edge from %s, want Start %s", printlnCall.FromID, start.ID)
	}
	if printlnCall.Confidence != model.ConfidenceExternal {
		t.Errorf("unresolved call confidence = %v, want %v",
			printlnCall.Confidence, model.ConfidenceExternal)
	}
}

func TestGoIdentifiers(t *testing.T) {
	fg := extractFixture(t, "server.go", goFixture)

	call := identifierByName(fg.Identifiers, "Println")
	if call == nil {
		t.Fatal("Println call identifier missing")
	}
	if call.Kind != model.IdentCall {
		t.Errorf("Println kind = %s, want call", call.Kind)
	}

	access := identifierByName(fg.Identifiers, "Addr")
	if access == nil {
		t.Fatal("s.Addr member access missing")
	}
	if access.Kind != model.IdentMemberAccess {
		t.Errorf("Addr kind = %s, want memberAccess", access.Kind)
	}
}

func TestGoInferTypes(t *testing.T) {
	fg := extractFixture(t, "server.go", goFixture)

	start := symbolByName(t, fg.Symbols, "Start")
	if got := fg.Types[start.ID]; got != "(err error)" {
		t.Errorf("Start return type = %q", got)
	}
	ctor := symbolByName(t, fg.Symbols, "NewServer")
	if got := fg.Types[ctor.ID]; got != "*Server" {
		t.Errorf("NewServer return type = %q, want *Server", got)
	}
}

func TestGoReturnType(t *testing.T) {
	cases := []struct {
		sig  string
		want string
	}{
		{"func Add(a, b int) int {", "int"},
		{"func (s *Server) Start() error {", "error"},
		{"func Pair() (int, error) {", "(int, error)"},
		{"func NoReturn() {", ""},
		{"func Higher(f func(int) int) func() {", "func()"},
	}
	for _, tc := range cases {
		if got := goReturnType(tc.sig); got != tc.want {
			t.Errorf("goReturnType(%q) = %q, want %q", tc.sig, got, tc.want)
		}
	}
}
