package mcp

import (
	"strings"
	"testing"

	"github.com/pydexlabs/pydex/internal/extract"
	"github.com/pydexlabs/pydex/internal/library"
	"github.com/pydexlabs/pydex/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}

	helper := extract.FunctionDef{
		Name:       "helper",
		Namespace:  "demo.util.helper",
		ModuleName: "demo.util",
	}
	util := &library.Module{
		Namespace:   "demo.util",
		Functions:   []extract.FunctionDef{helper},
		Classes:     []extract.ClassDef{},
		PackageName: "demo",
	}
	demo := &library.Package{
		Name:        "demo",
		Docstring:   `"""Demo package."""`,
		Functions:   []extract.FunctionDef{},
		Classes:     []extract.ClassDef{},
		Modules:     []*library.Module{util},
		Subpackages: []*library.Package{},
	}
	lib := &library.CodeLibrary{Packages: []*library.Package{demo}}
	if err := st.IndexLibrary(lib); err != nil {
		t.Fatalf("IndexLibrary failed: %v", err)
	}
	st.Close()

	server, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { server.Close() })
	return server
}

func TestExecuteLookup(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeLookup("demo.util.helper")
	if err != nil {
		t.Fatalf("executeLookup failed: %v", err)
	}
	if !strings.Contains(result, `"demo.util.helper"`) {
		t.Errorf("lookup result missing namespace: %s", result)
	}
	if !strings.Contains(result, `"def"`) {
		t.Errorf("lookup result missing kind: %s", result)
	}
}

func TestExecuteLookupMissing(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.executeLookup("demo.nope"); err == nil {
		t.Error("expected error for unknown namespace")
	}
}

func TestExecuteSearch(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeSearch("help", 10)
	if err != nil {
		t.Fatalf("executeSearch failed: %v", err)
	}
	if !strings.Contains(result, "demo.util.helper") {
		t.Errorf("search result missing match: %s", result)
	}

	result, err = s.executeSearch("zzz", 10)
	if err != nil {
		t.Fatalf("executeSearch failed: %v", err)
	}
	if !strings.Contains(result, "no entities") {
		t.Errorf("expected empty-result message, got: %s", result)
	}
}

func TestExecutePackages(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executePackages()
	if err != nil {
		t.Fatalf("executePackages failed: %v", err)
	}
	if result != "demo" {
		t.Errorf("executePackages = %q, want demo", result)
	}
}
