package store

import (
	"database/sql"
	"testing"

	"github.com/pydexlabs/pydex/internal/extract"
	"github.com/pydexlabs/pydex/internal/library"
)

// demoLibrary builds a small in-memory library without touching the
// filesystem: package demo with a hoisted function, one module with one
// class, and one subpackage.
func demoLibrary() *library.CodeLibrary {
	spin := extract.FunctionDef{
		Name:      "spin",
		Namespace: "demo.util.Widget.spin",
		ClassName: "demo.util.Widget",
	}
	widget := extract.ClassDef{
		Name:       "Widget",
		Namespace:  "demo.util.Widget",
		Docstring:  `"""A widget."""`,
		ModuleName: "demo.util",
		Methods:    []extract.FunctionDef{spin},
	}
	helper := extract.FunctionDef{
		Name:       "helper",
		Namespace:  "demo.util.helper",
		ModuleName: "demo.util",
	}
	util := &library.Module{
		Namespace:   "demo.util",
		Classes:     []extract.ClassDef{widget},
		Functions:   []extract.FunctionDef{helper},
		PackageName: "demo",
	}
	sub := &library.Package{
		Name:        "demo.sub",
		PackageName: "demo",
		Functions:   []extract.FunctionDef{},
		Classes:     []extract.ClassDef{},
		Modules:     []*library.Module{},
		Subpackages: []*library.Package{},
	}
	version := extract.FunctionDef{
		Name:        "version",
		Namespace:   "demo.version",
		PackageName: "demo",
	}
	demo := &library.Package{
		Name:        "demo",
		Docstring:   `"""Demo package."""`,
		Functions:   []extract.FunctionDef{version},
		Classes:     []extract.ClassDef{},
		Modules:     []*library.Module{util},
		Subpackages: []*library.Package{sub},
	}

	return &library.CodeLibrary{Packages: []*library.Package{demo}}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestIndexAndLookup(t *testing.T) {
	st := openTestStore(t)

	if err := st.IndexLibrary(demoLibrary()); err != nil {
		t.Fatalf("IndexLibrary failed: %v", err)
	}

	tests := []struct {
		namespace string
		kind      string
		name      string
		parent    string
	}{
		{"demo", KindPackage, "demo", ""},
		{"demo.sub", KindPackage, "sub", "demo"},
		{"demo.util", KindModule, "util", "demo"},
		{"demo.util.Widget", KindClass, "Widget", "demo.util"},
		{"demo.util.helper", KindFunction, "helper", "demo.util"},
		{"demo.util.Widget.spin", KindFunction, "spin", "demo.util.Widget"},
		{"demo.version", KindFunction, "version", "demo"},
	}

	for _, tt := range tests {
		entity, err := st.LookupNamespace(tt.namespace)
		if err != nil {
			t.Errorf("LookupNamespace(%s) failed: %v", tt.namespace, err)
			continue
		}
		if entity.Kind != tt.kind || entity.Name != tt.name || entity.Parent != tt.parent {
			t.Errorf("LookupNamespace(%s) = (%s, %s, %s), want (%s, %s, %s)",
				tt.namespace, entity.Kind, entity.Name, entity.Parent,
				tt.kind, tt.name, tt.parent)
		}
	}
}

func TestLookupMissing(t *testing.T) {
	st := openTestStore(t)

	if err := st.IndexLibrary(demoLibrary()); err != nil {
		t.Fatalf("IndexLibrary failed: %v", err)
	}

	_, err := st.LookupNamespace("demo.missing")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListPackages(t *testing.T) {
	st := openTestStore(t)

	if err := st.IndexLibrary(demoLibrary()); err != nil {
		t.Fatalf("IndexLibrary failed: %v", err)
	}

	names, err := st.ListPackages()
	if err != nil {
		t.Fatalf("ListPackages failed: %v", err)
	}
	if len(names) != 1 || names[0] != "demo" {
		t.Errorf("ListPackages = %v, want [demo]", names)
	}
}

func TestSearchName(t *testing.T) {
	st := openTestStore(t)

	if err := st.IndexLibrary(demoLibrary()); err != nil {
		t.Fatalf("IndexLibrary failed: %v", err)
	}

	entities, err := st.SearchName("help", 0)
	if err != nil {
		t.Fatalf("SearchName failed: %v", err)
	}
	if len(entities) != 1 || entities[0].Namespace != "demo.util.helper" {
		t.Errorf("SearchName = %v, want [demo.util.helper]", entities)
	}
}

func TestReindexIsLastWriteWins(t *testing.T) {
	st := openTestStore(t)

	lib := demoLibrary()
	if err := st.IndexLibrary(lib); err != nil {
		t.Fatalf("first IndexLibrary failed: %v", err)
	}

	lib.Packages[0].Docstring = `"""Updated docs."""`
	if err := st.IndexLibrary(lib); err != nil {
		t.Fatalf("second IndexLibrary failed: %v", err)
	}

	entity, err := st.LookupNamespace("demo")
	if err != nil {
		t.Fatalf("LookupNamespace failed: %v", err)
	}
	if entity.Docstring != `"""Updated docs."""` {
		t.Errorf("Docstring = %q, want updated value", entity.Docstring)
	}
}
