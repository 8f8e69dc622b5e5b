// Package store provides a SQLite-backed index of an extracted code
// library. The database mirrors the JSON documents in queryable form so
// downstream tools (and the MCP server) can look entities up by namespace
// or name without re-reading the document tree.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pydexlabs/pydex/internal/library"
)

// DBFileName is the index database file name.
const DBFileName = "index.db"

// Entity kinds stored in the entities table, matching the JSON document
// category directories.
const (
	KindPackage  = "pkg"
	KindModule   = "mod"
	KindClass    = "cls"
	KindFunction = "def"
)

// Entity is one indexed row.
type Entity struct {
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Parent    string `json:"parent"`
	Docstring string `json:"docstring"`
}

// Store manages the index.db SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the index database in the given directory and
// initializes the schema if the database is new.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, DBFileName)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}

	// WAL mode for better concurrent read access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// IndexLibrary inserts every entity reachable from the library. Rows are
// replaced on conflict, so re-indexing the same namespaces is
// last-write-wins, matching the JSON document overwrite semantics.
func (s *Store) IndexLibrary(lib *library.CodeLibrary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin index transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	for _, pkg := range lib.Packages {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO packages (name, docstring, indexed_at) VALUES (?, ?, ?)`,
			pkg.Name, pkg.Docstring, now,
		); err != nil {
			return fmt.Errorf("index package %s: %w", pkg.Name, err)
		}
	}

	insert := func(e Entity) error {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO entities (namespace, kind, name, parent, docstring, indexed_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.Namespace, e.Kind, e.Name, e.Parent, e.Docstring, now,
		)
		if err != nil {
			return fmt.Errorf("index %s %s: %w", e.Kind, e.Namespace, err)
		}
		return nil
	}

	for _, pkg := range lib.AllPackages() {
		if err := insert(Entity{
			Namespace: pkg.Name,
			Kind:      KindPackage,
			Name:      lastComponent(pkg.Name),
			Parent:    pkg.PackageName,
			Docstring: pkg.Docstring,
		}); err != nil {
			return err
		}
	}

	for _, module := range lib.AllModules() {
		if err := insert(Entity{
			Namespace: module.Namespace,
			Kind:      KindModule,
			Name:      lastComponent(module.Namespace),
			Parent:    module.PackageName,
			Docstring: module.Docstring,
		}); err != nil {
			return err
		}
	}

	for _, class := range lib.AllClasses() {
		parent := class.ModuleName
		if parent == "" {
			parent = class.PackageName
		}
		if err := insert(Entity{
			Namespace: class.Namespace,
			Kind:      KindClass,
			Name:      class.Name,
			Parent:    parent,
			Docstring: class.Docstring,
		}); err != nil {
			return err
		}
	}

	for _, function := range lib.AllFunctions() {
		parent := function.ModuleName
		if parent == "" {
			parent = function.PackageName
		}
		if parent == "" {
			parent = function.ClassName
		}
		if err := insert(Entity{
			Namespace: function.Namespace,
			Kind:      KindFunction,
			Name:      function.Name,
			Parent:    parent,
			Docstring: function.Docstring,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LookupNamespace returns the entity with the given namespace, or
// sql.ErrNoRows if none is indexed. When the same namespace exists in
// more than one category, the package/module row wins over class/function.
func (s *Store) LookupNamespace(namespace string) (*Entity, error) {
	row := s.db.QueryRow(
		`SELECT namespace, kind, name, parent, docstring FROM entities
		 WHERE namespace = ?
		 ORDER BY CASE kind WHEN 'pkg' THEN 0 WHEN 'mod' THEN 1 WHEN 'cls' THEN 2 ELSE 3 END
		 LIMIT 1`,
		namespace,
	)

	var e Entity
	if err := row.Scan(&e.Namespace, &e.Kind, &e.Name, &e.Parent, &e.Docstring); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListPackages returns the names of the indexed top-level packages.
func (s *Store) ListPackages() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM packages ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SearchName returns entities whose declared name contains the given
// substring, ordered by namespace.
func (s *Store) SearchName(substr string, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT namespace, kind, name, parent, docstring FROM entities
		 WHERE name LIKE '%' || ? || '%'
		 ORDER BY namespace LIMIT ?`,
		substr, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.Namespace, &e.Kind, &e.Name, &e.Parent, &e.Docstring); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, rows.Err()
}

// lastComponent returns the final segment of a dotted namespace.
func lastComponent(namespace string) string {
	for i := len(namespace) - 1; i >= 0; i-- {
		if namespace[i] == '.' {
			return namespace[i+1:]
		}
	}
	return namespace
}
