package store

// schemaSQL defines the SQLite schema for the pydex index database.
const schemaSQL = `
-- top-level packages loaded into the library
CREATE TABLE IF NOT EXISTS packages (
    name TEXT PRIMARY KEY,
    docstring TEXT NOT NULL DEFAULT '',
    indexed_at TEXT NOT NULL
);

-- every entity reachable from the library, one row per namespace
CREATE TABLE IF NOT EXISTS entities (
    namespace TEXT NOT NULL,
    kind TEXT NOT NULL,               -- pkg, mod, cls, def
    name TEXT NOT NULL,
    parent TEXT NOT NULL DEFAULT '',  -- enclosing namespace
    docstring TEXT NOT NULL DEFAULT '',
    indexed_at TEXT NOT NULL,
    PRIMARY KEY (namespace, kind)
);

CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
CREATE INDEX IF NOT EXISTS idx_entities_parent ON entities(parent);
`
