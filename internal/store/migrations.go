package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	address         TEXT NOT NULL DEFAULT '',
	budget          REAL NOT NULL DEFAULT 0,
	workers         INTEGER NOT NULL DEFAULT 0,
	progress        INTEGER NOT NULL DEFAULT 0,
	eta             REAL NOT NULL DEFAULT 0,
	finished        INTEGER NOT NULL DEFAULT 0,
	contractor_id   TEXT NOT NULL DEFAULT '',
	contractor_name TEXT NOT NULL DEFAULT '',
	latitude        REAL,
	longitude       REAL,
	sort_order      INTEGER NOT NULL DEFAULT 0,
	fetched_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS contractors (
	id         TEXT PRIMARY KEY,
	full_name  TEXT NOT NULL DEFAULT '',
	price      REAL NOT NULL DEFAULT 0,
	expertise  TEXT NOT NULL DEFAULT 'APPRENTICE',
	fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_projects_sort_order ON projects(sort_order);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
