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

CREATE TABLE IF NOT EXISTS events (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	start_at         DATETIME NOT NULL,
	end_at           DATETIME NOT NULL,
	all_day          INTEGER NOT NULL DEFAULT 0,
	resource_id      TEXT NOT NULL DEFAULT '',
	kind             TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT '',
	assignee         TEXT NOT NULL DEFAULT '',
	notes_count      INTEGER NOT NULL DEFAULT 0,
	recurrence_badge TEXT NOT NULL DEFAULT '',
	batch_size       REAL NOT NULL DEFAULT 0,
	yield_unit       TEXT NOT NULL DEFAULT '',
	equipment        TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	fetched_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS receiving_records (
	id          TEXT PRIMARY KEY,
	supplier    TEXT NOT NULL DEFAULT '',
	product     TEXT NOT NULL DEFAULT '',
	quantity    REAL NOT NULL DEFAULT 0,
	unit        TEXT NOT NULL DEFAULT '',
	temperature REAL NOT NULL DEFAULT 0,
	expiry_date DATETIME,
	received_at DATETIME,
	notes       TEXT NOT NULL DEFAULT '',
	fetched_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS waitlist_entries (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	role       TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_events_start_at ON events(start_at);
CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
CREATE INDEX IF NOT EXISTS idx_events_status ON events(status);
CREATE INDEX IF NOT EXISTS idx_receiving_expiry ON receiving_records(expiry_date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_events_kind_start
	ON events(kind, start_at);

CREATE INDEX IF NOT EXISTS idx_receiving_received
	ON receiving_records(received_at);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
