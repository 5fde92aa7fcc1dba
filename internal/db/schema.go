// ABOUTME: Database schema definitions
// ABOUTME: SQL for the history, overtime, and handover tables and their indexes
package db

// schemaVersionTable tracks which migrations have been applied.
const schemaVersionTable = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// Table and column names match databases written by the earlier site tool,
// so an existing notemma.db opens without conversion.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    engineer TEXT NOT NULL,
    type TEXT NOT NULL,
    job TEXT NOT NULL,
    action TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS overtime (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    engineer TEXT NOT NULL,
    date TEXT NOT NULL,
    hours REAL NOT NULL CHECK (hours >= 0),
    reason TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS handover (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    engineer TEXT NOT NULL,
    message TEXT NOT NULL,
    timestamp TEXT NOT NULL
);
`

const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_history_job ON history(job, id);
CREATE INDEX IF NOT EXISTS idx_overtime_date ON overtime(date);
CREATE INDEX IF NOT EXISTS idx_overtime_engineer_date ON overtime(engineer, date);
`
