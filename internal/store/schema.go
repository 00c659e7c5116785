package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    name                 TEXT PRIMARY KEY,
    color                TEXT NOT NULL,
    monthly_budget       REAL NOT NULL DEFAULT 0,
    sort_order           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   TEXT PRIMARY KEY,
    category             TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT '',
    amount               REAL NOT NULL,
    date                 TEXT NOT NULL,
    source_file          TEXT NOT NULL DEFAULT '',
    imported_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions(source_file);
`
