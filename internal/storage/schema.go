package storage

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invocation_id TEXT UNIQUE NOT NULL,
    user_email TEXT NOT NULL DEFAULT '',
    assignment_id TEXT NOT NULL DEFAULT '',
    submission_url TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    attempt INTEGER NOT NULL DEFAULT 0,
    state TEXT NOT NULL,
    failed_step TEXT NOT NULL DEFAULT '',
    storage_path TEXT NOT NULL DEFAULT '',
    email_sent BOOLEAN NOT NULL DEFAULT FALSE,
    handled_at DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_invocations_handled_at ON invocations(handled_at DESC);
CREATE INDEX IF NOT EXISTS idx_invocations_invocation_id ON invocations(invocation_id);
`
