package hostsim

// Schema contains the SQL schema for the simulator database
const Schema = `
-- Accounts table
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    imap_server TEXT NOT NULL,
    imap_port INTEGER NOT NULL,
    smtp_server TEXT NOT NULL,
    smtp_port INTEGER NOT NULL,
    name TEXT NOT NULL,
    is_default INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Credentials live next to accounts only in the simulator; the real
-- host keeps them in the OS keyring
CREATE TABLE IF NOT EXISTS secrets (
    account_id TEXT PRIMARY KEY,
    password TEXT NOT NULL,
    FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
);

-- Emails table
CREATE TABLE IF NOT EXISTS emails (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL,
    folder TEXT NOT NULL,
    uid INTEGER NOT NULL,
    subject TEXT,
    sender TEXT,
    recipients TEXT,
    date TEXT NOT NULL,
    body TEXT,
    html_body TEXT,
    flags TEXT,
    is_read INTEGER NOT NULL DEFAULT 0,
    is_starred INTEGER NOT NULL DEFAULT 0,
    category TEXT,
    has_attachment INTEGER NOT NULL DEFAULT 0,
    preview TEXT,
    size INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE,
    UNIQUE(account_id, folder, uid)
);

-- App config (single row)
CREATE TABLE IF NOT EXISTS app_config (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    data TEXT NOT NULL
);

-- Filter rules
CREATE TABLE IF NOT EXISTS filter_rules (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL
);

-- Indexes for folder listings
CREATE INDEX IF NOT EXISTS idx_emails_account_folder ON emails(account_id, folder);
CREATE INDEX IF NOT EXISTS idx_emails_uid ON emails(account_id, folder, uid);
`
