// Package hostsim is a local, sqlite-backed implementation of the host
// command surface. It lets the store and UI run end to end without a
// real host process: accounts, folders and emails live in a local
// database, and the AI operations answer with deterministic heuristics.
// It is not an IMAP/SMTP client and performs no network I/O.
package hostsim

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// Host simulates the native command layer
type Host struct {
	db     *sql.DB
	logger *logrus.Logger
}

// Open creates or opens the simulator database at dbPath
func Open(dbPath string, logger *logrus.Logger) (*Host, error) {
	if logger == nil {
		logger = logrus.New()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.WithField("path", dbPath).Info("Host simulator database opened")
	return &Host{db: db, logger: logger}, nil
}

// Close closes the database
func (h *Host) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// ListAccounts returns all accounts in creation order
func (h *Host) ListAccounts(ctx context.Context) ([]types.Account, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, email, imap_server, imap_port, smtp_server, smtp_port, name, is_default
		FROM accounts ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []types.Account{}
	for rows.Next() {
		var acct types.Account
		var isDefault int
		if err := rows.Scan(&acct.ID, &acct.Email, &acct.IMAPServer, &acct.IMAPPort,
			&acct.SMTPServer, &acct.SMTPPort, &acct.Name, &isDefault); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		acct.IsDefault = isDefault != 0
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// AddAccount creates an account from a provider preset and seeds its
// inbox with sample mail. The first account becomes the default.
func (h *Host) AddAccount(ctx context.Context, req command.AddAccountRequest) (string, error) {
	preset, ok := types.ProviderPresets[req.Provider]
	if !ok {
		return "", fmt.Errorf("不支持的邮箱服务商: %s", req.Provider)
	}
	if req.Email == "" || req.Password == "" {
		return "", fmt.Errorf("邮箱地址和密码不能为空")
	}

	var count int
	if err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return "", fmt.Errorf("failed to count accounts: %w", err)
	}

	accountID := uuid.New().String()
	isDefault := 0
	if count == 0 {
		isDefault = 1
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO accounts (id, email, imap_server, imap_port, smtp_server, smtp_port, name, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, accountID, req.Email, preset.IMAPServer, preset.IMAPPort, preset.SMTPServer, preset.SMTPPort, req.Name, isDefault)
	if err != nil {
		return "", fmt.Errorf("failed to insert account: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO secrets (account_id, password) VALUES (?, ?)", accountID, req.Password); err != nil {
		return "", fmt.Errorf("failed to store credentials: %w", err)
	}

	if err := seedInbox(ctx, tx, accountID); err != nil {
		return "", fmt.Errorf("failed to seed inbox: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"account_id": accountID,
		"provider":   req.Provider,
	}).Info("Account added")
	return accountID, nil
}

// DeleteAccount removes an account and its mail
func (h *Host) DeleteAccount(ctx context.Context, id string) error {
	result, err := h.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("账户不存在")
	}
	return nil
}

// TestConnection reports connectivity for an account. The simulator
// only verifies the account and its credentials exist.
func (h *Host) TestConnection(ctx context.Context, accountID string) (string, error) {
	var password string
	err := h.db.QueryRowContext(ctx,
		"SELECT password FROM secrets WHERE account_id = ?", accountID).Scan(&password)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("账户不存在")
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up credentials: %w", err)
	}
	return "IMAP连接成功，SMTP连接成功", nil
}

// requireAccount returns an error when the account does not exist
func (h *Host) requireAccount(ctx context.Context, accountID string) error {
	var one int
	err := h.db.QueryRowContext(ctx, "SELECT 1 FROM accounts WHERE id = ?", accountID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("账户不存在")
	}
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	return nil
}

var _ command.Commander = (*Host)(nil)
