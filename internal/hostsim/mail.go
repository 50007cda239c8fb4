package hostsim

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/internal/view"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

const previewLength = 80

// FetchFolders returns the bootstrap folders plus any folder that holds
// mail for the account
func (h *Host) FetchFolders(ctx context.Context, accountID string) ([]string, error) {
	if err := h.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx,
		"SELECT DISTINCT folder FROM emails WHERE account_id = ? ORDER BY folder", accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	folders := append([]string(nil), view.DefaultFolders...)
	known := make(map[string]bool, len(folders))
	for _, f := range folders {
		known[f] = true
	}
	for rows.Next() {
		var folder string
		if err := rows.Scan(&folder); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		if !known[folder] {
			folders = append(folders, folder)
			known[folder] = true
		}
	}
	return folders, rows.Err()
}

// FetchEmails returns one page of a folder, newest uid first. The
// forceRefresh flag is accepted for contract compatibility; the
// simulator has no upstream to refresh from.
func (h *Host) FetchEmails(ctx context.Context, accountID, folder string, q command.EmailQuery) ([]types.EmailSummary, error) {
	if err := h.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}
	q = q.Normalize()

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, uid, subject, sender, date, is_read, is_starred, has_attachment, category, preview, body
		FROM emails WHERE account_id = ? AND folder = ?
		ORDER BY uid DESC LIMIT ? OFFSET ?
	`, accountID, folder, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer rows.Close()

	emails := []types.EmailSummary{}
	for rows.Next() {
		var e types.EmailSummary
		var isRead, isStarred, hasAttachment int
		var category sql.NullString
		if err := rows.Scan(&e.ID, &e.UID, &e.Subject, &e.From, &e.Date,
			&isRead, &isStarred, &hasAttachment, &category, &e.Preview, &e.Body); err != nil {
			return nil, fmt.Errorf("failed to scan email: %w", err)
		}
		e.IsRead = isRead != 0
		e.IsStarred = isStarred != 0
		e.HasAttachment = hasAttachment != 0
		e.Category = category.String
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

// FetchEmailDetail returns the full message for (folder, uid)
func (h *Host) FetchEmailDetail(ctx context.Context, accountID, folder string, uid uint32, forceRefresh bool) (*types.Email, error) {
	var e types.Email
	var isRead, isStarred, hasAttachment int
	var category, htmlBody sql.NullString
	var recipientsJSON, flagsJSON, dateStr string

	err := h.db.QueryRowContext(ctx, `
		SELECT id, uid, subject, sender, recipients, date, body, html_body, flags,
		       is_read, is_starred, category, has_attachment, size
		FROM emails WHERE account_id = ? AND folder = ? AND uid = ?
	`, accountID, folder, uid).Scan(&e.ID, &e.UID, &e.Subject, &e.From, &recipientsJSON,
		&dateStr, &e.Body, &htmlBody, &flagsJSON, &isRead, &isStarred, &category, &hasAttachment, &e.Size)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("邮件不存在: uid=%d", uid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email: %w", err)
	}

	e.Folder = folder
	e.IsRead = isRead != 0
	e.IsStarred = isStarred != 0
	e.HasAttachment = hasAttachment != 0
	e.Category = category.String
	e.HTMLBody = htmlBody.String

	e.Date, err = time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	if err := json.Unmarshal([]byte(recipientsJSON), &e.To); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipients: %w", err)
	}
	if err := json.Unmarshal([]byte(flagsJSON), &e.Flags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flags: %w", err)
	}
	return &e, nil
}

// MarkEmailRead flags a message as read
func (h *Host) MarkEmailRead(ctx context.Context, accountID, folder string, uid uint32) error {
	_, err := h.db.ExecContext(ctx,
		"UPDATE emails SET is_read = 1 WHERE account_id = ? AND folder = ? AND uid = ?",
		accountID, folder, uid)
	if err != nil {
		return fmt.Errorf("failed to mark email read: %w", err)
	}
	return nil
}

// DeleteEmail removes a message
func (h *Host) DeleteEmail(ctx context.Context, accountID, folder string, uid uint32) error {
	result, err := h.db.ExecContext(ctx,
		"DELETE FROM emails WHERE account_id = ? AND folder = ? AND uid = ?",
		accountID, folder, uid)
	if err != nil {
		return fmt.Errorf("failed to delete email: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("邮件不存在: uid=%d", uid)
	}
	return nil
}

// MoveEmail moves a message to destFolder, assigning the next uid there
func (h *Host) MoveEmail(ctx context.Context, accountID, folder string, uid uint32, destFolder string) error {
	nextUID, err := h.nextUID(ctx, accountID, destFolder)
	if err != nil {
		return err
	}
	result, err := h.db.ExecContext(ctx,
		"UPDATE emails SET folder = ?, uid = ? WHERE account_id = ? AND folder = ? AND uid = ?",
		destFolder, nextUID, accountID, folder, uid)
	if err != nil {
		return fmt.Errorf("failed to move email: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("邮件不存在: uid=%d", uid)
	}
	return nil
}

// SendEmail records an outgoing message in the sent folder
func (h *Host) SendEmail(ctx context.Context, accountID string, req command.SendEmailRequest) error {
	if err := h.requireAccount(ctx, accountID); err != nil {
		return err
	}
	if len(req.To) == 0 {
		return fmt.Errorf("收件人不能为空")
	}

	const sentFolder = "已发送"
	nextUID, err := h.nextUID(ctx, accountID, sentFolder)
	if err != nil {
		return err
	}

	recipients, err := json.Marshal(req.To)
	if err != nil {
		return fmt.Errorf("failed to marshal recipients: %w", err)
	}

	htmlBody := ""
	if req.IsHTML {
		htmlBody = req.Body
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO emails (id, account_id, folder, uid, subject, sender, recipients, date,
		                    body, html_body, flags, is_read, is_starred, has_attachment, preview, size)
		VALUES (?, ?, ?, ?, ?, (SELECT email FROM accounts WHERE id = ?), ?, ?, ?, ?, ?, 1, 0, 0, ?, ?)
	`, uuid.New().String(), accountID, sentFolder, nextUID, req.Subject, accountID,
		string(recipients), time.Now().UTC().Format(time.RFC3339), req.Body, htmlBody,
		`["\\Seen"]`, preview(req.Body), len(req.Body))
	if err != nil {
		return fmt.Errorf("failed to record sent email: %w", err)
	}
	return nil
}

// nextUID returns max(uid)+1 for a folder
func (h *Host) nextUID(ctx context.Context, accountID, folder string) (uint32, error) {
	var maxUID sql.NullInt64
	err := h.db.QueryRowContext(ctx,
		"SELECT MAX(uid) FROM emails WHERE account_id = ? AND folder = ?",
		accountID, folder).Scan(&maxUID)
	if err != nil {
		return 0, fmt.Errorf("failed to query max uid: %w", err)
	}
	return uint32(maxUID.Int64) + 1, nil
}

// preview truncates a body for list rows
func preview(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= previewLength {
		return body
	}
	return string(runes[:previewLength]) + "..."
}

// seedEmail describes one sample message for new accounts
type seedEmail struct {
	subject  string
	sender   string
	body     string
	category string
	read     bool
}

var seedEmails = []seedEmail{
	{
		subject:  "欢迎使用 MailFlow",
		sender:   "support@mailflow.app",
		body:     "感谢你添加邮箱账户。这是一封示例邮件，用于在本地模拟环境中展示收件箱。",
		category: types.CategoryOther,
	},
	{
		subject:  "项目周报：本周进展",
		sender:   "pm@example.com",
		body:     "本周完成了邮件列表页的重构，下周开始处理搜索功能。详细进度见附件文档。",
		category: types.CategoryWork,
	},
	{
		subject:  "限时优惠：全场五折起",
		sender:   "deals@shop.example.com",
		body:     "年中大促开始了！全场商品五折起，点击查看今日特价商品。",
		category: types.CategoryAds,
		read:     true,
	},
}

// seedInbox inserts the sample messages for a fresh account
func seedInbox(ctx context.Context, tx *sql.Tx, accountID string) error {
	base := time.Now().UTC()
	for i, e := range seedEmails {
		read := 0
		if e.read {
			read = 1
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO emails (id, account_id, folder, uid, subject, sender, recipients, date,
			                    body, html_body, flags, is_read, is_starred, has_attachment, category, preview, size)
			VALUES (?, ?, 'INBOX', ?, ?, ?, '[]', ?, ?, '', '[]', ?, 0, 0, ?, ?, ?)
		`, uuid.New().String(), accountID, i+1, e.subject, e.sender,
			base.Add(time.Duration(i-len(seedEmails))*time.Hour).Format(time.RFC3339),
			e.body, read, e.category, preview(e.body), len(e.body))
		if err != nil {
			return err
		}
	}
	return nil
}
