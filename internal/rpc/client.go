package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// Client is the typed client side of the host command boundary. It
// implements command.Commander over a JSON-RPC stream, decoding and
// validating every response; a decode failure surfaces as an ordinary
// external-call failure.
//
// Calls are serialized: one request is in flight at a time, matching
// the store's single-suspension operation model.
type Client struct {
	mu     sync.Mutex
	enc    *json.Encoder
	dec    *json.Decoder
	logger *logrus.Logger
}

// NewClient creates a client over the given pipe to the host process
func NewClient(rw io.ReadWriter, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		enc:    json.NewEncoder(rw),
		dec:    json.NewDecoder(rw),
		logger: logger,
	}
}

// call performs one request/response round trip. A nil out discards the
// result (void operations).
func (c *Client) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var rawParams json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("encode %s params: %w", method, err)
		}
		rawParams = encoded
	}

	req := request{
		JSONRPC: jsonrpcVersion,
		ID:      uuid.New().String(),
		Method:  method,
		Params:  rawParams,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enc.Encode(&req); err != nil {
		return fmt.Errorf("send %s request: %w", method, err)
	}

	var resp response
	if err := c.dec.Decode(&resp); err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.ID != req.ID {
		return fmt.Errorf("%s: response id mismatch", method)
	}
	if resp.Error != nil {
		return fmt.Errorf("%s", resp.Error.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		c.logger.WithError(err).WithField("method", method).Warn("Malformed host response")
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// ListAccounts fetches all stored accounts
func (c *Client) ListAccounts(ctx context.Context) ([]types.Account, error) {
	var accounts []types.Account
	if err := c.call(ctx, command.MethodListAccounts, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AddAccount creates an account and returns its identity
func (c *Client) AddAccount(ctx context.Context, req command.AddAccountRequest) (string, error) {
	var accountID string
	if err := c.call(ctx, command.MethodAddAccount, addAccountParams(req), &accountID); err != nil {
		return "", err
	}
	if accountID == "" {
		return "", fmt.Errorf("%s: empty account id in response", command.MethodAddAccount)
	}
	return accountID, nil
}

// DeleteAccount removes an account
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.call(ctx, command.MethodDeleteAccount, idParams{ID: id}, nil)
}

// TestConnection verifies server connectivity for an account
func (c *Client) TestConnection(ctx context.Context, accountID string) (string, error) {
	var result string
	if err := c.call(ctx, command.MethodTestConnection, accountIDParams{AccountID: accountID}, &result); err != nil {
		return "", err
	}
	return result, nil
}

// FetchFolders lists the folder names of an account
func (c *Client) FetchFolders(ctx context.Context, accountID string) ([]string, error) {
	var folders []string
	if err := c.call(ctx, command.MethodFetchFolders, accountIDParams{AccountID: accountID}, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// FetchEmails lists one page of a folder
func (c *Client) FetchEmails(ctx context.Context, accountID, folder string, q command.EmailQuery) ([]types.EmailSummary, error) {
	q = q.Normalize()
	var emails []types.EmailSummary
	params := fetchEmailsParams{
		AccountID:    accountID,
		Folder:       folder,
		Limit:        q.Limit,
		Offset:       q.Offset,
		ForceRefresh: q.ForceRefresh,
	}
	if err := c.call(ctx, command.MethodFetchEmails, params, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

// FetchEmailDetail fetches a full message by (folder, uid)
func (c *Client) FetchEmailDetail(ctx context.Context, accountID, folder string, uid uint32, forceRefresh bool) (*types.Email, error) {
	var email types.Email
	params := emailDetailParams{
		AccountID:    accountID,
		Folder:       folder,
		UID:          uid,
		ForceRefresh: forceRefresh,
	}
	if err := c.call(ctx, command.MethodFetchEmailDetail, params, &email); err != nil {
		return nil, err
	}
	if email.UID != uid {
		return nil, fmt.Errorf("%s: response uid %d does not match request uid %d", command.MethodFetchEmailDetail, email.UID, uid)
	}
	return &email, nil
}

// MarkEmailRead flags a message as read on the server
func (c *Client) MarkEmailRead(ctx context.Context, accountID, folder string, uid uint32) error {
	return c.call(ctx, command.MethodMarkEmailRead, emailRefParams{AccountID: accountID, Folder: folder, UID: uid}, nil)
}

// DeleteEmail removes a message on the server
func (c *Client) DeleteEmail(ctx context.Context, accountID, folder string, uid uint32) error {
	return c.call(ctx, command.MethodDeleteEmail, emailRefParams{AccountID: accountID, Folder: folder, UID: uid}, nil)
}

// MoveEmail moves a message to another folder on the server
func (c *Client) MoveEmail(ctx context.Context, accountID, folder string, uid uint32, destFolder string) error {
	return c.call(ctx, command.MethodMoveEmail, moveEmailParams{AccountID: accountID, Folder: folder, UID: uid, DestFolder: destFolder}, nil)
}

// SendEmail submits an outgoing message
func (c *Client) SendEmail(ctx context.Context, accountID string, req command.SendEmailRequest) error {
	params := sendEmailParams{
		AccountID: accountID,
		To:        req.To,
		Subject:   req.Subject,
		Body:      req.Body,
		IsHTML:    req.IsHTML,
	}
	return c.call(ctx, command.MethodSendEmail, params, nil)
}

// ClassifyEmail returns an AI category for a message
func (c *Client) ClassifyEmail(ctx context.Context, req command.ClassifyRequest) (string, error) {
	var category string
	if err := c.call(ctx, command.MethodClassifyEmail, classifyParams(req), &category); err != nil {
		return "", err
	}
	return category, nil
}

// SummarizeEmail returns an AI summary of content
func (c *Client) SummarizeEmail(ctx context.Context, content, language string) (string, error) {
	if language == "" {
		language = command.DefaultSummaryLanguage
	}
	var summary string
	if err := c.call(ctx, command.MethodSummarizeEmail, summarizeParams{Content: content, Language: language}, &summary); err != nil {
		return "", err
	}
	return summary, nil
}

// TranslateText returns an AI translation of text
func (c *Client) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	var translated string
	if err := c.call(ctx, command.MethodTranslateText, translateParams{Text: text, TargetLang: targetLang}, &translated); err != nil {
		return "", err
	}
	return translated, nil
}

// GenerateReply returns an AI reply draft for a message
func (c *Client) GenerateReply(ctx context.Context, req command.ClassifyRequest) (string, error) {
	var draft string
	if err := c.call(ctx, command.MethodGenerateReply, classifyParams(req), &draft); err != nil {
		return "", err
	}
	return draft, nil
}

// GetAppConfig fetches the application configuration
func (c *Client) GetAppConfig(ctx context.Context) (*types.AppConfig, error) {
	var cfg types.AppConfig
	if err := c.call(ctx, command.MethodGetAppConfig, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateAppConfig replaces the application configuration
func (c *Client) UpdateAppConfig(ctx context.Context, cfg *types.AppConfig) error {
	return c.call(ctx, command.MethodUpdateAppConfig, map[string]interface{}{"config": cfg}, nil)
}

// SetAIAPIKey stores the AI provider key
func (c *Client) SetAIAPIKey(ctx context.Context, apiKey string) error {
	return c.call(ctx, command.MethodSetAIAPIKey, apiKeyParams{APIKey: apiKey}, nil)
}

// GetFilterRules fetches all filter rules
func (c *Client) GetFilterRules(ctx context.Context) ([]types.FilterRule, error) {
	var rules []types.FilterRule
	if err := c.call(ctx, command.MethodGetFilterRules, nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// SaveFilterRule creates or updates a filter rule
func (c *Client) SaveFilterRule(ctx context.Context, rule *types.FilterRule) error {
	return c.call(ctx, command.MethodSaveFilterRule, map[string]interface{}{"rule": rule}, nil)
}

// DeleteFilterRule removes a filter rule
func (c *Client) DeleteFilterRule(ctx context.Context, id string) error {
	return c.call(ctx, command.MethodDeleteFilterRule, idParams{ID: id}, nil)
}

var _ command.Commander = (*Client)(nil)
