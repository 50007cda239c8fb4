// Package command defines the contract between the client orchestration
// store and the host command layer. The host owns credential storage,
// IMAP/SMTP transport, AI inference and config persistence; this package
// only names the operations and their request/response shapes.
package command

import (
	"context"

	"github.com/XIYBHK/MailFlow/pkg/types"
)

// Wire method names, fixed by the host protocol
const (
	MethodListAccounts     = "list_accounts"
	MethodAddAccount       = "add_account"
	MethodDeleteAccount    = "delete_account"
	MethodFetchFolders     = "fetch_folders"
	MethodFetchEmails      = "fetch_emails"
	MethodFetchEmailDetail = "fetch_email_detail"
	MethodMarkEmailRead    = "mark_email_read"
	MethodDeleteEmail      = "delete_email"
	MethodMoveEmail        = "move_email"
	MethodSendEmail        = "send_email"
	MethodClassifyEmail    = "classify_email_ai"
	MethodSummarizeEmail   = "summarize_email"
	MethodTranslateText    = "translate_text"
	MethodGenerateReply    = "generate_reply"
	MethodGetAppConfig     = "get_app_config"
	MethodUpdateAppConfig  = "update_app_config"
	MethodSetAIAPIKey      = "set_ai_api_key"
	MethodGetFilterRules   = "get_filter_rules"
	MethodSaveFilterRule   = "save_filter_rule"
	MethodDeleteFilterRule = "delete_filter_rule"
	MethodTestConnection   = "test_connection"
)

// Defaults applied when a request leaves a field unset
const (
	DefaultEmailLimit      = 50
	DefaultSummaryLanguage = "zh"
)

// AddAccountRequest carries the data needed to create an account.
// Provider must be one of the types.Provider* tags.
type AddAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// EmailQuery selects a page of a folder listing. A zero Limit means
// DefaultEmailLimit; ForceRefresh asks the host to bypass its cache.
type EmailQuery struct {
	Limit        int  `json:"limit"`
	Offset       int  `json:"offset"`
	ForceRefresh bool `json:"forceRefresh"`
}

// Normalize fills in the documented defaults
func (q EmailQuery) Normalize() EmailQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultEmailLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// SendEmailRequest carries an outgoing message
type SendEmailRequest struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	IsHTML  bool     `json:"isHtml"`
}

// ClassifyRequest asks the AI layer for a category string
type ClassifyRequest struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Body    string `json:"body"`
}

// Commander is the narrow surface of the host command layer the store
// depends on. Implementations: rpc.Client (stdio JSON-RPC to the real
// host) and hostsim.Host (local sqlite-backed simulator).
type Commander interface {
	// Accounts
	ListAccounts(ctx context.Context) ([]types.Account, error)
	AddAccount(ctx context.Context, req AddAccountRequest) (string, error)
	DeleteAccount(ctx context.Context, id string) error
	TestConnection(ctx context.Context, accountID string) (string, error)

	// Mail
	FetchFolders(ctx context.Context, accountID string) ([]string, error)
	FetchEmails(ctx context.Context, accountID, folder string, q EmailQuery) ([]types.EmailSummary, error)
	FetchEmailDetail(ctx context.Context, accountID, folder string, uid uint32, forceRefresh bool) (*types.Email, error)
	MarkEmailRead(ctx context.Context, accountID, folder string, uid uint32) error
	DeleteEmail(ctx context.Context, accountID, folder string, uid uint32) error
	MoveEmail(ctx context.Context, accountID, folder string, uid uint32, destFolder string) error
	SendEmail(ctx context.Context, accountID string, req SendEmailRequest) error

	// AI
	ClassifyEmail(ctx context.Context, req ClassifyRequest) (string, error)
	SummarizeEmail(ctx context.Context, content, language string) (string, error)
	TranslateText(ctx context.Context, text, targetLang string) (string, error)
	GenerateReply(ctx context.Context, req ClassifyRequest) (string, error)

	// Config
	GetAppConfig(ctx context.Context) (*types.AppConfig, error)
	UpdateAppConfig(ctx context.Context, cfg *types.AppConfig) error
	SetAIAPIKey(ctx context.Context, apiKey string) error
	GetFilterRules(ctx context.Context) ([]types.FilterRule, error)
	SaveFilterRule(ctx context.Context, rule *types.FilterRule) error
	DeleteFilterRule(ctx context.Context, id string) error
}
