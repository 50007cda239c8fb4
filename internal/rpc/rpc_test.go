package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// stubCommander answers with its scripted function fields; anything
// unset returns zero values.
type stubCommander struct {
	listAccountsFn     func(ctx context.Context) ([]types.Account, error)
	addAccountFn       func(ctx context.Context, req command.AddAccountRequest) (string, error)
	fetchEmailsFn      func(ctx context.Context, accountID, folder string, q command.EmailQuery) ([]types.EmailSummary, error)
	fetchEmailDetailFn func(ctx context.Context, accountID, folder string, uid uint32, forceRefresh bool) (*types.Email, error)
	sendEmailFn        func(ctx context.Context, accountID string, req command.SendEmailRequest) error
	summarizeEmailFn   func(ctx context.Context, content, language string) (string, error)
	updateAppConfigFn  func(ctx context.Context, cfg *types.AppConfig) error
}

func (s *stubCommander) ListAccounts(ctx context.Context) ([]types.Account, error) {
	if s.listAccountsFn != nil {
		return s.listAccountsFn(ctx)
	}
	return nil, nil
}

func (s *stubCommander) AddAccount(ctx context.Context, req command.AddAccountRequest) (string, error) {
	if s.addAccountFn != nil {
		return s.addAccountFn(ctx, req)
	}
	return "", nil
}

func (s *stubCommander) DeleteAccount(ctx context.Context, id string) error { return nil }

func (s *stubCommander) TestConnection(ctx context.Context, accountID string) (string, error) {
	return "", nil
}

func (s *stubCommander) FetchFolders(ctx context.Context, accountID string) ([]string, error) {
	return nil, nil
}

func (s *stubCommander) FetchEmails(ctx context.Context, accountID, folder string, q command.EmailQuery) ([]types.EmailSummary, error) {
	if s.fetchEmailsFn != nil {
		return s.fetchEmailsFn(ctx, accountID, folder, q)
	}
	return nil, nil
}

func (s *stubCommander) FetchEmailDetail(ctx context.Context, accountID, folder string, uid uint32, forceRefresh bool) (*types.Email, error) {
	if s.fetchEmailDetailFn != nil {
		return s.fetchEmailDetailFn(ctx, accountID, folder, uid, forceRefresh)
	}
	return &types.Email{UID: uid, Folder: folder}, nil
}

func (s *stubCommander) MarkEmailRead(ctx context.Context, accountID, folder string, uid uint32) error {
	return nil
}

func (s *stubCommander) DeleteEmail(ctx context.Context, accountID, folder string, uid uint32) error {
	return nil
}

func (s *stubCommander) MoveEmail(ctx context.Context, accountID, folder string, uid uint32, destFolder string) error {
	return nil
}

func (s *stubCommander) SendEmail(ctx context.Context, accountID string, req command.SendEmailRequest) error {
	if s.sendEmailFn != nil {
		return s.sendEmailFn(ctx, accountID, req)
	}
	return nil
}

func (s *stubCommander) ClassifyEmail(ctx context.Context, req command.ClassifyRequest) (string, error) {
	return "", nil
}

func (s *stubCommander) SummarizeEmail(ctx context.Context, content, language string) (string, error) {
	if s.summarizeEmailFn != nil {
		return s.summarizeEmailFn(ctx, content, language)
	}
	return "", nil
}

func (s *stubCommander) TranslateText(ctx context.Context, text, targetLang string) (string, error) {
	return "", nil
}

func (s *stubCommander) GenerateReply(ctx context.Context, req command.ClassifyRequest) (string, error) {
	return "", nil
}

func (s *stubCommander) GetAppConfig(ctx context.Context) (*types.AppConfig, error) {
	cfg := types.DefaultAppConfig()
	return &cfg, nil
}

func (s *stubCommander) UpdateAppConfig(ctx context.Context, cfg *types.AppConfig) error {
	if s.updateAppConfigFn != nil {
		return s.updateAppConfigFn(ctx, cfg)
	}
	return nil
}

func (s *stubCommander) SetAIAPIKey(ctx context.Context, apiKey string) error { return nil }

func (s *stubCommander) GetFilterRules(ctx context.Context) ([]types.FilterRule, error) {
	return nil, nil
}

func (s *stubCommander) SaveFilterRule(ctx context.Context, rule *types.FilterRule) error {
	return nil
}

func (s *stubCommander) DeleteFilterRule(ctx context.Context, id string) error { return nil }

var _ command.Commander = (*stubCommander)(nil)

type pipeConn struct {
	io.Reader
	io.Writer
}

// startPipe wires a client to a server over in-memory pipes and tears
// both down with the test
func startPipe(t *testing.T, cmd command.Commander) *Client {
	t.Helper()

	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(cmd, nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Run(ctx, serverR, serverW)
	}()

	t.Cleanup(func() {
		cancel()
		clientW.Close()
		serverR.Close()
		<-done
	})

	return NewClient(pipeConn{Reader: clientR, Writer: clientW}, nil)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("list accounts", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			listAccountsFn: func(ctx context.Context) ([]types.Account, error) {
				return []types.Account{{ID: "acct-1", Email: "a@163.com", IsDefault: true}}, nil
			},
		})

		accounts, err := client.ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "acct-1", accounts[0].ID)
		assert.True(t, accounts[0].IsDefault)
	})

	t.Run("add account returns the new id", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			addAccountFn: func(ctx context.Context, req command.AddAccountRequest) (string, error) {
				assert.Equal(t, "a@163.com", req.Email)
				assert.Equal(t, types.Provider163, req.Provider)
				return "acct-new", nil
			},
		})

		id, err := client.AddAccount(ctx, command.AddAccountRequest{
			Email:    "a@163.com",
			Password: "secret",
			Provider: types.Provider163,
		})
		require.NoError(t, err)
		assert.Equal(t, "acct-new", id)
	})

	t.Run("add account rejects an empty id in the response", func(t *testing.T) {
		client := startPipe(t, &stubCommander{})

		_, err := client.AddAccount(ctx, command.AddAccountRequest{Email: "a@163.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty account id")
	})

	t.Run("fetch emails carries the page parameters", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			fetchEmailsFn: func(ctx context.Context, accountID, folder string, q command.EmailQuery) ([]types.EmailSummary, error) {
				assert.Equal(t, "acct-1", accountID)
				assert.Equal(t, "已发送", folder)
				assert.Equal(t, 20, q.Limit)
				assert.Equal(t, 40, q.Offset)
				assert.True(t, q.ForceRefresh)
				return []types.EmailSummary{{UID: 9, Subject: "hi"}}, nil
			},
		})

		emails, err := client.FetchEmails(ctx, "acct-1", "已发送", command.EmailQuery{Limit: 20, Offset: 40, ForceRefresh: true})
		require.NoError(t, err)
		require.Len(t, emails, 1)
		assert.Equal(t, uint32(9), emails[0].UID)
	})

	t.Run("email detail uid mismatch is rejected", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			fetchEmailDetailFn: func(ctx context.Context, accountID, folder string, uid uint32, forceRefresh bool) (*types.Email, error) {
				return &types.Email{UID: uid + 1, Folder: folder}, nil
			},
		})

		_, err := client.FetchEmailDetail(ctx, "acct-1", "INBOX", 7, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})

	t.Run("void operation", func(t *testing.T) {
		var got command.SendEmailRequest
		client := startPipe(t, &stubCommander{
			sendEmailFn: func(ctx context.Context, accountID string, req command.SendEmailRequest) error {
				got = req
				return nil
			},
		})

		err := client.SendEmail(ctx, "acct-1", command.SendEmailRequest{
			To:      []string{"to@example.com"},
			Subject: "hello",
			Body:    "<p>hi</p>",
			IsHTML:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"to@example.com"}, got.To)
		assert.True(t, got.IsHTML)
	})

	t.Run("host error arrives as a plain message", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			summarizeEmailFn: func(ctx context.Context, content, language string) (string, error) {
				return "", errors.New("邮件内容为空，无法生成摘要")
			},
		})

		_, err := client.SummarizeEmail(ctx, "", "zh")
		require.EqualError(t, err, "邮件内容为空，无法生成摘要")
	})

	t.Run("summarize defaults the language on the wire", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			summarizeEmailFn: func(ctx context.Context, content, language string) (string, error) {
				assert.Equal(t, "zh", language)
				return "摘要：hello", nil
			},
		})

		summary, err := client.SummarizeEmail(ctx, "hello", "")
		require.NoError(t, err)
		assert.Equal(t, "摘要：hello", summary)
	})

	t.Run("update config wraps the payload", func(t *testing.T) {
		client := startPipe(t, &stubCommander{
			updateAppConfigFn: func(ctx context.Context, cfg *types.AppConfig) error {
				assert.Equal(t, "dark", cfg.UI.Theme)
				return nil
			},
		})

		cfg := types.DefaultAppConfig()
		cfg.UI.Theme = "dark"
		require.NoError(t, client.UpdateAppConfig(ctx, &cfg))
	})

	t.Run("cancelled context short-circuits", func(t *testing.T) {
		client := startPipe(t, &stubCommander{})

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.ListAccounts(cancelled)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestHandleErrors(t *testing.T) {
	ctx := context.Background()
	srv := NewServer(&stubCommander{}, nil)

	t.Run("unknown method", func(t *testing.T) {
		resp := srv.handle(ctx, &request{JSONRPC: jsonrpcVersion, ID: "1", Method: "bogus_method"})
		require.NotNil(t, resp.Error)
		assert.Equal(t, codeMethodNotFound, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "bogus_method")
	})

	t.Run("missing params", func(t *testing.T) {
		resp := srv.handle(ctx, &request{JSONRPC: jsonrpcVersion, ID: "2", Method: command.MethodDeleteAccount})
		require.NotNil(t, resp.Error)
		assert.Equal(t, codeInvalidParams, resp.Error.Code)
	})

	t.Run("malformed params", func(t *testing.T) {
		resp := srv.handle(ctx, &request{
			JSONRPC: jsonrpcVersion,
			ID:      "3",
			Method:  command.MethodFetchEmails,
			Params:  json.RawMessage(`{"limit": "not a number"}`),
		})
		require.NotNil(t, resp.Error)
		assert.Equal(t, codeInvalidParams, resp.Error.Code)
	})

	t.Run("nil config rejected", func(t *testing.T) {
		resp := srv.handle(ctx, &request{
			JSONRPC: jsonrpcVersion,
			ID:      "4",
			Method:  command.MethodUpdateAppConfig,
			Params:  json.RawMessage(`{}`),
		})
		require.NotNil(t, resp.Error)
		assert.Equal(t, codeInvalidParams, resp.Error.Code)
	})

	t.Run("commander failure maps to internal error", func(t *testing.T) {
		failing := NewServer(&stubCommander{
			listAccountsFn: func(ctx context.Context) ([]types.Account, error) {
				return nil, errors.New("db locked")
			},
		}, nil)

		resp := failing.handle(ctx, &request{JSONRPC: jsonrpcVersion, ID: "5", Method: command.MethodListAccounts})
		require.NotNil(t, resp.Error)
		assert.Equal(t, codeInternalError, resp.Error.Code)
		assert.Equal(t, "db locked", resp.Error.Message)
	})
}
