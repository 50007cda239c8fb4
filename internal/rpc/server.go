package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/XIYBHK/MailFlow/internal/command"
	"github.com/XIYBHK/MailFlow/pkg/types"
)

// Server exposes a command.Commander over the host wire protocol.
// Requests are handled one at a time in arrival order.
type Server struct {
	cmd    command.Commander
	logger *logrus.Logger
}

// NewServer creates a server for the given commander
func NewServer(cmd command.Commander, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{cmd: cmd, logger: logger}
}

// Run serves requests from r and writes responses to w until EOF or
// context cancellation
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	dec := json.NewDecoder(r)
	enc := json.NewEncoder(w)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var req request
		if err := dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			s.logger.WithError(err).Error("Failed to decode request")
			return fmt.Errorf("decode request: %w", err)
		}

		resp := s.handle(ctx, &req)
		if err := enc.Encode(resp); err != nil {
			s.logger.WithError(err).Error("Failed to encode response")
			return fmt.Errorf("encode response: %w", err)
		}
	}
}

// handle dispatches one request to the commander
func (s *Server) handle(ctx context.Context, req *request) *response {
	s.logger.WithField("method", req.Method).Debug("Handling request")

	result, err := s.dispatch(ctx, req.Method, req.Params)
	if err != nil {
		code := codeInternalError
		switch err.(type) {
		case *methodNotFoundError:
			code = codeMethodNotFound
		case *invalidParamsError:
			code = codeInvalidParams
		}
		return &response{
			JSONRPC: jsonrpcVersion,
			ID:      req.ID,
			Error:   &responseError{Code: code, Message: err.Error()},
		}
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return &response{
			JSONRPC: jsonrpcVersion,
			ID:      req.ID,
			Error:   &responseError{Code: codeInternalError, Message: err.Error()},
		}
	}
	return &response{JSONRPC: jsonrpcVersion, ID: req.ID, Result: raw}
}

type methodNotFoundError struct{ method string }

func (e *methodNotFoundError) Error() string { return fmt.Sprintf("Method not found: %s", e.method) }

type invalidParamsError struct {
	method string
	cause  error
}

func (e *invalidParamsError) Error() string {
	return fmt.Sprintf("Invalid params for %s: %v", e.method, e.cause)
}

// decodeParams unmarshals the raw params into the typed shape
func decodeParams(method string, raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		return &invalidParamsError{method: method, cause: fmt.Errorf("missing params")}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &invalidParamsError{method: method, cause: err}
	}
	return nil
}

// dispatch maps a wire method to a commander call. Void operations
// return nil, which encodes as a JSON null result.
func (s *Server) dispatch(ctx context.Context, method string, raw json.RawMessage) (interface{}, error) {
	switch method {
	case command.MethodListAccounts:
		return s.cmd.ListAccounts(ctx)

	case command.MethodAddAccount:
		var p addAccountParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.AddAccount(ctx, command.AddAccountRequest(p))

	case command.MethodDeleteAccount:
		var p idParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return nil, s.cmd.DeleteAccount(ctx, p.ID)

	case command.MethodTestConnection:
		var p accountIDParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.TestConnection(ctx, p.AccountID)

	case command.MethodFetchFolders:
		var p accountIDParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.FetchFolders(ctx, p.AccountID)

	case command.MethodFetchEmails:
		var p fetchEmailsParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		q := command.EmailQuery{Limit: p.Limit, Offset: p.Offset, ForceRefresh: p.ForceRefresh}
		return s.cmd.FetchEmails(ctx, p.AccountID, p.Folder, q)

	case command.MethodFetchEmailDetail:
		var p emailDetailParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.FetchEmailDetail(ctx, p.AccountID, p.Folder, p.UID, p.ForceRefresh)

	case command.MethodMarkEmailRead:
		var p emailRefParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return nil, s.cmd.MarkEmailRead(ctx, p.AccountID, p.Folder, p.UID)

	case command.MethodDeleteEmail:
		var p emailRefParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return nil, s.cmd.DeleteEmail(ctx, p.AccountID, p.Folder, p.UID)

	case command.MethodMoveEmail:
		var p moveEmailParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return nil, s.cmd.MoveEmail(ctx, p.AccountID, p.Folder, p.UID, p.DestFolder)

	case command.MethodSendEmail:
		var p sendEmailParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		req := command.SendEmailRequest{To: p.To, Subject: p.Subject, Body: p.Body, IsHTML: p.IsHTML}
		return nil, s.cmd.SendEmail(ctx, p.AccountID, req)

	case command.MethodClassifyEmail:
		var p classifyParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.ClassifyEmail(ctx, command.ClassifyRequest(p))

	case command.MethodSummarizeEmail:
		var p summarizeParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.SummarizeEmail(ctx, p.Content, p.Language)

	case command.MethodTranslateText:
		var p translateParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.TranslateText(ctx, p.Text, p.TargetLang)

	case command.MethodGenerateReply:
		var p classifyParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return s.cmd.GenerateReply(ctx, command.ClassifyRequest(p))

	case command.MethodGetAppConfig:
		return s.cmd.GetAppConfig(ctx)

	case command.MethodUpdateAppConfig:
		var p struct {
			Config *types.AppConfig `json:"config"`
		}
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		if p.Config == nil {
			return nil, &invalidParamsError{method: method, cause: fmt.Errorf("config is required")}
		}
		return nil, s.cmd.UpdateAppConfig(ctx, p.Config)

	case command.MethodSetAIAPIKey:
		var p apiKeyParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return nil, s.cmd.SetAIAPIKey(ctx, p.APIKey)

	case command.MethodGetFilterRules:
		return s.cmd.GetFilterRules(ctx)

	case command.MethodSaveFilterRule:
		var p struct {
			Rule *types.FilterRule `json:"rule"`
		}
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		if p.Rule == nil {
			return nil, &invalidParamsError{method: method, cause: fmt.Errorf("rule is required")}
		}
		return nil, s.cmd.SaveFilterRule(ctx, p.Rule)

	case command.MethodDeleteFilterRule:
		var p idParams
		if err := decodeParams(method, raw, &p); err != nil {
			return nil, err
		}
		return nil, s.cmd.DeleteFilterRule(ctx, p.ID)

	default:
		return nil, &methodNotFoundError{method: method}
	}
}
