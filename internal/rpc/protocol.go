// Package rpc speaks the host command protocol: JSON-RPC 2.0 request and
// response objects streamed over a byte pipe (stdio between the UI shell
// and the host process). Client turns typed calls into wire requests;
// Server exposes any command.Commander on the other end of the pipe.
package rpc

import "encoding/json"

const jsonrpcVersion = "2.0"

// JSON-RPC error codes used by the host protocol
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *responseError  `json:"error,omitempty"`
}

type responseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Per-operation parameter shapes. Field names are part of the wire
// contract and must not change.

type accountIDParams struct {
	AccountID string `json:"accountId"`
}

type idParams struct {
	ID string `json:"id"`
}

type addAccountParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

type fetchEmailsParams struct {
	AccountID    string `json:"accountId"`
	Folder       string `json:"folder"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
	ForceRefresh bool   `json:"forceRefresh"`
}

type emailDetailParams struct {
	AccountID    string `json:"accountId"`
	Folder       string `json:"folder"`
	UID          uint32 `json:"uid"`
	ForceRefresh bool   `json:"forceRefresh"`
}

type emailRefParams struct {
	AccountID string `json:"accountId"`
	Folder    string `json:"folder"`
	UID       uint32 `json:"uid"`
}

type moveEmailParams struct {
	AccountID  string `json:"accountId"`
	Folder     string `json:"folder"`
	UID        uint32 `json:"uid"`
	DestFolder string `json:"destFolder"`
}

type sendEmailParams struct {
	AccountID string   `json:"accountId"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	IsHTML    bool     `json:"isHtml"`
}

type classifyParams struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Body    string `json:"body"`
}

type summarizeParams struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

type translateParams struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

type apiKeyParams struct {
	APIKey string `json:"apiKey"`
}
