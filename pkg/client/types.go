package client

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Session is a powhttp session holding captured traffic.
type Session struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	EntryIDs []string `json:"entryIds"`
}

// Headers is a slice of header key-value pairs.
type Headers [][]string

// Get returns the first value for the given header name (case-insensitive),
// or an empty string.
func (h Headers) Get(name string) string {
	for _, pair := range h {
		if len(pair) >= 2 && strings.EqualFold(pair[0], name) {
			return pair[1]
		}
	}
	return ""
}

// Request is the request half of an entry.
type Request struct {
	Method  *string `json:"method"`
	Path    *string `json:"path"`
	Headers Headers `json:"headers"`
	Body    *string `json:"body"` // base64
}

// Response is the response half of an entry. It is nil while pending.
type Response struct {
	StatusCode *int    `json:"statusCode"`
	StatusText *string `json:"statusText"`
	Headers    Headers `json:"headers"`
	Body       *string `json:"body"` // base64
}

// SessionEntry is one HTTP exchange captured within a session.
type SessionEntry struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	HTTPVersion     string    `json:"httpVersion"`
	TransactionType string    `json:"transactionType"` // "request" or "push_promise"
	Request         Request   `json:"request"`
	Response        *Response `json:"response"`
	IsWebSocket     bool      `json:"isWebSocket"`
}

// TransactionRequest marks ordinary request/response entries.
const TransactionRequest = "request"

// APIError is an error response from the powhttp API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("powhttp API error %d: %s", e.StatusCode, e.Message)
}

type errorResponse struct {
	Error string `json:"error"`
}

// DecodeBody decodes a base64 body. A nil body decodes to nil.
func DecodeBody(encoded *string) ([]byte, error) {
	if encoded == nil {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(*encoded)
}
