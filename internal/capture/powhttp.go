package capture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usestring/har2raml/pkg/client"
	"github.com/usestring/har2raml/pkg/contenttype"
)

// EntryLister lists the entries of a powhttp session. *client.Client implements it.
type EntryLister interface {
	ListEntries(ctx context.Context, sessionID string, opts *client.ListEntriesOptions) ([]client.SessionEntry, error)
}

// FromSession fetches a powhttp session and converts its completed HTTP
// exchanges to HAR entries, in capture order.
func FromSession(ctx context.Context, lister EntryLister, sessionID string, opts *client.ListEntriesOptions) ([]Entry, error) {
	sessionEntries, err := lister.ListEntries(ctx, sessionID, opts)
	if err != nil {
		return nil, fmt.Errorf("loading session %q: %w", sessionID, err)
	}

	entries := make([]Entry, 0, len(sessionEntries))
	skipped := 0
	for i := range sessionEntries {
		e, ok := FromSessionEntry(&sessionEntries[i])
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	slog.Info("loaded powhttp session",
		slog.String("session_id", sessionID),
		slog.Int("entries", len(entries)),
		slog.Int("skipped", skipped),
	)
	return entries, nil
}

// FromSessionEntry converts a powhttp entry to a HAR entry. ok is false for
// WebSocket upgrades, server pushes and exchanges without a response.
func FromSessionEntry(se *client.SessionEntry) (Entry, bool) {
	if se.IsWebSocket || se.Response == nil || se.Request.Method == nil {
		return Entry{}, false
	}
	if se.TransactionType != "" && se.TransactionType != client.TransactionRequest {
		return Entry{}, false
	}

	e := Entry{
		Request: Request{
			Method:      *se.Request.Method,
			URL:         se.URL,
			HTTPVersion: se.HTTPVersion,
			Headers:     headerPairs(se.Request.Headers),
			QueryString: queryPairs(se.URL),
		},
		Response: Response{
			HTTPVersion: se.HTTPVersion,
			Headers:     headerPairs(se.Response.Headers),
		},
	}
	if se.Response.StatusCode != nil {
		e.Response.Status = *se.Response.StatusCode
	}
	if se.Response.StatusText != nil {
		e.Response.StatusText = *se.Response.StatusText
	}

	if body := se.Request.Body; body != nil {
		mimeType := se.Request.Headers.Get("Content-Type")
		data, err := client.DecodeBody(body)
		if err != nil || contenttype.IsBinary(mimeType, data) {
			data = nil
		}
		e.Request.PostData = &PostData{MimeType: mimeType, Text: string(data)}
	}
	if body := se.Response.Body; body != nil {
		e.Response.Content = &Content{
			MimeType: se.Response.Headers.Get("Content-Type"),
			Text:     *body,
			Encoding: "base64",
		}
	}
	return e, true
}

func headerPairs(h client.Headers) []NameValue {
	var out []NameValue
	for _, pair := range h {
		if len(pair) >= 2 {
			out = append(out, NameValue{Name: pair[0], Value: pair[1]})
		}
	}
	return out
}

func queryPairs(rawURL string) []NameValue {
	occs := ParseQuery(rawURL)
	out := make([]NameValue, len(occs))
	for i, o := range occs {
		out[i] = NameValue{Name: o.Name, Value: o.Value}
	}
	return out
}
