// Package capture turns recorded HTTP traffic (HAR 1.2 archives and powhttp
// sessions) into call records for API inference.
package capture

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/usestring/har2raml/pkg/contenttype"
	"github.com/usestring/har2raml/pkg/raml"
)

// HAR is the top-level HAR document.
type HAR struct {
	Log Log `json:"log"`
}

// Log holds the archive metadata and entries.
type Log struct {
	Version string  `json:"version"`
	Creator Creator `json:"creator"`
	Entries []Entry `json:"entries"`
}

// Creator identifies the tool that produced the archive.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Entry is one request/response pair.
type Entry struct {
	StartedDateTime string   `json:"startedDateTime,omitempty"`
	Time            float64  `json:"time,omitempty"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
	ServerIPAddress string   `json:"serverIPAddress,omitempty"`
	Timings         *Timings `json:"timings,omitempty"`
	Comment         string   `json:"comment,omitempty"`

	// raw is the entry as decoded, including fields not modeled here.
	raw json.RawMessage
}

// UnmarshalJSON decodes the entry and keeps its source for selectors.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Timings holds the phase durations of an entry in milliseconds.
type Timings struct {
	Blocked float64 `json:"blocked,omitempty"`
	DNS     float64 `json:"dns,omitempty"`
	Connect float64 `json:"connect,omitempty"`
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
	SSL     float64 `json:"ssl,omitempty"`
}

// Request is the HTTP request of an entry.
type Request struct {
	Method      string      `json:"method"`
	URL         string      `json:"url"`
	HTTPVersion string      `json:"httpVersion,omitempty"`
	Headers     []NameValue `json:"headers,omitempty"`
	QueryString []NameValue `json:"queryString,omitempty"`
	PostData    *PostData   `json:"postData,omitempty"`
}

// Response is the HTTP response of an entry.
type Response struct {
	Status      int         `json:"status"`
	StatusText  string      `json:"statusText,omitempty"`
	HTTPVersion string      `json:"httpVersion,omitempty"`
	Headers     []NameValue `json:"headers,omitempty"`
	Content     *Content    `json:"content,omitempty"`
}

// Content is the response body.
type Content struct {
	Size     int    `json:"size,omitempty"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// PostData is the request body.
type PostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// NameValue is a header or query string pair.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NormalizeURL keeps the part of a captured URL that identifies the resource:
// from the last "http://" or "https://" (proxies prefix their own address)
// up to the query string or fragment.
func NormalizeURL(raw string) string {
	start := max(strings.LastIndex(raw, "http://"), strings.LastIndex(raw, "https://"), 0)
	u := raw[start:]
	if end := strings.IndexAny(u, "?#"); end >= 0 {
		u = u[:end]
	}
	return u
}

// ParseQuery returns the query string pairs of a raw URL in the order they appear.
func ParseQuery(raw string) []raml.ParamOccurrence {
	_, query, ok := strings.Cut(raw, "?")
	if !ok {
		return nil
	}
	query, _, _ = strings.Cut(query, "#")

	var out []raml.ParamOccurrence
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		out = append(out, raml.ParamOccurrence{Name: unescape(name), Value: unescape(value)})
	}
	return out
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// Call reduces the entry to a call record. Query parameters come from the
// archive's queryString, or from the URL when the archive omitted them.
func (e *Entry) Call() *raml.CallRecord {
	c := &raml.CallRecord{
		Method:         e.Request.Method,
		URL:            NormalizeURL(e.Request.URL),
		ResponseStatus: strconv.Itoa(e.Response.Status),
	}
	if e.Request.QueryString != nil {
		for _, q := range e.Request.QueryString {
			c.Query = append(c.Query, raml.ParamOccurrence{Name: q.Name, Value: q.Value})
		}
	} else {
		c.Query = ParseQuery(e.Request.URL)
	}
	if pd := e.Request.PostData; pd != nil {
		c.RequestBody = rawBody(pd.MimeType, pd.Text, "")
	}
	if ct := e.Response.Content; ct != nil {
		c.ResponseBody = rawBody(ct.MimeType, ct.Text, ct.Encoding)
	}
	return c
}

// Calls converts entries in order.
func Calls(entries []Entry) []*raml.CallRecord {
	calls := make([]*raml.CallRecord, len(entries))
	for i := range entries {
		calls[i] = entries[i].Call()
	}
	return calls
}

// rawBody interprets captured body text. Base64 payloads are decoded;
// binary or undecodable payloads keep their media type but no text.
func rawBody(mimeType, text, encoding string) *raml.RawBody {
	if mimeType == "" {
		return nil
	}
	if encoding != "base64" {
		return &raml.RawBody{MediaType: mimeType, Text: text}
	}
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil || contenttype.IsBinary(mimeType, data) {
		return &raml.RawBody{MediaType: mimeType}
	}
	return &raml.RawBody{MediaType: mimeType, Text: string(data)}
}
