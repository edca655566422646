// Package jsoncompact shortens JSON documents by trimming long arrays and
// strings while keeping object keys in their original order.
package jsoncompact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Options controls JSON compaction behavior.
type Options struct {
	MaxArrayItems int // Trim arrays to N items (0 = no limit)
	MaxStringLen  int // Truncate strings longer than N bytes (0 = no limit)
	MaxDepth      int // Replace values nested deeper than N (0 = unlimited)
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 500
	DefaultMaxDepth      = 0 // unlimited
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Enabled reports whether the options change anything.
func (o *Options) Enabled() bool {
	return o != nil && (o.MaxArrayItems > 0 || o.MaxStringLen > 0 || o.MaxDepth > 0)
}

// node is a decoded JSON value that remembers key order.
type node struct {
	kind  byte // '{', '[', '"' or 0 for other scalars
	keys  []string
	items []node
	str   string
	raw   json.RawMessage
}

// Compact trims arrays and strings in data and returns compact JSON.
// Returns an error if data is not a single valid JSON value.
// If opts is nil, DefaultOptions() is used.
func Compact(data []byte, opts *Options) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return data, nil
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	root, err := parse(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encode(&buf, compact(root, opts, 0))
	return buf.Bytes(), nil
}

// Normalize re-encodes text with two-space indentation and numbers in their
// shortest float64 form, so "1.0" and "1" print the same. Numbers beyond
// float64 range become null. Key order is kept.
func Normalize(text string) (string, error) {
	root, err := parse([]byte(text))
	if err != nil {
		return "", err
	}

	var flat, buf bytes.Buffer
	encode(&flat, canonical(root))
	if err := json.Indent(&buf, flat.Bytes(), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func parse(data []byte) (node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decode(dec)
	if err != nil {
		return node{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return node{}, fmt.Errorf("invalid JSON: trailing data")
	}
	return root, nil
}

// Indented compacts text and re-indents it with two spaces.
func Indented(text string, opts *Options) (string, error) {
	out, err := Compact([]byte(text), opts)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decode(dec *json.Decoder) (node, error) {
	tok, err := dec.Token()
	if err != nil {
		return node{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := node{kind: '{'}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return node{}, err
				}
				key, _ := keyTok.(string)
				val, err := decode(dec)
				if err != nil {
					return node{}, err
				}
				n.keys = append(n.keys, key)
				n.items = append(n.items, val)
			}
			_, err := dec.Token()
			return n, err
		case '[':
			n := node{kind: '['}
			for dec.More() {
				val, err := decode(dec)
				if err != nil {
					return node{}, err
				}
				n.items = append(n.items, val)
			}
			_, err := dec.Token()
			return n, err
		}
		return node{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return node{kind: '"', str: t}, nil
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return node{}, err
		}
		return node{raw: raw}, nil
	}
}

func stringNode(s string) node {
	return node{kind: '"', str: s}
}

func compact(n node, opts *Options, depth int) node {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return stringNode("[max depth]")
	}
	switch n.kind {
	case '"':
		if opts.MaxStringLen > 0 && len(n.str) > opts.MaxStringLen {
			remaining := len(n.str) - opts.MaxStringLen
			return stringNode(n.str[:opts.MaxStringLen] + fmt.Sprintf("... (%d more chars)", remaining))
		}
		return n
	case '[':
		items := n.items
		var remaining int
		if opts.MaxArrayItems > 0 && len(items) > opts.MaxArrayItems {
			remaining = len(items) - opts.MaxArrayItems
			items = items[:opts.MaxArrayItems]
		}
		out := node{kind: '[', items: make([]node, 0, len(items)+1)}
		for _, item := range items {
			out.items = append(out.items, compact(item, opts, depth+1))
		}
		if remaining > 0 {
			out.items = append(out.items, stringNode(fmt.Sprintf("... (%d more items)", remaining)))
		}
		return out
	case '{':
		out := node{kind: '{', keys: n.keys, items: make([]node, len(n.items))}
		for i, item := range n.items {
			out.items[i] = compact(item, opts, depth+1)
		}
		return out
	default:
		return n
	}
}

func canonical(n node) node {
	switch n.kind {
	case '[', '{':
		out := node{kind: n.kind, keys: n.keys, items: make([]node, len(n.items))}
		for i, item := range n.items {
			out.items[i] = canonical(item)
		}
		return out
	case '"':
		return n
	}
	if len(n.raw) == 0 || (n.raw[0] != '-' && (n.raw[0] < '0' || n.raw[0] > '9')) {
		return n
	}
	f, err := strconv.ParseFloat(string(n.raw), 64)
	if err != nil && math.IsInf(f, 0) {
		return node{raw: json.RawMessage("null")}
	}
	return node{raw: json.RawMessage(formatNumber(f))}
}

// formatNumber prints f the way ECMAScript Number-to-string does.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs == 0 {
		return "0"
	}
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Truncate(buf.Len() - 1)
}

func encode(buf *bytes.Buffer, n node) {
	switch n.kind {
	case '"':
		writeString(buf, n.str)
	case '[':
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			encode(buf, item)
		}
		buf.WriteByte(']')
	case '{':
		buf.WriteByte('{')
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, key)
			buf.WriteByte(':')
			encode(buf, n.items[i])
		}
		buf.WriteByte('}')
	default:
		buf.Write(n.raw)
	}
}
