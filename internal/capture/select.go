package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
)

// ErrInvalidSelector is wrapped by errors from NewSelector.
var ErrInvalidSelector = errors.New("invalid selector")

// Selector is a compiled jq predicate over HAR entries.
type Selector struct {
	expr string
	code *gojq.Code
}

// NewSelector compiles a jq expression such as
// `.response.status < 400 and (.request.url | test("/api/"))`.
func NewSelector(expr string) (*Selector, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrInvalidSelector, expr, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %w", ErrInvalidSelector, expr, err)
	}
	return &Selector{expr: expr, code: code}, nil
}

// Match reports whether the expression's first output for entry is neither
// false nor null. An expression with no output does not match.
func (s *Selector) Match(ctx context.Context, entry *Entry) (bool, error) {
	input, err := toJQValue(entry)
	if err != nil {
		return false, err
	}
	iter := s.code.RunWithContext(ctx, input)
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, isErr := v.(error); isErr {
		return false, fmt.Errorf("evaluating selector %q: %w", s.expr, err)
	}
	return v != nil && v != false, nil
}

// Select keeps the entries matching expr, in order.
func Select(ctx context.Context, entries []Entry, expr string) ([]Entry, error) {
	s, err := NewSelector(expr)
	if err != nil {
		return nil, err
	}
	var kept []Entry
	for i := range entries {
		ok, err := s.Match(ctx, &entries[i])
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, entries[i])
		}
	}
	return kept, nil
}

// toJQValue converts an entry to the plain maps and slices gojq evaluates.
// Decoded entries are evaluated as read, so fields absent from Entry stay
// visible.
func toJQValue(entry *Entry) (any, error) {
	data := []byte(entry.raw)
	if len(data) == 0 {
		var err error
		if data, err = json.Marshal(entry); err != nil {
			return nil, err
		}
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
