package client

import (
	"context"
	"fmt"
	"net/url"
)

// ListEntriesOptions narrows the entries returned for a session.
type ListEntriesOptions struct {
	// Selected keeps only entries selected in the powhttp interface.
	Selected bool
	// Bookmarked keeps only bookmarked entries.
	Bookmarked bool
}

func (o *ListEntriesOptions) query() url.Values {
	if o == nil {
		return nil
	}
	q := make(url.Values)
	if o.Selected {
		q.Set("selected", "")
	}
	if o.Bookmarked {
		q.Set("bookmarked", "")
	}
	return q
}

// ListEntries retrieves the entries of a session in capture order.
func (c *Client) ListEntries(ctx context.Context, sessionID string, opts *ListEntriesOptions) ([]SessionEntry, error) {
	path := "/sessions/" + url.PathEscape(sessionID) + "/entries"
	var entries []SessionEntry
	if err := c.get(ctx, path, opts.query(), &entries); err != nil {
		return nil, fmt.Errorf("listing entries for session %q: %w", sessionID, err)
	}
	return entries, nil
}
