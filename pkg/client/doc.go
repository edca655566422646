// Package client is a small client for the powhttp Data API, limited to
// what capture conversion reads: sessions and their entries.
//
//	c := client.New(client.WithBaseURL("http://localhost:7777"))
//	entries, err := c.ListEntries(ctx, "active", nil)
//
// "active" may be passed wherever a session ID is expected to reference the
// session currently open in powhttp. Bodies are base64; use DecodeBody.
package client
