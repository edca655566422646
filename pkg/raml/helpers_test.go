package raml

import "strings"

// call builds a record from "name=value" query pairs.
func call(method, url, status string, query ...string) *CallRecord {
	c := &CallRecord{Method: method, URL: url, ResponseStatus: status}
	for _, q := range query {
		name, value, _ := strings.Cut(q, "=")
		c.Query = append(c.Query, ParamOccurrence{Name: name, Value: value})
	}
	return c
}

func jsonBody(text string) *RawBody {
	return &RawBody{MediaType: "application/json", Text: text}
}

// echoSchema is a deterministic stand-in for schema inference.
func echoSchema(example string) (string, error) {
	return "schema:" + example, nil
}

func segments(o Owner) []string {
	var out []string
	for _, r := range o.Resources() {
		out = append(out, r.Segment)
	}
	return out
}
