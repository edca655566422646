// Package jsonschema infers JSON Schema documents from example payloads and
// checks examples against them.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/invopop/jsonschema"
)

// Draft04 is the $schema URI stamped on generated documents. RAML 0.8
// consumers expect draft-04 schemas.
const Draft04 = "http://json-schema.org/draft-04/schema#"

// InferOptions controls schema inference behavior.
type InferOptions struct {
	// Required marks every non-null property of an object as required.
	// Default: true
	Required bool
	// AdditionalProperties sets additionalProperties on object schemas.
	// Default: nil (not set)
	AdditionalProperties *bool
}

// DefaultInferOptions returns the default inference options.
func DefaultInferOptions() *InferOptions {
	return &InferOptions{Required: true}
}

// Infer generates a schema for a single JSON example.
func Infer(example []byte, opts *InferOptions) (*jsonschema.Schema, error) {
	if opts == nil {
		opts = DefaultInferOptions()
	}

	var v any
	if err := json.Unmarshal(example, &v); err != nil {
		return nil, fmt.Errorf("parsing example: %w", err)
	}

	s := inferValue(v, opts)
	s.Version = Draft04
	return s, nil
}

// Document infers a schema for example and returns it as indented JSON text.
// It has the shape expected by the raml package's schema generator.
func Document(example string) (string, error) {
	s, err := Infer([]byte(example), nil)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	return string(out), nil
}

func inferValue(v any, opts *InferOptions) *jsonschema.Schema {
	switch val := v.(type) {
	case nil:
		return &jsonschema.Schema{Type: "null"}
	case bool:
		return &jsonschema.Schema{Type: "boolean"}
	case float64:
		// encoding/json decodes every number as float64
		if math.Trunc(val) == val && !math.IsInf(val, 0) {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{Type: "number"}
	case string:
		return &jsonschema.Schema{Type: "string"}
	case []any:
		s := &jsonschema.Schema{Type: "array"}
		if len(val) > 0 {
			items := make([]*jsonschema.Schema, 0, len(val))
			for _, item := range val {
				items = append(items, inferValue(item, opts))
			}
			s.Items = merge(items)
		}
		return s
	case map[string]any:
		return inferObject(val, opts)
	default:
		return &jsonschema.Schema{}
	}
}

func inferObject(obj map[string]any, opts *InferOptions) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	if opts.AdditionalProperties != nil {
		if *opts.AdditionalProperties {
			s.AdditionalProperties = jsonschema.TrueSchema
		} else {
			s.AdditionalProperties = jsonschema.FalseSchema
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var required []string
	for _, k := range keys {
		s.Properties.Set(k, inferValue(obj[k], opts))
		if opts.Required && obj[k] != nil {
			required = append(required, k)
		}
	}
	s.Required = required
	return s
}

// merge combines the schemas of array items. Items of one type collapse into
// a single schema (objects and arrays merge member-wise); mixed types become anyOf.
func merge(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	byType := make(map[string][]*jsonschema.Schema)
	var order []string
	for _, s := range schemas {
		if _, seen := byType[s.Type]; !seen {
			order = append(order, s.Type)
		}
		byType[s.Type] = append(byType[s.Type], s)
	}
	sort.Strings(order)

	// integer is a subset of number
	if ints, ok := byType["integer"]; ok && byType["number"] != nil {
		byType["number"] = append(byType["number"], ints...)
		delete(byType, "integer")
		order = removeString(order, "integer")
	}

	merged := make([]*jsonschema.Schema, 0, len(order))
	for _, t := range order {
		group := byType[t]
		switch t {
		case "object":
			merged = append(merged, mergeObjects(group))
		case "array":
			merged = append(merged, mergeArrays(group))
		default:
			merged = append(merged, group[0])
		}
	}
	if len(merged) == 1 {
		return merged[0]
	}
	return &jsonschema.Schema{AnyOf: merged}
}

// mergeObjects unions properties; only properties required by every object stay required.
func mergeObjects(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	props := make(map[string][]*jsonschema.Schema)
	requiredCount := make(map[string]int)
	for _, s := range schemas {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			props[pair.Key] = append(props[pair.Key], pair.Value)
		}
		for _, r := range s.Required {
			requiredCount[r]++
		}
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := &jsonschema.Schema{
		Type:                 "object",
		Properties:           jsonschema.NewProperties(),
		AdditionalProperties: schemas[0].AdditionalProperties,
	}
	for _, k := range keys {
		out.Properties.Set(k, merge(props[k]))
		if requiredCount[k] == len(schemas) {
			out.Required = append(out.Required, k)
		}
	}
	return out
}

func mergeArrays(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}
	var items []*jsonschema.Schema
	for _, s := range schemas {
		if s.Items != nil {
			items = append(items, s.Items)
		}
	}
	out := &jsonschema.Schema{Type: "array"}
	if len(items) > 0 {
		out.Items = merge(items)
	}
	return out
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
