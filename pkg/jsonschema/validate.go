package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders validation messages in English.
var printer = message.NewPrinter(language.English)

// CheckError lists the ways an example fails its schema.
type CheckError struct {
	Problems []string
}

func (e *CheckError) Error() string {
	return "example does not match schema: " + strings.Join(e.Problems, "; ")
}

// Check compiles schemaDoc and validates example against it.
// A compile failure or an unparseable example is returned as a plain error;
// validation failures are returned as *CheckError.
func Check(schemaDoc, example string) error {
	var schemaValue any
	if err := json.Unmarshal([]byte(schemaDoc), &schemaValue); err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	var value any
	if err := json.Unmarshal([]byte(example), &value); err != nil {
		return fmt.Errorf("parsing example: %w", err)
	}

	err = compiled.Validate(value)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return &CheckError{Problems: leafProblems(verr)}
}

// leafProblems flattens a validation error tree into "path: message" lines.
func leafProblems(root *jsonschema.ValidationError) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if e.ErrorKind != nil && len(e.Causes) == 0 {
			msg := e.ErrorKind.LocalizedString(printer)
			if len(e.InstanceLocation) > 0 {
				msg = "/" + strings.Join(e.InstanceLocation, "/") + ": " + msg
			}
			if !seen[msg] {
				seen[msg] = true
				out = append(out, msg)
			}
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(root)
	sort.Strings(out)
	return out
}
