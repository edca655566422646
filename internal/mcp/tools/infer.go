package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/har2raml/internal/capture"
	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/internal/convert"
	"github.com/usestring/har2raml/pkg/raml"
	"github.com/usestring/har2raml/pkg/types"
)

// ToolInfer converts captured traffic to a RAML 0.8 document.
func ToolInfer(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.InferInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input types.InferInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
		if err := validateInferInput(input); err != nil {
			return nil, types.InferOutput{}, err
		}

		entries, err := d.loadEntries(ctx, input)
		if err != nil {
			return nil, types.InferOutput{}, err
		}

		res, err := d.Engine.Convert(ctx, entries, inferOptions(d.Config, input))
		if err != nil {
			return nil, types.InferOutput{}, ErrConvert(err)
		}

		output := types.InferOutput{
			Document: res.Document,
			BaseURI:  res.API.BaseURI,
			Stats:    types.Stats(res.Stats),
			Warnings: res.Warnings,
		}
		if input.IncludeFiles == nil || *input.IncludeFiles {
			output.Files = fileOutputs(res.API, res.Files)
		}
		return nil, output, nil
	}
}

func validateInferInput(input types.InferInput) error {
	sources := 0
	if len(input.Paths) > 0 {
		sources++
	}
	if strings.TrimSpace(input.HAR) != "" {
		sources++
	}
	if input.SessionID != "" {
		sources++
	}
	switch {
	case sources == 0:
		return ErrInvalidInput("one of paths, har or session_id is required")
	case sources > 1:
		return ErrInvalidInput("paths, har and session_id are mutually exclusive")
	case input.MinSiblings < 0 || input.ExampleMaxItems < 0 || input.ExampleMaxString < 0:
		return ErrInvalidInput("min_siblings, example_max_items and example_max_string must not be negative")
	}
	return nil
}

func (d *Deps) loadEntries(ctx context.Context, input types.InferInput) ([]capture.Entry, error) {
	switch {
	case len(input.Paths) > 0:
		entries, err := capture.LoadPaths(ctx, input.Paths, d.Config.LoadWorkers)
		if err != nil {
			return nil, ErrLoad(err)
		}
		return entries, nil

	case input.SessionID != "":
		if d.Client == nil {
			return nil, ErrInvalidInput("powhttp is not configured")
		}
		entries, err := capture.FromSession(ctx, d.Client, input.SessionID, nil)
		if err != nil {
			return nil, ErrLoad(err)
		}
		return entries, nil
	}

	har, err := capture.ReadHAR(strings.NewReader(input.HAR))
	if err != nil {
		return nil, &CodedError{Code: ErrCodeInvalidInput, Message: "har is not a valid HAR document", Cause: err}
	}
	return har.Log.Entries, nil
}

// inferOptions starts from the configured defaults and applies the fields
// the caller set.
func inferOptions(cfg *config.Config, input types.InferInput) convert.Options {
	opts := convert.OptionsFromConfig(cfg)
	if input.Title != "" {
		opts.Title = input.Title
	}
	if input.BaseURI != "" {
		opts.BaseURI = input.BaseURI
	}
	if input.Indent != "" {
		opts.Indent = config.ParseIndent(input.Indent)
	}
	opts.Select = input.Select
	if input.MergeIDs != nil {
		opts.MergeIDs = *input.MergeIDs
	}
	if input.MinSiblings > 0 {
		opts.MergeMinSiblings = input.MinSiblings
	}
	if input.GreedyRefine != nil {
		opts.GreedyRefine = *input.GreedyRefine
	}
	if input.VerifySchemas != nil {
		opts.VerifySchemas = *input.VerifySchemas
	}
	if input.ExampleMaxItems > 0 {
		opts.Compact.MaxArrayItems = input.ExampleMaxItems
	}
	if input.ExampleMaxString > 0 {
		opts.Compact.MaxStringLen = input.ExampleMaxString
	}
	return opts
}

func fileOutputs(api *raml.API, files []*raml.ExternalFile) []types.FileOutput {
	out := make([]types.FileOutput, 0, len(files))
	for _, f := range files {
		kind := raml.KindSchema
		if ex, ok := api.Examples.Get(f.Name); ok && ex == f {
			kind = raml.KindExample
		}
		out = append(out, types.FileOutput{
			Name:      f.Name,
			Path:      f.Path,
			Kind:      string(kind),
			SourceURI: f.SourceURI,
			Content:   f.Content,
		})
	}
	return out
}
