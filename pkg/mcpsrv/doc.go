// Package mcpsrv provides an embeddable har2raml MCP server.
//
// The server exposes the har2raml_infer tool (and har2raml_sessions_list
// when a powhttp client is configured) plus the document_api prompt. Callers
// can add their own tools and prompts with functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server.Run(ctx)
//
// # Extension
//
// Tools that need the conversion engine receive the server's Deps:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "count_calls", Description: "Count calls in a HAR file"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	                res, err := d.Engine.ConvertPaths(ctx, in.Paths, d.Config.LoadWorkers, convert.Options{})
//	                if err != nil {
//	                    return nil, CountOutput{}, err
//	                }
//	                return nil, CountOutput{Calls: res.Stats.Calls}, nil
//	            }
//	        }),
//	)
package mcpsrv
