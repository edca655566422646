// Package cli provides the har2raml command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usestring/har2raml/internal/config"
	"github.com/usestring/har2raml/internal/convert"
	"github.com/usestring/har2raml/internal/logging"
	"github.com/usestring/har2raml/internal/output"
	"github.com/usestring/har2raml/pkg/client"
	"github.com/usestring/har2raml/pkg/jsoncompact"
	"github.com/usestring/har2raml/pkg/mcpsrv"
)

// StdoutTarget writes the document to standard output.
const StdoutTarget = "-"

// CLI holds the command-line interface configuration.
type CLI struct {
	cfg     *config.Config
	rootCmd *cobra.Command
	cleanup func() error

	logLevel string

	// convert flags
	outputPath       string
	title            string
	baseURI          string
	indent           string
	selectExpr       string
	mergeIDs         bool
	minSiblings      int
	greedy           bool
	verifySchemas    bool
	exampleMaxItems  int
	exampleMaxString int
	workers          int
	sessionID        string
	selectedOnly     bool
	bookmarkedOnly   bool
}

// New creates a new CLI instance. Flag defaults come from cfg.
func New(cfg *config.Config) *CLI {
	cli := &CLI{cfg: cfg}

	cli.rootCmd = &cobra.Command{
		Use:   "har2raml",
		Short: "Infer RAML 0.8 API descriptions from captured HTTP traffic",
		Long: "har2raml reads HAR captures (or powhttp sessions), builds a resource tree from the observed calls " +
			"and writes a RAML 0.8 document with query parameters, bodies, JSON examples and inferred JSON schemas.",
		SilenceUsage:       true,
		PersistentPreRunE:  cli.setupLogging,
		PersistentPostRunE: cli.closeLogging,
	}
	cli.rootCmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	cli.rootCmd.AddCommand(cli.convertCommand(), cli.serveCommand(), cli.sessionsCommand())
	return cli
}

// Execute runs the CLI.
func (c *CLI) Execute(ctx context.Context) error {
	return c.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides the command-line arguments.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects standard output and error of the commands.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

func (c *CLI) setupLogging(_ *cobra.Command, _ []string) error {
	lc := c.cfg.Logging()
	lc.Level = c.logLevel
	cleanup, err := logging.Setup(lc)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	c.cleanup = cleanup
	return nil
}

func (c *CLI) closeLogging(_ *cobra.Command, _ []string) error {
	if c.cleanup == nil {
		return nil
	}
	return c.cleanup()
}

func (c *CLI) convertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [HAR file or directory...]",
		Short: "Convert HAR captures or a powhttp session to RAML",
		Long: "Convert reads every HAR file given (directories contribute *.har and *har.json files, sorted by name) " +
			"or the entries of a powhttp session, and writes the RAML document. With --output - the document goes to " +
			"standard output and external example and schema files are not written.",
		Example: "  har2raml convert captures/ --base-uri api.example.com/v1 --merge-ids -o docs/\n" +
			"  har2raml convert --session active --select '.response.status < 400' -o api.raml",
		RunE: c.runConvert,
	}

	f := cmd.Flags()
	f.StringVarP(&c.outputPath, "output", "o", StdoutTarget, "Output .raml file or directory (\"-\" for stdout)")
	f.StringVar(&c.title, "title", c.cfg.Title, "API title")
	f.StringVar(&c.baseURI, "base-uri", c.cfg.BaseURI, "Keep only calls whose URL contains this substring")
	f.StringVar(&c.indent, "indent", "", "Indent unit: number of spaces, \"tab\", or literal (default from HAR2RAML_INDENT)")
	f.StringVar(&c.selectExpr, "select", "", "jq predicate over HAR entries, e.g. '.response.status < 400'")
	f.BoolVar(&c.mergeIDs, "merge-ids", c.cfg.MergeIDs, "Fold ID-like sibling resources into /{id}, /{uuid} or /{hex}")
	f.IntVar(&c.minSiblings, "min-siblings", c.cfg.MergeMinSiblings, "Minimum ID-like siblings to fold")
	f.BoolVar(&c.greedy, "greedy", c.cfg.GreedyRefine, "Absorb every single-child link into the base URI, even resources with methods")
	f.BoolVar(&c.verifySchemas, "verify-schemas", c.cfg.VerifySchemas, "Validate each generated schema against its example")
	f.IntVar(&c.exampleMaxItems, "example-max-items", c.cfg.ExampleMaxArrayItems, "Trim example arrays to N items (0 keeps all)")
	f.IntVar(&c.exampleMaxString, "example-max-string", c.cfg.ExampleMaxStringLen, "Truncate example strings to N characters (0 keeps all)")
	f.IntVar(&c.workers, "workers", c.cfg.LoadWorkers, "HAR files parsed concurrently")
	f.StringVar(&c.sessionID, "session", "", "Convert a powhttp session instead of HAR files (\"active\" for the active one)")
	f.BoolVar(&c.selectedOnly, "selected", false, "With --session, only entries selected in powhttp")
	f.BoolVar(&c.bookmarkedOnly, "bookmarked", false, "With --session, only bookmarked entries")

	return cmd
}

func (c *CLI) convertOptions() convert.Options {
	indent := c.cfg.Indent
	if c.indent != "" {
		indent = config.ParseIndent(c.indent)
	}
	return convert.Options{
		Title:            c.title,
		BaseURI:          c.baseURI,
		Indent:           indent,
		Select:           c.selectExpr,
		GreedyRefine:     c.greedy,
		MergeIDs:         c.mergeIDs,
		MergeMinSiblings: c.minSiblings,
		VerifySchemas:    c.verifySchemas,
		Compact: &jsoncompact.Options{
			MaxArrayItems: c.exampleMaxItems,
			MaxStringLen:  c.exampleMaxString,
		},
	}
}

func (c *CLI) runConvert(cmd *cobra.Command, args []string) error {
	switch {
	case c.sessionID == "" && len(args) == 0:
		return errors.New("give at least one HAR file or directory, or --session")
	case c.sessionID != "" && len(args) > 0:
		return errors.New("--session cannot be combined with HAR paths")
	}

	engine, err := convert.New(c.cfg.SchemaCacheMaxItems)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	opts := c.convertOptions()
	var res *convert.Result
	if c.sessionID != "" {
		listOpts := &client.ListEntriesOptions{Selected: c.selectedOnly, Bookmarked: c.bookmarkedOnly}
		res, err = engine.ConvertSession(ctx, c.newClient(), c.sessionID, listOpts, opts)
	} else {
		res, err = engine.ConvertPaths(ctx, args, c.workers, opts)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}

	if c.outputPath == StdoutTarget {
		if len(res.Files) > 0 {
			slog.Warn("external files not written to stdout; use --output to write them",
				slog.Int("files", len(res.Files)),
			)
		}
		_, err := io.WriteString(cmd.OutOrStdout(), res.Document)
		return err
	}

	docPath, err := output.Write(c.outputPath, res.Document, res.Files)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d resources, %d methods, %d files)\n",
		docPath, res.Stats.Resources, res.Stats.Methods, len(res.Files))
	return nil
}

func (c *CLI) serveCommand() *cobra.Command {
	var noPowHTTP bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []mcpsrv.Option{mcpsrv.WithConfig(c.cfg)}
			if noPowHTTP {
				opts = append(opts, mcpsrv.WithoutPowHTTP())
			}
			server, err := mcpsrv.NewServer(opts...)
			if err != nil {
				return fmt.Errorf("creating MCP server: %w", err)
			}

			slog.Info("starting har2raml MCP server on stdio")
			if err := server.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("server error: %w", err)
			}
			slog.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&noPowHTTP, "no-powhttp", false, "Do not expose powhttp sessions")
	return cmd
}

func (c *CLI) sessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions [session ID]",
		Short: "List powhttp sessions, or show one (\"active\" for the active session)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pc := c.newClient()
			var sessions []client.Session
			if len(args) == 1 {
				s, err := pc.GetSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				sessions = append(sessions, *s)
			} else {
				var err error
				if sessions, err = pc.ListSessions(cmd.Context()); err != nil {
					return err
				}
			}
			for _, s := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d entries\n", s.ID, s.Name, len(s.EntryIDs))
			}
			return nil
		},
	}
}

func (c *CLI) newClient() *client.Client {
	return client.New(
		client.WithBaseURL(c.cfg.PowHTTPBaseURL),
		client.WithTimeout(c.cfg.HTTPClientTimeout),
	)
}
