package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/mcncl/wsnode/internal/builder"
	"github.com/mcncl/wsnode/internal/config"
	"github.com/mcncl/wsnode/internal/errors"
	"github.com/mcncl/wsnode/internal/formatter"
	"github.com/mcncl/wsnode/internal/locale"
	"github.com/mcncl/wsnode/internal/models"
	"github.com/mcncl/wsnode/internal/parser"
	"github.com/mcncl/wsnode/internal/render"
	"github.com/mcncl/wsnode/internal/translation"
)

// CLI defines the command-line interface
var CLI struct {
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
	Config  string           `help:"Path to a config file. Defaults to the nearest .wsnode.yml." short:"c" type:"path"`
	EnvFile string           `help:"Dotenv file with WSNODE_* settings, loaded when present." name:"env-file" default:".env"`

	Render   RenderCmd   `cmd:"" default:"withargs" help:"Render a resource document as webservice JSON."`
	Messages MessagesCmd `cmd:"" help:"Print a translation catalogue as JSON."`
}

// RenderCmd renders the records of a resource document
type RenderCmd struct {
	Input     string `help:"Path to input document (.json, .yaml). If not specified, reads from stdin." short:"i" type:"path"`
	Format    string `help:"Format of the document read from stdin." enum:"json,yaml" default:"json"`
	Output    string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	ID        string `help:"Render only the record with this primary key." name:"id"`
	Schema    string `help:"Render the resource schema instead of records (synopsis or blank)."`
	Languages string `help:"Comma separated language ids expanded for translated fields." short:"l"`
	BaseURL   string `help:"Base URL prefixed to xlink:href links." name:"base-url"`
	Display   string `help:"Record display (full or minimal)."`
	Pretty    bool   `help:"Indent the JSON output." short:"p"`
}

// MessagesCmd prints the messages of one translation domain
type MessagesCmd struct {
	Domain      string   `arg:"" help:"Translation domain, e.g. Admin.Actions."`
	Defaults    []string `help:"Message files with the default wordings."`
	Files       []string `name:"file" help:"Message files with project translations."`
	User        []string `help:"Message files with user translations."`
	Locale      string   `help:"Catalogue locale. Files for other locales are rejected."`
	Search      []string `help:"Keep messages containing any of these words." short:"s"`
	MissingOnly bool     `help:"Keep untranslated messages only." name:"missing-only"`
	Stats       bool     `help:"Print message counts instead of messages."`
	Output      string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Pretty      bool     `help:"Indent the JSON output." short:"p"`
}

// Context holds the runtime context
type Context struct {
	Debug      bool
	ConfigPath string
	EnvFile    string
	Logger     *zap.Logger
	// Level is the logger's level; dev.debug in the config file lowers it to debug.
	Level      *zap.AtomicLevel
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("wsnode"),
		kong.Description("Render shop webservice resources as JSON"),
		kong.UsageOnError(),
		kong.Vars{"version": "wsnode version " + Version},
	)

	kctx, err := app.Parse(os.Args[1:])
	app.FatalIfErrorf(err)

	logger, level, err := newLogger(CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	err = kctx.Run(&Context{
		Debug:      CLI.Debug,
		ConfigPath: CLI.Config,
		EnvFile:    CLI.EnvFile,
		Logger:     logger,
		Level:      &level,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: wsnode --help\n")
		os.Exit(1)
	}
}

// newLogger builds the production logger, at debug level when requested
func newLogger(debug bool) (*zap.Logger, zap.AtomicLevel, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	return logger, cfg.Level, err
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// loadConfig resolves settings from the config file, environment and flags
func (c *Context) loadConfig(cli config.Overrides) (*config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		path = config.FindConfigFile()
	}
	cli.Debug = cli.Debug || c.Debug

	cfg, err := config.LoadConfigWithCLI(path, c.EnvFile, cli)
	if err != nil {
		return nil, errors.NewInputError("invalid configuration", err)
	}
	if cfg.Dev.Debug && c.Level != nil {
		c.Level.SetLevel(zap.DebugLevel)
	}
	c.logger().Debug("configuration loaded",
		zap.String("path", path),
		zap.String("base_url", cfg.BaseURL),
		zap.Strings("languages", cfg.Languages),
		zap.String("schema", cfg.Schema),
		zap.String("display", cfg.Display))
	return cfg, nil
}

// Run renders a document
func (r *RenderCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig(config.Overrides{
		BaseURL:   r.BaseURL,
		Languages: r.Languages,
		Schema:    r.Schema,
		Display:   r.Display,
		Pretty:    r.Pretty,
	})
	if err != nil {
		return err
	}
	return run(ctx, cfg, r)
}

// run executes the render pipeline
func run(ctx *Context, cfg *config.Config, cmd *RenderCmd) error {
	// 1. Parse the document
	doc, err := parseInput(ctx, cmd)
	if err != nil {
		// Error is already wrapped by the parser
		return err
	}

	// 2. Build the node tree
	root, err := builder.NewBuilderWithConfig(cfg, ctx.logger()).Build(doc, cmd.ID)
	if err != nil {
		return err
	}

	// 3. Render it
	renderer := render.NewJSON()
	renderer.EscapeSlashes = cfg.Output.EscapeSlashes
	body, err := renderer.RenderNode(root)
	if err != nil {
		return err
	}

	// 4. Lay out the body
	body, err = newFormatter(cfg.Output.Pretty, cfg.Output.Indent).Format(body)
	if err != nil {
		return errors.NewFormatError("failed to format rendered JSON", err)
	}

	// 5. Output the result
	return writeOutput(ctx, cmd.Output, body)
}

func newFormatter(pretty bool, indent string) *formatter.Formatter {
	if pretty {
		return formatter.NewPrettyFormatter(indent)
	}
	return formatter.NewFormatter()
}

// parseInput reads the document from file or stdin
func parseInput(ctx *Context, cmd *RenderCmd) (models.Document, error) {
	if cmd.Input != "" {
		return parser.ParseFile(cmd.Input)
	}

	if ctx.Stdin == nil {
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// A terminal on stdin means nothing was piped in
	if f, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return models.Document{}, errors.NewInputError("failed to access stdin", err)
		}
		if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
			return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	format := parser.Format(cmd.Format)
	if format == "" {
		format = parser.FormatJSON
	}
	return parser.ParseString(string(data), format)
}

// writeOutput writes body to file or stdout
func writeOutput(ctx *Context, path, body string) error {
	if path != "" {
		err := os.WriteFile(path, []byte(body+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		if ctx.Stderr != nil {
			fmt.Fprintf(ctx.Stderr, "Rendered JSON written to %s\n", path)
		}
		return nil
	}

	_, err := fmt.Fprintln(ctx.Stdout, strings.TrimSpace(body))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// Run loads the message files and prints the resulting catalogue
func (m *MessagesCmd) Run(ctx *Context) error {
	tag := language.Und
	if m.Locale != "" {
		tags, err := locale.Parse([]string{m.Locale})
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			tag = tags[0]
		}
	}

	cat := translation.NewCatalogue(tag)

	loader := translation.NewLoader(ctx.logger())
	sources := []struct {
		paths  []string
		source translation.Source
	}{
		{m.Defaults, translation.SourceDefault},
		{m.Files, translation.SourceFile},
		{m.User, translation.SourceUser},
	}
	for _, s := range sources {
		for _, path := range s.paths {
			if err := loader.LoadFile(cat, m.Domain, path, s.source); err != nil {
				return err
			}
		}
	}

	view := cat.Filter(m.Search, m.MissingOnly)

	var payload any = view.ToArray()
	if m.Stats {
		payload = view.Stats()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.NewFormatError("failed to encode catalogue", err)
	}

	body, err := newFormatter(m.Pretty, formatter.DefaultIndent).Format(string(data))
	if err != nil {
		return errors.NewFormatError("failed to format catalogue", err)
	}
	return writeOutput(ctx, m.Output, body)
}
