package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/hugo"
	"github.com/sch1zk/docsexport/internal/observability"
)

// Global carries process-wide dependencies into commands.
type Global struct {
	Ctx    context.Context
	Out    io.Writer // user-facing output
	Err    io.Writer // log output
	Runner hugo.Runner
}

// NewGlobal returns the production wiring: stdout, stderr and the hugo binary.
func NewGlobal(ctx context.Context) *Global {
	return &Global{Ctx: ctx, Out: os.Stdout, Err: os.Stderr, Runner: hugo.NewExecRunner()}
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsexport.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write a default configuration file"`
	Validate ValidateCmd `cmd:"" help:"Load and validate the configuration"`
	Print    PrintCmd    `cmd:"" help:"Print the composed build configuration"`
	Generate GenerateCmd `cmd:"" help:"Generate the Hugo project without rendering"`
	Build    BuildCmd    `cmd:"" help:"Generate, render and verify the documentation export"`
	Verify   VerifyCmd   `cmd:"" help:"Check that an output directory is a static bundle"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the Hugo project whenever the configuration changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(os.Stderr, string(config.LogFormatText), level))
	return nil
}

// loadConfig loads root.Config and applies its logging section. --verbose
// keeps debug level regardless of the configured level.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	level := observability.ParseLevel(string(cfg.Logging.Level))
	if root.Verbose {
		level = slog.LevelDebug
	}
	w := g.Err
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(observability.NewLogger(w, string(cfg.Logging.Format), level))
	return cfg, nil
}

// baseDir is the directory relative paths in the configuration resolve against.
func baseDir(root *CLI) string {
	return filepath.Dir(root.Config)
}
