package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sch1zk/docsexport/internal/build"
	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/hugo"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// bundleRunner writes files into the publishDir named by the generated hugo.yaml.
type bundleRunner struct {
	files map[string]string
	calls int
}

func (r *bundleRunner) Run(_ context.Context, args ...string) error {
	r.calls++
	var source string
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "--source" {
			source = args[i+1]
		}
	}
	data, err := os.ReadFile(filepath.Join(source, hugo.ConfigFile))
	if err != nil {
		return err
	}
	var cfg struct {
		PublishDir string `yaml:"publishDir"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	for name, content := range r.files {
		p := filepath.Join(cfg.PublishDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			return err
		}
	}
	return nil
}

type env struct {
	dir    string
	config string
	out    *bytes.Buffer
	runner *bundleRunner
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{
		dir:    dir,
		config: filepath.Join(dir, config.DefaultConfigFile),
		out:    &bytes.Buffer{},
		runner: &bundleRunner{files: map[string]string{
			"index.html":      `<img src="logo.png">`,
			"logo.png":        "png",
			"css/main.css":    "body{}",
			"index.xml":       "<rss/>",
			"docs/index.html": `<img src="/logo.png">`,
		}},
	}
}

func (e *env) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.config, []byte(content), 0o600))
}

func (e *env) run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docsexport"), kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse(append([]string{"-c", e.config}, args...))
	if err != nil {
		return err
	}
	g := &Global{Ctx: context.Background(), Out: e.out, Err: io.Discard, Runner: e.runner}
	return kctx.Run(g, &cli)
}

func exitCode(err error) int {
	return errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
}

func TestInitThenValidate(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.run(t, "init"))
	require.FileExists(t, e.config)

	e.out.Reset()
	require.NoError(t, e.run(t, "validate"))
	require.Contains(t, e.out.String(), "output=export images.unoptimized=true search=false dist_dir=out")
	require.Contains(t, e.out.String(), "Plugin: hextra@")
	require.Contains(t, e.out.String(), "capabilities=math,mermaid\n")
}

func TestInitRefusesOverwrite(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.run(t, "init"))

	err := e.run(t, "init")
	require.Error(t, err)
	require.Equal(t, 4, exitCode(err))

	require.NoError(t, e.run(t, "init", "--force"))
}

func TestInitOutputDir(t *testing.T) {
	e := newEnv(t)
	target := filepath.Join(e.dir, "site")
	require.NoError(t, e.run(t, "init", "--output", target))
	require.FileExists(t, filepath.Join(target, config.DefaultConfigFile))
}

func TestValidateExitCodes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code int
	}{
		{"export rejects optimized images", "build:\n  output: export\n  images:\n    unoptimized: false\n", 2},
		{"unknown output", "build:\n  output: spa\n", 2},
		{"unknown field", "build:\n  outputs: export\n", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.writeConfig(t, tt.yaml)
			err := e.run(t, "validate")
			require.Error(t, err)
			require.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestValidateAcceptsUnoptimizedOutsideExport(t *testing.T) {
	for _, mode := range []string{"server", "hybrid"} {
		e := newEnv(t)
		e.writeConfig(t, "build:\n  output: "+mode+"\n  images:\n    unoptimized: true\n")
		require.NoError(t, e.run(t, "validate"), mode)
	}
}

func TestMissingConfig(t *testing.T) {
	e := newEnv(t)
	err := e.run(t, "validate")
	require.Error(t, err)
	require.Equal(t, 7, exitCode(err))
}

func TestPrintYAML(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	require.NoError(t, e.run(t, "print"))

	var view plugin.View
	require.NoError(t, yaml.Unmarshal(e.out.Bytes(), &view))
	require.Equal(t, config.OutputExport, view.Output)
	require.True(t, view.Images.Unoptimized)
	require.False(t, view.Docs.Search)
	require.Equal(t, "out", view.DistDir)
}

func TestPrintJSON(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "docs:\n  search: false\n")
	require.NoError(t, e.run(t, "print", "--format", "json"))

	var view map[string]any
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &view))
	require.Equal(t, "export", view["output"])
	require.Equal(t, map[string]any{"unoptimized": true}, view["images"])
	require.Equal(t, map[string]any{"search": false}, view["docs"])
}

func TestPrintRejectsUnknownFormat(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	require.Error(t, e.run(t, "print", "--format", "toml"))
}

func TestGenerateDoesNotRender(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	require.NoError(t, e.run(t, "generate"))

	require.Zero(t, e.runner.calls)
	require.FileExists(t, filepath.Join(e.dir, build.DefaultProjectDir, hugo.ConfigFile))
	require.Contains(t, e.out.String(), "Generated Hugo project")
}

func TestBuildWritesStaticExportAndMetrics(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	textfile := filepath.Join(e.dir, "docsexport.prom")

	require.NoError(t, e.run(t, "build", "--metrics-textfile", textfile))
	require.Equal(t, 1, e.runner.calls)
	require.FileExists(t, filepath.Join(e.dir, "out", "index.html"))
	require.Contains(t, e.out.String(), ": success in ")
	require.Contains(t, e.out.String(), "Static export: 5 files")

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	require.Contains(t, string(data), `docsexport_build_outcomes_total{outcome="success"} 1`)
}

func TestBuildFailsOnSearchIndex(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	e.runner.files["_pagefind/index.json"] = "{}"

	err := e.run(t, "build")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryBuild))
	require.Equal(t, 11, exitCode(err))
	require.Contains(t, e.out.String(), "search_index\t_pagefind/index.json")
}

func TestBuildSkipRender(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	require.NoError(t, e.run(t, "build", "--skip-render"))
	require.Zero(t, e.runner.calls)
	require.NoDirExists(t, filepath.Join(e.dir, "out"))
}

func TestVerify(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	require.NoError(t, e.run(t, "build"))

	e.out.Reset()
	require.NoError(t, e.run(t, "verify"))
	require.Contains(t, e.out.String(), "OK: 5 files")

	bad := filepath.Join(e.dir, "bad")
	require.NoError(t, os.MkdirAll(bad, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(bad, "index.php"), []byte("<?php"), 0o600))

	e.out.Reset()
	err := e.run(t, "verify", bad)
	require.Error(t, err)
	require.Contains(t, e.out.String(), "non_static_file\tindex.php")
}

func TestVerifyMissingDir(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	err := e.run(t, "verify")
	require.Error(t, err)
	require.Equal(t, 3, exitCode(err))
}

func TestWatchStopsOnCancel(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docsexport"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"-c", e.config, "watch"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := &Global{Ctx: ctx, Out: e.out, Err: io.Discard, Runner: e.runner}
	err = kctx.Run(g, &cli)
	require.ErrorIs(t, err, context.Canceled)
}

// serveRunner records the hugo server invocation and blocks until cancelled.
type serveRunner struct {
	args    chan []string
	failure error
}

func (r *serveRunner) Run(ctx context.Context, args ...string) error {
	r.args <- args
	if r.failure != nil {
		return r.failure
	}
	<-ctx.Done()
	return ctx.Err()
}

func parseWatch(t *testing.T, e *env, args ...string) (*kong.Context, *CLI) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docsexport"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse(append([]string{"-c", e.config, "watch"}, args...))
	require.NoError(t, err)
	return kctx, &cli
}

func TestWatchServeRunsHugoServer(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	kctx, cli := parseWatch(t, e, "--serve")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := &serveRunner{args: make(chan []string, 1)}
	g := &Global{Ctx: ctx, Out: e.out, Err: io.Discard, Runner: runner}

	done := make(chan error, 1)
	go func() { done <- kctx.Run(g, cli) }()

	select {
	case args := <-runner.args:
		require.Equal(t, hugo.ServeArgs(filepath.Join(e.dir, build.DefaultProjectDir)), args)
	case <-time.After(5 * time.Second):
		t.Fatal("hugo server was not started")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchServeFailureEndsWatch(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "")
	kctx, cli := parseWatch(t, e, "--serve")

	failure := errors.HugoError("hugo server exited").Build()
	runner := &serveRunner{args: make(chan []string, 1), failure: failure}
	g := &Global{Ctx: context.Background(), Out: e.out, Err: io.Discard, Runner: runner}

	err := kctx.Run(g, cli)
	require.ErrorIs(t, err, failure)
}
