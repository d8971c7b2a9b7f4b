package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sch1zk/docsexport/internal/build"
	"github.com/sch1zk/docsexport/internal/logfields"
	"github.com/sch1zk/docsexport/internal/metrics"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Project         string `short:"p" help:"Hugo project directory (default: .docsexport next to the config file)" type:"path"`
	SkipRender      bool   `name:"skip-render" help:"Write the Hugo project but do not run hugo. Also enabled by DOCSEXPORT_SKIP_HUGO=1."`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics for this build to a textfile collector file" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if b.MetricsTextfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	svc := build.NewBuildService().WithRunner(g.Runner).WithRecorder(recorder)
	res, runErr := svc.Run(g.context(), build.BuildRequest{
		Composed:   plugin.Compose(cfg),
		BaseDir:    baseDir(root),
		ProjectDir: b.Project,
		Options:    build.BuildOptions{SkipRender: b.SkipRender},
	})

	if prom != nil {
		if err := prom.WriteTextfile(b.MetricsTextfile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(b.MetricsTextfile), logfields.Error(err))
		}
	}
	if runErr != nil {
		if res != nil && res.Export != nil {
			printIssues(g, res.Export)
		}
		return runErr
	}

	printResult(g, res)
	return nil
}

func printResult(g *Global, res *build.BuildResult) {
	_, _ = fmt.Fprintf(g.Out, "Build %s: %s in %s\n", res.ID, res.Status, res.Duration.Round(time.Millisecond))
	for _, s := range res.Stages {
		_, _ = fmt.Fprintf(g.Out, "  %-16s %s\n", s.Name, s.Result)
	}
	if res.Export != nil {
		_, _ = fmt.Fprintf(g.Out, "Static export: %d files in %s\n", res.Export.Files, res.Paths.Dist)
	}
}
