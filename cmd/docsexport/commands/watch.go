package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/hugo"
	"github.com/sch1zk/docsexport/internal/logfields"
	"github.com/sch1zk/docsexport/internal/watch"
)

// WatchCmd implements the 'watch' command. A hugo server pointed at the
// project picks up each regenerated hugo.yaml; --serve starts one.
type WatchCmd struct {
	Project string `short:"p" help:"Hugo project directory (default: .docsexport next to the config file)" type:"path"`
	Serve   bool   `help:"Also run hugo server on the generated project"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	res, err := generate(g, root, cfg, w.Project)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Generated Hugo project in %s\n", res.Paths.Project)

	ctx := g.context()
	watcher, err := watch.New(root.Config, cfg, func(_ context.Context, cfg *config.Config) {
		res, err := generate(g, root, cfg, w.Project)
		if err != nil {
			slog.Error("Regeneration failed", logfields.Error(err))
			return
		}
		_, _ = fmt.Fprintf(g.Out, "Regenerated Hugo project in %s\n", res.Paths.Project)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = watcher.Stop()
	}()

	defer func() {
		slog.Info("Stopped watching", logfields.OutputMode(string(watcher.Current().Build.Output)))
	}()

	serveErr := make(chan error, 1)
	if w.Serve {
		project := res.Paths.Project
		go func() {
			serveErr <- g.Runner.Run(ctx, hugo.ServeArgs(project)...)
		}()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-serveErr:
		if err == nil || errors.Is(err, context.Canceled) {
			<-ctx.Done()
			return ctx.Err()
		}
		return err
	}
}
