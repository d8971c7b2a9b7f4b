package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/sch1zk/docsexport/cmd/docsexport/commands"
	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("docsexport"),
		kong.Description("Compose a static documentation export configuration and build it with Hugo."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := commands.NewGlobal(ctx)
	err := parser.Run(g, &cli)
	if stderrors.Is(err, context.Canceled) {
		slog.Info("Interrupted")
		return
	}
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
