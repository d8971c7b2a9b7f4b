package commands

import (
	"fmt"

	"github.com/sch1zk/docsexport/internal/build"
	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Project string `short:"p" help:"Hugo project directory (default: .docsexport next to the config file)" type:"path"`
}

func (gc *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	res, err := generate(g, root, cfg, gc.Project)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Generated Hugo project in %s\n", res.Paths.Project)
	return nil
}

// generate writes the Hugo project for cfg without rendering it.
func generate(g *Global, root *CLI, cfg *config.Config, project string) (*build.BuildResult, error) {
	svc := build.NewBuildService().WithRunner(g.Runner)
	return svc.Run(g.context(), build.BuildRequest{
		Composed:   plugin.Compose(cfg),
		BaseDir:    baseDir(root),
		ProjectDir: project,
		Options:    build.BuildOptions{SkipRender: true},
	})
}
