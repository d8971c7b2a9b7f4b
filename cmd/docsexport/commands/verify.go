package commands

import (
	"fmt"

	"github.com/sch1zk/docsexport/internal/build"
	"github.com/sch1zk/docsexport/internal/export"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dir string `arg:"" optional:"" help:"Directory to check (default: the configured dist_dir)" type:"path"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	c := plugin.Compose(cfg)

	dir := v.Dir
	if dir == "" {
		paths, err := build.ResolvePaths(c, baseDir(root), "")
		if err != nil {
			return err
		}
		dir = paths.Dist
	}

	report, err := export.Verify(dir, export.Options{
		SearchEnabled:     c.SearchEnabled(),
		ImagesUnoptimized: c.Framework.ImagesUnoptimized,
		BasePath:          build.BasePath(c.Framework.BaseURL),
	})
	if err != nil {
		return err
	}

	printIssues(g, report)
	if report.OK() {
		_, _ = fmt.Fprintf(g.Out, "OK: %d files in %s\n", report.Files, dir)
	}
	return report.Err()
}

// printIssues writes one tab-separated line per verification issue.
func printIssues(g *Global, report *export.Report) {
	for _, issue := range report.Issues {
		_, _ = fmt.Fprintf(g.Out, "%s\t%s\t%s\n", issue.Kind, issue.Path, issue.Detail)
	}
}
