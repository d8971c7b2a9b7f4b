package commands

import (
	"fmt"
	"strings"

	"github.com/sch1zk/docsexport/internal/plugin"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	c := plugin.Compose(cfg)
	_, _ = fmt.Fprintf(g.Out, "Configuration valid: output=%s images.unoptimized=%t search=%t dist_dir=%s\n",
		c.Framework.Output, c.Framework.ImagesUnoptimized, c.SearchEnabled(), c.OutputDir())

	meta := c.Plugin().Metadata()
	caps := make([]string, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		caps = append(caps, string(capability))
	}
	_, _ = fmt.Fprintf(g.Out, "Plugin: %s capabilities=%s\n", meta, strings.Join(caps, ","))
	return nil
}
