package commands

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// PrintCmd implements the 'print' command.
type PrintCmd struct {
	Format string `short:"f" help:"Output format (yaml|json)" enum:"yaml,json" default:"yaml"`
}

func (p *PrintCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	view := plugin.Compose(cfg).View()

	switch p.Format {
	case "json":
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode configuration").Build()
		}
	default:
		enc := yaml.NewEncoder(g.Out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode configuration").Build()
		}
		if err := enc.Close(); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "failed to encode configuration").Build()
		}
	}
	return nil
}
