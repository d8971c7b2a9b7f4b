package plugin

import "github.com/sch1zk/docsexport/internal/config"

// Composed is the produced build configuration: framework options with the
// documentation plugin applied. It is a plain value and safe to copy.
type Composed struct {
	Framework config.FrameworkConfig
	Search    bool
}

// SearchEnabled reports whether a search index is generated.
func (c Composed) SearchEnabled() bool { return c.Search }

// IsStaticExport reports whether the build emits a self-contained static bundle.
func (c Composed) IsStaticExport() bool { return c.Framework.IsStaticExport() }

// OutputDir is the directory the static bundle is written to.
func (c Composed) OutputDir() string { return c.Framework.DistDir }

// Plugin returns the plugin that produced c.
func (c Composed) Plugin() *DocsPlugin { return &DocsPlugin{search: c.Search} }

// View is the printable form of Composed, keyed like the framework options.
type View struct {
	Output  config.OutputMode `json:"output" yaml:"output"`
	Images  ImagesView        `json:"images" yaml:"images"`
	DistDir string            `json:"distDir" yaml:"distDir"`
	Site    SiteView          `json:"site" yaml:"site"`
	Docs    DocsView          `json:"docs" yaml:"docs"`
}

type ImagesView struct {
	Unoptimized bool `json:"unoptimized" yaml:"unoptimized"`
}

type SiteView struct {
	Title      string `json:"title" yaml:"title"`
	BaseURL    string `json:"baseURL" yaml:"baseURL"`
	ContentDir string `json:"contentDir" yaml:"contentDir"`
	Theme      string `json:"theme" yaml:"theme"`
}

type DocsView struct {
	Search bool `json:"search" yaml:"search"`
}

// View returns the printable representation.
func (c Composed) View() View {
	return View{
		Output:  c.Framework.Output,
		Images:  ImagesView{Unoptimized: c.Framework.ImagesUnoptimized},
		DistDir: c.Framework.DistDir,
		Site: SiteView{
			Title:      c.Framework.Title,
			BaseURL:    c.Framework.BaseURL,
			ContentDir: c.Framework.ContentDir,
			Theme:      string(c.Framework.Theme),
		},
		Docs: DocsView{Search: c.Search},
	}
}

// Compose is the one-call form used by the CLI: New(cfg.DocsOptions()).Wrap(cfg.Framework()).
func Compose(cfg *config.Config) Composed {
	return New(cfg.DocsOptions()).Wrap(cfg.Framework())
}
