package config

// FrameworkConfig is the object handed to the web-build framework (Hugo).
type FrameworkConfig struct {
	Output            OutputMode
	ImagesUnoptimized bool
	DistDir           string
	Title             string
	Description       string
	BaseURL           string
	ContentDir        string
	Theme             Theme
	GitInfo           GitInfoMode
}

// DocsOptions is the object handed to the documentation plugin factory.
type DocsOptions struct {
	Search *bool
}

// Framework projects a loaded configuration onto the framework options.
// It expects defaults to have been applied.
func (c *Config) Framework() FrameworkConfig {
	return FrameworkConfig{
		Output:            c.Build.Output,
		ImagesUnoptimized: BoolValue(c.Build.Images.Unoptimized, c.Build.Output == OutputExport),
		DistDir:           c.Build.DistDir,
		Title:             c.Site.Title,
		Description:       c.Site.Description,
		BaseURL:           c.Site.BaseURL,
		ContentDir:        c.Site.ContentDir,
		Theme:             c.Site.Theme,
		GitInfo:           c.Site.GitInfo,
	}
}

// DocsOptions projects a loaded configuration onto the plugin options.
func (c *Config) DocsOptions() DocsOptions {
	var search *bool
	if c.Docs.Search != nil {
		search = Bool(*c.Docs.Search)
	}
	return DocsOptions{Search: search}
}

// IsStaticExport reports whether the framework emits a self-contained static bundle.
func (f FrameworkConfig) IsStaticExport() bool {
	return f.Output == OutputExport
}
