package config

import "strings"

// DefaultDistDir is the conventional static-export directory name.
const DefaultDistDir = "out"

// DefaultConfigFile is the file name the CLI looks for when --config is not given.
const DefaultConfigFile = "docsexport.yaml"

// Default returns the canonical configuration: a static export with
// unoptimized images and search indexing disabled.
func Default() *Config {
	c := &Config{
		Version: CurrentVersion,
		Site: SiteConfig{
			Title: "Documentation",
		},
		Build: BuildConfig{
			Output: OutputExport,
			Images: ImagesConfig{Unoptimized: Bool(true)},
		},
		Docs: DocsConfig{Search: Bool(false)},
	}
	ApplyDefaults(c)
	return c
}

// ApplyDefaults fills omitted fields. It runs after normalization so canonical
// values drive the defaults, and never overrides an explicit setting.
func ApplyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Site.Title == "" {
		c.Site.Title = "Documentation"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "/"
	}
	if c.Site.ContentDir == "" {
		c.Site.ContentDir = "content"
	}
	if c.Site.Theme == "" {
		c.Site.Theme = ThemeHextra
	}
	if c.Site.GitInfo == "" {
		c.Site.GitInfo = GitInfoAuto
	}

	if c.Build.Output == "" {
		c.Build.Output = OutputExport
	}
	// Static export has no server to transform images on request.
	if c.Build.Images.Unoptimized == nil && c.Build.Output == OutputExport {
		c.Build.Images.Unoptimized = Bool(true)
	}
	if c.Build.Images.Unoptimized == nil {
		c.Build.Images.Unoptimized = Bool(false)
	}
	if c.Build.DistDir == "" {
		c.Build.DistDir = DefaultDistDir
	}
	c.Build.DistDir = strings.TrimRight(c.Build.DistDir, "/")

	if c.Docs.Search == nil {
		c.Docs.Search = Bool(false)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
