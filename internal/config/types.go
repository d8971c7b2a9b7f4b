package config

// Config is the on-disk layout of docsexport.yaml.
type Config struct {
	Version string        `yaml:"version,omitempty"`
	Site    SiteConfig    `yaml:"site"`
	Build   BuildConfig   `yaml:"build"`
	Docs    DocsConfig    `yaml:"docs"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// SiteConfig holds presentation settings handed to Hugo.
type SiteConfig struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	BaseURL     string      `yaml:"base_url,omitempty"`
	ContentDir  string      `yaml:"content_dir,omitempty"`
	Theme       Theme       `yaml:"theme,omitempty"`
	GitInfo     GitInfoMode `yaml:"git_info,omitempty"`
}

// BuildConfig holds the web-build framework options.
type BuildConfig struct {
	Output  OutputMode   `yaml:"output"`
	Images  ImagesConfig `yaml:"images"`
	DistDir string       `yaml:"dist_dir,omitempty"` // defaults to "out"
}

// ImagesConfig controls image handling. Unoptimized is a pointer so an omitted
// key can be told apart from an explicit false.
type ImagesConfig struct {
	Unoptimized *bool `yaml:"unoptimized,omitempty"`
}

// DocsConfig holds the documentation plugin options.
type DocsConfig struct {
	Search *bool `yaml:"search,omitempty"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// OutputMode enumerates the build output modes.
type OutputMode string

const (
	OutputExport OutputMode = "export" // fully static bundle
	OutputServer OutputMode = "server" // served by a running hugo server
	OutputHybrid OutputMode = "hybrid" // static bundle plus a preview server
)

// Theme enumerates supported Hugo themes.
type Theme string

const ThemeHextra Theme = "hextra"

// GitInfoMode controls Hugo's enableGitInfo.
type GitInfoMode string

const (
	GitInfoAuto GitInfoMode = "auto"
	GitInfoOn   GitInfoMode = "true"
	GitInfoOff  GitInfoMode = "false"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Bool returns a pointer to b, for optional config fields.
func Bool(b bool) *bool { return &b }

// BoolValue dereferences p, returning def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
