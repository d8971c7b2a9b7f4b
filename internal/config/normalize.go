package config

import (
	"fmt"
	"strings"

	"github.com/sch1zk/docsexport/internal/foundation/normalization"
)

var (
	outputModeNormalizer = normalization.NewNormalizer("build.output", map[string]OutputMode{
		"export": OutputExport,
		"server": OutputServer,
		"hybrid": OutputHybrid,
	}, OutputExport).WithAliases(map[string]OutputMode{
		"static":     OutputExport,
		"standalone": OutputServer,
	})

	themeNormalizer = normalization.NewNormalizer("site.theme", map[string]Theme{
		"hextra": ThemeHextra,
	}, ThemeHextra)

	gitInfoNormalizer = normalization.NewNormalizer("site.git_info", map[string]GitInfoMode{
		"auto":  GitInfoAuto,
		"true":  GitInfoOn,
		"false": GitInfoOff,
	}, GitInfoAuto).WithAliases(map[string]GitInfoMode{
		"on": GitInfoOn, "yes": GitInfoOn,
		"off": GitInfoOff, "no": GitInfoOff,
	})

	logLevelNormalizer = normalization.NewNormalizer("logging.level", map[string]LogLevel{
		"debug": LogLevelDebug,
		"info":  LogLevelInfo,
		"warn":  LogLevelWarn,
		"error": LogLevelError,
	}, LogLevelInfo).WithAliases(map[string]LogLevel{"warning": LogLevelWarn})

	logFormatNormalizer = normalization.NewNormalizer("logging.format", map[string]LogFormat{
		"json": LogFormatJSON,
		"text": LogFormatText,
	}, LogFormatText)
)

// NormalizationResult collects non-fatal adjustments made while normalizing.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// NormalizeConfig case-folds enumerations and trims free-form fields in place.
// Unknown output modes and themes are errors; unknown logging values fall back
// to their defaults with a warning.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("nil config")
	}
	res := &NormalizationResult{}

	c.Version = strings.TrimSpace(c.Version)
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	c.Site.BaseURL = strings.TrimSpace(c.Site.BaseURL)
	c.Site.ContentDir = strings.TrimSpace(c.Site.ContentDir)
	c.Build.DistDir = strings.TrimSpace(c.Build.DistDir)

	if raw := string(c.Build.Output); raw != "" {
		m, err := outputModeNormalizer.NormalizeWithError(raw)
		if err != nil {
			return res, err
		}
		if string(m) != raw {
			res.warn("normalized build.output from %q to %q", raw, m)
		}
		c.Build.Output = m
	}

	if c.Build.Output != "" && c.Build.Output != OutputExport && BoolValue(c.Build.Images.Unoptimized, false) {
		res.warn("build.images.unoptimized is only required for export; %s will serve original images", c.Build.Output)
	}

	if raw := string(c.Site.Theme); raw != "" {
		th, err := themeNormalizer.NormalizeWithError(raw)
		if err != nil {
			return res, err
		}
		c.Site.Theme = th
	}

	if raw := string(c.Site.GitInfo); raw != "" {
		g, err := gitInfoNormalizer.NormalizeWithError(raw)
		if err != nil {
			return res, err
		}
		c.Site.GitInfo = g
	}

	if raw := string(c.Logging.Level); raw != "" {
		lvl, ok := logLevelNormalizer.Normalize(raw)
		if !ok {
			res.warn("unknown logging.level %q, using %q", raw, lvl)
		}
		c.Logging.Level = lvl
	}
	if raw := string(c.Logging.Format); raw != "" {
		f, ok := logFormatNormalizer.Normalize(raw)
		if !ok {
			res.warn("unknown logging.format %q, using %q", raw, f)
		}
		c.Logging.Format = f
	}
	return res, nil
}
