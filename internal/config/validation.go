package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/sch1zk/docsexport/internal/foundation/errors"
)

// CurrentVersion is the only configuration schema version understood by this build.
const CurrentVersion = "1"

// ValidateConfig checks a normalized, defaulted configuration.
func ValidateConfig(c *Config) error {
	if c.Version != CurrentVersion {
		return errors.ValidationError("unsupported configuration version").
			WithContext("version", c.Version).
			WithContext("expected", CurrentVersion).
			Build()
	}

	switch c.Build.Output {
	case OutputExport, OutputServer, OutputHybrid:
	default:
		return errors.ValidationError("invalid build.output").
			WithContext("output", string(c.Build.Output)).
			Build()
	}

	if c.Build.Output == OutputExport && !BoolValue(c.Build.Images.Unoptimized, true) {
		return errors.ValidationError("build.images.unoptimized must be true when build.output is export").
			WithContext("output", string(c.Build.Output)).
			Build()
	}

	if err := validatePaths(c); err != nil {
		return err
	}

	if c.Site.BaseURL != "" {
		if _, err := url.Parse(c.Site.BaseURL); err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid site.base_url").
				Fatal().
				WithContext("base_url", c.Site.BaseURL).
				Build()
		}
	}
	return nil
}

func validatePaths(c *Config) error {
	dist := filepath.Clean(c.Build.DistDir)
	if c.Build.DistDir == "" || dist == "." || dist == string(filepath.Separator) {
		return errors.ValidationError("build.dist_dir must name a dedicated directory").
			WithContext("dist_dir", c.Build.DistDir).
			Build()
	}
	if c.Site.ContentDir != "" && overlaps(filepath.Clean(c.Site.ContentDir), dist) {
		return errors.ValidationError("build.dist_dir and site.content_dir must not overlap").
			WithContext("dist_dir", c.Build.DistDir).
			WithContext("content_dir", c.Site.ContentDir).
			Build()
	}
	return nil
}

// overlaps reports whether either cleaned path contains the other. Paths of
// different kinds (absolute and relative) are resolved by the build instead.
func overlaps(a, b string) bool {
	if filepath.IsAbs(a) != filepath.IsAbs(b) {
		return false
	}
	return a == b || contains(a, b) || contains(b, a)
}

func contains(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
