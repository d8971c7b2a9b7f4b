package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the build-affecting fields. Run it on a
// loaded (normalized and defaulted) configuration; logging settings are
// excluded because they do not change the produced site.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	w("site.title", c.Site.Title)
	w("site.description", c.Site.Description)
	w("site.base_url", c.Site.BaseURL)
	w("site.content_dir", c.Site.ContentDir)
	w("site.theme", string(c.Site.Theme))
	w("site.git_info", string(c.Site.GitInfo))
	w("build.output", string(c.Build.Output))
	w("build.images.unoptimized", strconv.FormatBool(BoolValue(c.Build.Images.Unoptimized, false)))
	w("build.dist_dir", c.Build.DistDir)
	w("docs.search", strconv.FormatBool(BoolValue(c.Docs.Search, false)))
	return hex.EncodeToString(h.Sum(nil))
}
