package build

import (
	"path/filepath"

	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// ResolvePaths makes the content, output and project directories of c
// absolute, anchoring relative ones at baseDir.
func ResolvePaths(c plugin.Composed, baseDir, projectDir string) (Paths, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return Paths{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve base directory").
			WithContext("path", baseDir).
			Build()
	}
	if projectDir == "" {
		projectDir = DefaultProjectDir
	}

	p := Paths{
		Project: anchor(base, projectDir),
		Content: anchor(base, c.Framework.ContentDir),
		Dist:    anchor(base, c.OutputDir()),
	}
	if p.Dist == base {
		return Paths{}, errors.ValidationError("dist_dir must not be the configuration directory").
			WithContext("dist_dir", p.Dist).
			Build()
	}
	// hugo --cleanDestinationDir empties dist_dir, and output inside the
	// content tree is read back as pages on the next build.
	if within(p.Content, p.Dist) || within(p.Dist, p.Content) {
		return Paths{}, errors.ValidationError("content_dir and dist_dir must not overlap").
			WithContext("content_dir", p.Content).
			WithContext("dist_dir", p.Dist).
			Build()
	}
	if within(p.Dist, p.Project) || within(p.Project, p.Dist) {
		return Paths{}, errors.ValidationError("hugo project directory and dist_dir must not overlap").
			WithContext("project", p.Project).
			WithContext("dist_dir", p.Dist).
			Build()
	}
	return p, nil
}

func anchor(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// within reports whether p equals dir or lies below it.
func within(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel))
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
