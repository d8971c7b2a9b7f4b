// Package export checks that a built output directory is a self-contained
// static bundle: static file types only, no search index, and images that
// resolve to plain files inside the bundle.
package export

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/logfields"
)

// IssueKind classifies a verification finding.
type IssueKind string

const (
	IssueNonStatic    IssueKind = "non_static_file"
	IssueSearchIndex  IssueKind = "search_index"
	IssueOptimizedImg IssueKind = "optimized_image"
	IssueMissingImage IssueKind = "missing_image"
)

// Issue is a single finding, with Path relative to the bundle root.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Path   string    `json:"path"`
	Detail string    `json:"detail,omitempty"`
}

// Options selects which checks apply.
type Options struct {
	SearchEnabled     bool   // when false, search index assets are reported
	ImagesUnoptimized bool   // when true, image references are checked
	BasePath          string // URL path prefix the site is served under, e.g. "/docs/"
}

// Report is the verification result.
type Report struct {
	Dir    string  `json:"dir"`
	Files  int     `json:"files"`
	Issues []Issue `json:"issues"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// Err returns a build error summarizing the issues, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.BuildError("static export verification failed").
		WithContext("dir", r.Dir).
		WithContext("issues", len(r.Issues)).
		WithContext("first", r.Issues[0].Kind).
		Build()
}

func (r *Report) add(kind IssueKind, rel, detail string) {
	r.Issues = append(r.Issues, Issue{Kind: kind, Path: rel, Detail: detail})
}

// staticExtensions lists file types a plain static file server can serve.
var staticExtensions = map[string]bool{
	".html": true, ".htm": true, ".css": true, ".js": true, ".mjs": true, ".map": true,
	".json": true, ".xml": true, ".txt": true, ".webmanifest": true, ".pdf": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".avif": true,
	".svg": true, ".ico": true, ".bmp": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".mp4": true, ".webm": true, ".ogg": true, ".mp3": true, ".wav": true,
}

// extensionless files commonly published by static hosts.
var staticNames = map[string]bool{"CNAME": true, ".nojekyll": true}

// searchIndexPatterns match index assets produced by docs search implementations.
var searchIndexPatterns = []string{
	"**/*.search-data.json",
	"**/search-data.json",
	"**/search-index*.json",
	"**/searchindex.js*",
	"**/flexsearch*.json",
	"**/lunr-index*.json",
	"**/pagefind/**",
	"**/_pagefind/**",
}

// Verify walks dir and reports everything that breaks the static export contract.
func Verify(dir string, opts Options) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "output directory does not exist").
				WithContext("dir", dir).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to stat output directory").Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("output path is not a directory").WithContext("dir", dir).Build()
	}

	report := &Report{Dir: dir}
	var htmlFiles []string

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		report.Files++

		if !isStatic(rel) {
			report.add(IssueNonStatic, rel, "file type cannot be served by a static file server")
		}
		if !opts.SearchEnabled {
			if pattern, ok := matchSearchIndex(rel); ok {
				report.add(IssueSearchIndex, rel, "matches "+pattern)
			}
		}
		if ext := strings.ToLower(path.Ext(rel)); ext == ".html" || ext == ".htm" {
			htmlFiles = append(htmlFiles, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk output directory").
			WithContext("dir", dir).
			Build()
	}

	if opts.ImagesUnoptimized {
		for _, rel := range htmlFiles {
			if err := checkImages(dir, rel, opts.BasePath, report); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		if report.Issues[i].Path != report.Issues[j].Path {
			return report.Issues[i].Path < report.Issues[j].Path
		}
		return report.Issues[i].Kind < report.Issues[j].Kind
	})

	slog.Info("Verified static export",
		logfields.Path(dir),
		slog.Int("files", report.Files),
		logfields.Issues(len(report.Issues)))
	return report, nil
}

func isStatic(rel string) bool {
	base := path.Base(rel)
	if staticNames[base] {
		return true
	}
	return staticExtensions[strings.ToLower(path.Ext(base))]
}

func matchSearchIndex(rel string) (string, bool) {
	lower := strings.ToLower(rel)
	for _, pattern := range searchIndexPatterns {
		// ** also matches zero directories, so root-level files are covered.
		if ok, _ := doublestar.Match(pattern, lower); ok {
			return pattern, true
		}
	}
	return "", false
}
