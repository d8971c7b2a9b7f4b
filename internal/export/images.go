package export

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/sch1zk/docsexport/internal/foundation/errors"
)

// ImageRef is an image reference found in an HTML document.
type ImageRef struct {
	URL       string
	Tag       string // img or source
	Attribute string // src or srcset
}

// optimizerEndpoints are URL path segments of on-demand image transformers.
var optimizerEndpoints = []string{"/_next/image", "/_image", "/_vercel/image", "/cdn-cgi/image"}

// resizeParams are query keys that ask a server to transform the image.
var resizeParams = []string{"w", "width", "h", "height", "q", "quality", "fit", "resize"}

// ExtractImageRefs returns the image references in an HTML document.
func ExtractImageRefs(r io.Reader) ([]ImageRef, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var refs []ImageRef
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "img" || n.Data == "source") {
			if src := getAttr(n, "src"); src != "" {
				refs = append(refs, ImageRef{URL: src, Tag: n.Data, Attribute: "src"})
			}
			for _, candidate := range parseSrcset(getAttr(n, "srcset")) {
				refs = append(refs, ImageRef{URL: candidate, Tag: n.Data, Attribute: "srcset"})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// parseSrcset returns the URLs of a srcset attribute, dropping descriptors.
// A candidate URL runs up to the next whitespace, so commas inside it (data:
// URIs) do not split candidates.
func parseSrcset(srcset string) []string {
	var urls []string
	s := srcset
	for {
		s = strings.TrimLeft(s, " \t\n\r\f,")
		if s == "" {
			return urls
		}
		end := strings.IndexAny(s, " \t\n\r\f")
		if end < 0 {
			end = len(s)
		}
		candidate := s[:end]
		s = s[end:]

		// A trailing comma ends the candidate without descriptors.
		if trimmed := strings.TrimRight(candidate, ","); len(trimmed) < len(candidate) {
			urls = append(urls, trimmed)
			continue
		}
		urls = append(urls, candidate)
		s = skipDescriptors(s)
	}
}

// checkImages verifies the images referenced by the HTML file at rel.
func checkImages(root, rel, basePath string, report *Report) error {
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithContext("path", rel).
			Build()
	}
	defer func() {
		_ = f.Close()
	}()

	refs, err := ExtractImageRefs(f)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		u, err := url.Parse(ref.URL)
		if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(ref.URL, "//") {
			continue // external or data: URLs are not part of the bundle
		}
		if reason, ok := optimizerReason(u); ok {
			report.add(IssueOptimizedImg, rel, ref.URL+": "+reason)
			continue
		}
		target, ok := resolveBundlePath(rel, u.Path, basePath)
		if !ok {
			report.add(IssueMissingImage, rel, ref.URL+": points outside the bundle")
			continue
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(target))); err != nil {
			report.add(IssueMissingImage, rel, ref.URL)
		}
	}
	return nil
}

func optimizerReason(u *url.URL) (string, bool) {
	for _, endpoint := range optimizerEndpoints {
		if atEndpoint(u.Path, endpoint) {
			return "served by image optimizer endpoint " + endpoint, true
		}
	}
	q := u.Query()
	for _, key := range resizeParams {
		if q.Has(key) {
			return "requests server-side resizing via ?" + key, true
		}
	}
	return "", false
}

// skipDescriptors drops descriptors up to the next comma outside parentheses.
func skipDescriptors(s string) string {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				return s[i:]
			}
		}
	}
	return ""
}

// atEndpoint reports whether p is endpoint or lies below it, also when the
// site is served under a base path.
func atEndpoint(p, endpoint string) bool {
	return p == endpoint ||
		strings.HasPrefix(p, endpoint+"/") ||
		strings.HasSuffix(p, endpoint) ||
		strings.Contains(p, endpoint+"/")
}

// resolveBundlePath maps a URL path referenced from the HTML file at rel onto
// a slash-separated path inside the bundle.
func resolveBundlePath(rel, urlPath, basePath string) (string, bool) {
	if urlPath == "" {
		return "", false
	}
	var p string
	if strings.HasPrefix(urlPath, "/") {
		base := "/" + strings.Trim(basePath, "/")
		if base != "/" {
			if urlPath != base && !strings.HasPrefix(urlPath, base+"/") {
				return "", false
			}
			urlPath = strings.TrimPrefix(urlPath, base)
		}
		p = path.Clean(strings.TrimPrefix(urlPath, "/"))
	} else {
		p = path.Clean(path.Join(path.Dir(rel), urlPath))
	}
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", false
	}
	return p, true
}
