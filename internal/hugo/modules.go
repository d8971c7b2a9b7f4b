package hugo

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/sch1zk/docsexport/internal/logfields"
	"github.com/sch1zk/docsexport/internal/plugin"
)

const defaultModuleName = "docsexport-site"

// ensureGoMod writes the go.mod Hugo Modules needs to resolve the theme.
// An existing go.mod is kept and only gains the theme require line.
func ensureGoMod(dir, baseURL string) error {
	goModPath := filepath.Join(dir, "go.mod")
	requireLine := fmt.Sprintf("require %s %s", plugin.ModulePath, plugin.ModuleVersion)

	existing, err := os.ReadFile(goModPath)
	if err == nil {
		if strings.Contains(string(existing), plugin.ModulePath) {
			return nil
		}
		content := strings.TrimRight(string(existing), "\n") + "\n\n" + requireLine + "\n"
		slog.Debug("Pinned theme module in existing go.mod", logfields.Path(goModPath))
		return writeFile(goModPath, []byte(content))
	}

	content := fmt.Sprintf("module %s\n\ngo 1.21\n\n%s\n", moduleName(baseURL), requireLine)
	slog.Debug("Created go.mod for Hugo Modules", logfields.Path(goModPath))
	return writeFile(goModPath, []byte(content))
}

// moduleName derives a go.mod module name from the site host.
func moduleName(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return defaultModuleName
	}
	return strings.ReplaceAll(u.Hostname(), ".", "-")
}
