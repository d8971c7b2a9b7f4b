package hugo

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/logfields"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// ConfigFile is the Hugo configuration file name written into the project.
const ConfigFile = "hugo.yaml"

// RenderOptions carries filesystem facts resolved by the caller.
type RenderOptions struct {
	ContentDir string // absolute path of the markdown content
	PublishDir string // absolute path of the static bundle
	GitInfo    bool
}

// RenderConfig builds the hugo.yaml document for c.
func RenderConfig(c plugin.Composed, opts RenderOptions) map[string]any {
	fw := c.Framework
	docs := c.Plugin()

	// Phase 1: core fields
	params := map[string]any{}
	root := map[string]any{
		"title":         fw.Title,
		"baseURL":       fw.BaseURL,
		"languageCode":  "en",
		"enableGitInfo": opts.GitInfo,
		"contentDir":    opts.ContentDir,
		"markup": map[string]any{
			"goldmark":  map[string]any{"renderer": map[string]any{"unsafe": true}},
			"highlight": map[string]any{"style": "github", "noClasses": false},
		},
		"params": params,
	}
	if fw.Description != "" {
		root["description"] = fw.Description
	}

	// Phase 2: plugin params
	docs.ApplyParams(params)

	// Phase 3: output mode
	switch fw.Output {
	case config.OutputExport:
		root["publishDir"] = opts.PublishDir
		root["relativeURLs"] = true
	case config.OutputHybrid:
		root["publishDir"] = opts.PublishDir
	case config.OutputServer:
		// hugo server renders into memory; no publishDir
	}

	// Phase 4: images
	params["images"] = map[string]any{"unoptimized": fw.ImagesUnoptimized}
	if !fw.ImagesUnoptimized {
		root["imaging"] = map[string]any{"resampleFilter": "Lanczos", "quality": 80, "anchor": "Smart"}
	}

	// Phase 5: outputs. The JSON home output only exists to feed a search index.
	homeOutputs := []string{"HTML", "RSS"}
	if c.SearchEnabled() {
		homeOutputs = append(homeOutputs, "JSON")
	}
	root["outputs"] = map[string]any{"home": homeOutputs}

	// Phase 6: theme module and menu
	root["module"] = map[string]any{"imports": []map[string]any{{"path": plugin.ModulePath}}}
	root["menu"] = map[string]any{"main": docs.MainMenu()}

	return root
}

// WriteProject writes hugo.yaml, go.mod and layout overrides into dir.
func WriteProject(dir string, c plugin.Composed, opts RenderOptions) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create hugo project directory").
			WithContext("path", dir).
			Build()
	}

	data, err := yaml.Marshal(RenderConfig(c, opts))
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal Hugo config").Build()
	}
	configPath := filepath.Join(dir, ConfigFile)
	if err := writeFile(configPath, data); err != nil {
		return err
	}

	if err := ensureGoMod(dir, c.Framework.BaseURL); err != nil {
		return err
	}
	if err := writeLayouts(dir, c.Framework.ImagesUnoptimized); err != nil {
		return err
	}

	slog.Info("Generated Hugo configuration",
		logfields.Path(configPath),
		slog.String("plugin", c.Plugin().Metadata().String()),
		logfields.OutputMode(string(c.Framework.Output)),
		logfields.Search(c.SearchEnabled()))
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create directory").
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	// #nosec G306 -- generated project files are not secret
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").
			WithContext("path", path).
			Build()
	}
	return nil
}
