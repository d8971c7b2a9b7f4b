// Package plugin implements the documentation plugin that wraps the framework
// configuration. The plugin is the Hextra theme module: it owns the docs
// specific options (search) and contributes theme parameters to hugo.yaml.
package plugin

import (
	"fmt"

	"github.com/sch1zk/docsexport/internal/config"
)

const (
	// ModulePath is the Hugo module imported for the documentation theme.
	ModulePath = "github.com/imfing/hextra"
	// ModuleVersion pins the theme module.
	ModuleVersion = "v0.11.0"
)

// Capability names a feature the plugin contributes to the site.
type Capability string

const (
	CapabilitySearch  Capability = "search"
	CapabilityMath    Capability = "math"
	CapabilityMermaid Capability = "mermaid"
)

// Metadata describes the plugin identity.
type Metadata struct {
	Name         string
	Version      string
	Description  string
	Capabilities []Capability
}

func (m Metadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// DocsPlugin is created once per build from the docs options.
type DocsPlugin struct {
	search bool
}

// New is the plugin factory. A nil Search option means search is disabled.
func New(opts config.DocsOptions) *DocsPlugin {
	return &DocsPlugin{search: config.BoolValue(opts.Search, false)}
}

// Metadata returns the plugin metadata. The search capability is only
// advertised when indexing is enabled.
func (p *DocsPlugin) Metadata() Metadata {
	caps := []Capability{CapabilityMath, CapabilityMermaid}
	if p.search {
		caps = append(caps, CapabilitySearch)
	}
	return Metadata{
		Name:         string(config.ThemeHextra),
		Version:      ModuleVersion,
		Description:  "Hextra documentation theme",
		Capabilities: caps,
	}
}

// SearchEnabled reports the effective search option.
func (p *DocsPlugin) SearchEnabled() bool { return p.search }

// Wrap composes the framework configuration with the plugin options.
// fw is copied; the caller's value is never modified.
func (p *DocsPlugin) Wrap(fw config.FrameworkConfig) Composed {
	return Composed{Framework: fw, Search: p.search}
}
