package hugo

import "github.com/sch1zk/docsexport/internal/config"

// BuildArgs returns the hugo arguments that produce the configured output
// from the project in projectDir. Output locations come from hugo.yaml.
func BuildArgs(mode config.OutputMode, projectDir string) []string {
	switch mode {
	case config.OutputServer:
		return ServeArgs(projectDir)
	case config.OutputHybrid:
		return []string{"--source", projectDir, "--cleanDestinationDir"}
	default:
		return []string{"--source", projectDir, "--minify", "--cleanDestinationDir"}
	}
}

// ServeArgs returns the arguments for a live `hugo server` on projectDir.
func ServeArgs(projectDir string) []string {
	return []string{"server", "--source", projectDir, "--disableFastRender"}
}

// ProducesBundle reports whether running BuildArgs for mode writes a static bundle.
func ProducesBundle(mode config.OutputMode) bool {
	return mode != config.OutputServer
}
