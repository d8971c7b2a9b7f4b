package version

import "fmt"

// Version is set via build-time ldflags:
// go build -ldflags "-X github.com/sch1zk/docsexport/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also injected via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the human readable version line printed by --version.
func String() string {
	return fmt.Sprintf("docsexport %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
