package build

import (
	"context"
	"time"

	"github.com/sch1zk/docsexport/internal/export"
	"github.com/sch1zk/docsexport/internal/metrics"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// SkipRenderEnv forces render to be skipped when set to "1".
const SkipRenderEnv = "DOCSEXPORT_SKIP_HUGO"

// DefaultProjectDir is the Hugo project directory, relative to the base directory.
const DefaultProjectDir = ".docsexport"

// BuildService is the canonical interface for running an export.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest describes one export.
type BuildRequest struct {
	// Composed is the framework configuration with the documentation plugin applied.
	Composed plugin.Composed

	// BaseDir anchors relative content and output paths, normally the
	// directory holding the configuration file. Empty means the working directory.
	BaseDir string

	// ProjectDir is where the Hugo project is generated. Defaults to
	// BaseDir/.docsexport.
	ProjectDir string

	Options BuildOptions
}

// BuildOptions tunes which stages run.
type BuildOptions struct {
	// SkipRender stops after the Hugo project is written.
	SkipRender bool
}

// BuildStatus is the final state of a build.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess reports whether the build completed.
func (s BuildStatus) IsSuccess() bool { return s == BuildStatusSuccess }

// Stage names, in execution order.
const (
	StagePrepare        = "prepare"
	StageGenerateConfig = "generate_config"
	StageRunHugo        = "run_hugo"
	StageVerify         = "verify"
)

// StageResult records how a single stage ended.
type StageResult struct {
	Name     string              `json:"name"`
	Result   metrics.ResultLabel `json:"result"`
	Duration time.Duration       `json:"duration"`
	Error    string              `json:"error,omitempty"`
}

// Paths are the absolute locations a build reads from and writes to.
type Paths struct {
	Project string `json:"project"`
	Content string `json:"content"`
	Dist    string `json:"dist"`
}

// BuildResult is the report of one build.
type BuildResult struct {
	ID        string         `json:"id"`
	Status    BuildStatus    `json:"status"`
	Paths     Paths          `json:"paths"`
	Stages    []StageResult  `json:"stages"`
	Export    *export.Report `json:"export,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Duration  time.Duration  `json:"duration"`
}

// Stage returns the result recorded for name.
func (r *BuildResult) Stage(name string) (StageResult, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageResult{}, false
}
