package build

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sch1zk/docsexport/internal/export"
	"github.com/sch1zk/docsexport/internal/hugo"
	"github.com/sch1zk/docsexport/internal/logfields"
	"github.com/sch1zk/docsexport/internal/metrics"
	"github.com/sch1zk/docsexport/internal/observability"
)

// DefaultBuildService runs the prepare, generate_config, run_hugo and verify stages.
type DefaultBuildService struct {
	runner   hugo.Runner
	recorder metrics.Recorder
	now      func() time.Time
}

// NewBuildService creates a service that runs the hugo binary on PATH.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		runner:   hugo.NewExecRunner(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// WithRunner sets the hugo runner.
func (s *DefaultBuildService) WithRunner(r hugo.Runner) *DefaultBuildService {
	if r == nil {
		return s
	}
	s.runner = r
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// run carries the state of one build through its stages.
type run struct {
	s      *DefaultBuildService
	req    BuildRequest
	result *BuildResult
}

// Run executes the build. The returned result is non-nil even on error.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	result := &BuildResult{
		ID:        uuid.NewString(),
		StartTime: s.now(),
	}
	ctx = observability.WithBuildID(ctx, result.ID)
	c := req.Composed
	observability.InfoContext(ctx, "Starting build",
		logfields.OutputMode(string(c.Framework.Output)),
		logfields.Search(c.SearchEnabled()),
		logfields.DistDir(c.OutputDir()))

	r := &run{s: s, req: req, result: result}
	err := r.execute(ctx)
	r.finish(ctx, err)
	return result, err
}

func (r *run) execute(ctx context.Context) error {
	c := r.req.Composed
	render := !r.req.Options.SkipRender && os.Getenv(SkipRenderEnv) != "1"

	if err := r.stage(ctx, StagePrepare, func(ctx context.Context) error {
		paths, err := ResolvePaths(c, r.req.BaseDir, r.req.ProjectDir)
		if err != nil {
			return err
		}
		r.result.Paths = paths
		if _, statErr := os.Stat(paths.Content); statErr != nil {
			observability.WarnContext(ctx, "Content directory not found; the site will be empty",
				logfields.Path(paths.Content))
		}
		return nil
	}); err != nil {
		return err
	}

	if err := r.stage(ctx, StageGenerateConfig, func(ctx context.Context) error {
		paths := r.result.Paths
		return hugo.WriteProject(paths.Project, c, hugo.RenderOptions{
			ContentDir: paths.Content,
			PublishDir: paths.Dist,
			GitInfo:    hugo.ResolveGitInfo(c.Framework.GitInfo, paths.Content),
		})
	}); err != nil {
		return err
	}

	if !render {
		r.skip(ctx, StageRunHugo, "render disabled")
		r.skip(ctx, StageVerify, "render disabled")
		return nil
	}

	if err := r.stage(ctx, StageRunHugo, func(ctx context.Context) error {
		return r.s.runner.Run(ctx, hugo.BuildArgs(c.Framework.Output, r.result.Paths.Project)...)
	}); err != nil {
		return err
	}

	if !hugo.ProducesBundle(c.Framework.Output) {
		r.skip(ctx, StageVerify, "no static bundle in server mode")
		return nil
	}

	return r.stage(ctx, StageVerify, func(ctx context.Context) error {
		report, err := export.Verify(r.result.Paths.Dist, export.Options{
			SearchEnabled:     c.SearchEnabled(),
			ImagesUnoptimized: c.Framework.ImagesUnoptimized,
			BasePath:          BasePath(c.Framework.BaseURL),
		})
		if err != nil {
			return err
		}
		r.result.Export = report
		r.s.recorder.SetExportFiles(report.Files)
		r.s.recorder.SetExportIssues(len(report.Issues))
		return report.Err()
	})
}

// stage runs fn as the named stage unless ctx is already done.
func (r *run) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		r.record(name, metrics.ResultCanceled, 0, err)
		return err
	}

	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	observability.DebugContext(ctx, "Stage started")
	err := fn(ctx)
	d := time.Since(start)
	r.s.recorder.ObserveStageDuration(name, d)

	switch {
	case err == nil:
		r.record(name, metrics.ResultSuccess, d, nil)
		observability.InfoContext(ctx, "Stage complete", logfields.Duration(d))
	case ctx.Err() != nil:
		r.record(name, metrics.ResultCanceled, d, err)
		observability.WarnContext(ctx, "Stage canceled", logfields.Duration(d))
	default:
		r.record(name, metrics.ResultFatal, d, err)
		observability.ErrorContext(ctx, "Stage failed", logfields.Duration(d), logfields.Error(err))
	}
	return err
}

func (r *run) skip(ctx context.Context, name, reason string) {
	r.record(name, metrics.ResultSkipped, 0, nil)
	observability.DebugContext(observability.WithStage(ctx, name), "Stage skipped", slog.String("reason", reason))
}

func (r *run) record(name string, result metrics.ResultLabel, d time.Duration, err error) {
	sr := StageResult{Name: name, Result: result, Duration: d}
	if err != nil {
		sr.Error = err.Error()
	}
	r.result.Stages = append(r.result.Stages, sr)
	r.s.recorder.IncStageResult(name, result)
}

func (r *run) finish(ctx context.Context, err error) {
	res := r.result
	res.EndTime = r.s.now()
	res.Duration = res.EndTime.Sub(res.StartTime)

	outcome := metrics.BuildOutcomeSuccess
	switch {
	case err == nil:
		res.Status = BuildStatusSuccess
	case ctx.Err() != nil:
		res.Status = BuildStatusCancelled
		outcome = metrics.BuildOutcomeCanceled
	default:
		res.Status = BuildStatusFailed
		outcome = metrics.BuildOutcomeFailed
	}
	r.s.recorder.ObserveBuildDuration(res.Duration)
	r.s.recorder.IncBuildOutcome(outcome)

	attrs := []slog.Attr{logfields.Outcome(string(res.Status)), logfields.Duration(res.Duration)}
	if res.Export != nil {
		attrs = append(attrs, logfields.Issues(len(res.Export.Issues)))
	}
	if err != nil {
		observability.WarnContext(ctx, "Build finished", attrs...)
		return
	}
	observability.InfoContext(ctx, "Build finished", attrs...)
}

// BasePath returns the URL path component of baseURL, or "/".
func BasePath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
