package build

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/export"
	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/hugo"
	"github.com/sch1zk/docsexport/internal/metrics"
	"github.com/sch1zk/docsexport/internal/plugin"
)

// fakeRunner stands in for hugo: it reads publishDir from the generated
// hugo.yaml and writes files there.
type fakeRunner struct {
	files map[string]string
	err   error
	calls [][]string
}

func (f *fakeRunner) Run(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return f.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	source := argAfter(args, "--source")
	data, err := os.ReadFile(filepath.Join(source, hugo.ConfigFile))
	if err != nil {
		return err
	}
	var cfg struct {
		PublishDir string `yaml:"publishDir"`
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if cfg.PublishDir == "" {
		return nil
	}
	for name, content := range f.files {
		p := filepath.Join(cfg.PublishDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			return err
		}
	}
	return nil
}

func argAfter(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

type recordingRecorder struct {
	mu       sync.Mutex
	stages   map[string]metrics.ResultLabel
	outcome  metrics.BuildOutcomeLabel
	files    int
	issues   int
	observed int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{stages: map[string]metrics.ResultLabel{}}
}

func (r *recordingRecorder) ObserveStageDuration(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observed++
}

func (r *recordingRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[stage] = result
}

func (r *recordingRecorder) ObserveBuildDuration(time.Duration) {}

func (r *recordingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome = o
}

func (r *recordingRecorder) SetExportFiles(n int) { r.files = n }
func (r *recordingRecorder) SetExportIssues(n int) { r.issues = n }

var staticSite = map[string]string{
	"index.html":            `<html><body><img src="images/logo.png" srcset="images/logo.png 1x"></body></html>`,
	"docs/intro/index.html": `<html><body><img src="../../images/logo.png"></body></html>`,
	"images/logo.png":       "png",
	"css/compiled/main.css": "body{}",
	"index.xml":             "<rss/>",
	"sitemap.xml":           "<urlset/>",
}

func newSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "_index.md"), []byte("# Home\n"), 0o600))
	return dir
}

func composeDefault() plugin.Composed {
	return plugin.Compose(config.Default())
}

func TestRunExportProducesStaticBundle(t *testing.T) {
	base := newSite(t)
	runner := &fakeRunner{files: staticSite}
	rec := newRecordingRecorder()
	svc := NewBuildService().WithRunner(runner).WithRecorder(rec)

	res, err := svc.Run(context.Background(), BuildRequest{Composed: composeDefault(), BaseDir: base})
	require.NoError(t, err)
	require.Equal(t, BuildStatusSuccess, res.Status)
	require.NotEmpty(t, res.ID)
	require.Len(t, res.Stages, 4)
	for _, s := range res.Stages {
		require.Equal(t, metrics.ResultSuccess, s.Result, s.Name)
	}

	require.Equal(t, filepath.Join(base, config.DefaultDistDir), res.Paths.Dist)
	require.Equal(t, filepath.Join(base, DefaultProjectDir), res.Paths.Project)
	require.FileExists(t, filepath.Join(res.Paths.Project, hugo.ConfigFile))

	require.NotNil(t, res.Export)
	require.True(t, res.Export.OK())
	require.Equal(t, len(staticSite), res.Export.Files)

	require.Len(t, runner.calls, 1)
	require.Contains(t, runner.calls[0], "--minify")

	require.Equal(t, metrics.BuildOutcomeSuccess, rec.outcome)
	require.Equal(t, metrics.ResultSuccess, rec.stages[StageVerify])
	require.Equal(t, len(staticSite), rec.files)
	require.Equal(t, 0, rec.issues)
	require.Equal(t, 4, rec.observed)
}

func TestRunFailsOnSearchIndex(t *testing.T) {
	base := newSite(t)
	files := map[string]string{
		"index.html":          "<html></html>",
		"en.search-data.json": "{}",
	}
	svc := NewBuildService().WithRunner(&fakeRunner{files: files})

	res, err := svc.Run(context.Background(), BuildRequest{Composed: composeDefault(), BaseDir: base})
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryBuild))
	require.Equal(t, BuildStatusFailed, res.Status)

	verify, ok := res.Stage(StageVerify)
	require.True(t, ok)
	require.Equal(t, metrics.ResultFatal, verify.Result)
	require.NotNil(t, res.Export)
	require.Equal(t, export.IssueSearchIndex, res.Export.Issues[0].Kind)
}

func TestRunSkipRender(t *testing.T) {
	base := newSite(t)
	runner := &fakeRunner{files: staticSite}
	svc := NewBuildService().WithRunner(runner)

	res, err := svc.Run(context.Background(), BuildRequest{
		Composed: composeDefault(),
		BaseDir:  base,
		Options:  BuildOptions{SkipRender: true},
	})
	require.NoError(t, err)
	require.Equal(t, BuildStatusSuccess, res.Status)
	require.Empty(t, runner.calls)
	require.FileExists(t, filepath.Join(res.Paths.Project, hugo.ConfigFile))
	require.NoDirExists(t, res.Paths.Dist)

	for _, name := range []string{StageRunHugo, StageVerify} {
		s, ok := res.Stage(name)
		require.True(t, ok, name)
		require.Equal(t, metrics.ResultSkipped, s.Result, name)
	}
}

func TestRunSkipRenderFromEnv(t *testing.T) {
	t.Setenv(SkipRenderEnv, "1")
	runner := &fakeRunner{files: staticSite}

	res, err := NewBuildService().WithRunner(runner).Run(context.Background(),
		BuildRequest{Composed: composeDefault(), BaseDir: newSite(t)})
	require.NoError(t, err)
	require.Empty(t, runner.calls)
	require.Nil(t, res.Export)
}

func TestRunServerModeSkipsVerify(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Output = config.OutputServer
	cfg.Build.Images.Unoptimized = config.Bool(true)
	require.NoError(t, config.ValidateConfig(cfg))

	runner := &fakeRunner{}
	res, err := NewBuildService().WithRunner(runner).Run(context.Background(),
		BuildRequest{Composed: plugin.Compose(cfg), BaseDir: newSite(t)})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	require.Equal(t, "server", runner.calls[0][0])

	s, ok := res.Stage(StageVerify)
	require.True(t, ok)
	require.Equal(t, metrics.ResultSkipped, s.Result)
}

func TestRunHybridVerifiesBundle(t *testing.T) {
	cfg := config.Default()
	cfg.Build.Output = config.OutputHybrid
	cfg.Build.Images.Unoptimized = nil
	config.ApplyDefaults(cfg)

	runner := &fakeRunner{files: staticSite}
	res, err := NewBuildService().WithRunner(runner).Run(context.Background(),
		BuildRequest{Composed: plugin.Compose(cfg), BaseDir: newSite(t)})
	require.NoError(t, err)
	require.NotContains(t, runner.calls[0], "--minify")
	require.NotNil(t, res.Export)
}

func TestRunHugoFailure(t *testing.T) {
	hugoErr := errors.HugoError("hugo command failed").Build()
	rec := newRecordingRecorder()
	res, err := NewBuildService().WithRunner(&fakeRunner{err: hugoErr}).WithRecorder(rec).Run(
		context.Background(), BuildRequest{Composed: composeDefault(), BaseDir: newSite(t)})
	require.ErrorIs(t, err, hugoErr)
	require.Equal(t, BuildStatusFailed, res.Status)
	require.Equal(t, metrics.ResultFatal, rec.stages[StageRunHugo])
	require.Equal(t, metrics.BuildOutcomeFailed, rec.outcome)

	_, ok := res.Stage(StageVerify)
	require.False(t, ok)
}

func TestRunCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{files: staticSite}
	rec := newRecordingRecorder()
	res, err := NewBuildService().WithRunner(runner).WithRecorder(rec).Run(ctx,
		BuildRequest{Composed: composeDefault(), BaseDir: newSite(t)})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, BuildStatusCancelled, res.Status)
	require.Empty(t, runner.calls)
	require.Equal(t, metrics.BuildOutcomeCanceled, rec.outcome)
	require.Equal(t, metrics.ResultCanceled, res.Stages[0].Result)
}

func TestRunIDsAreUnique(t *testing.T) {
	svc := NewBuildService().WithRunner(&fakeRunner{})
	req := BuildRequest{Composed: composeDefault(), BaseDir: newSite(t), Options: BuildOptions{SkipRender: true}}

	a, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestBasePath(t *testing.T) {
	require.Equal(t, "/", BasePath("/"))
	require.Equal(t, "/", BasePath("https://example.com"))
	require.Equal(t, "/docs/", BasePath("https://example.com/docs/"))
	require.Equal(t, "/", BasePath("%zz"))
}
