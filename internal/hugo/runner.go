package hugo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/sch1zk/docsexport/internal/foundation/errors"
	"github.com/sch1zk/docsexport/internal/logfields"
)

// Runner executes the hugo binary.
type Runner interface {
	Run(ctx context.Context, args ...string) error
}

// ExecRunner runs hugo as a subprocess. The process is killed when ctx is canceled.
type ExecRunner struct {
	Binary string // defaults to "hugo"
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner that streams hugo output to stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Binary: "hugo", Stdout: os.Stderr, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	bin := r.Binary
	if bin == "" {
		bin = "hugo"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return errors.WrapError(err, errors.CategoryHugo, "hugo binary not found").
			Fatal().
			WithContext("binary", bin).
			Build()
	}

	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 -- args are built by BuildArgs
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	slog.Info("Running Hugo", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Error("Hugo failed", logfields.Error(err))
		return errors.WrapError(err, errors.CategoryHugo, "hugo command failed").
			Fatal().
			WithContext("args", strings.Join(args, " ")).
			Build()
	}
	return nil
}
