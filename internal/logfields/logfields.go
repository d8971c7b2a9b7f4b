package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutputMode = "output_mode"
	KeyDistDir    = "dist_dir"
	KeySearch     = "search"
	KeyOutcome    = "outcome"
	KeyIssues     = "issues"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func OutputMode(m string) slog.Attr { return slog.String(KeyOutputMode, m) }
func DistDir(d string) slog.Attr { return slog.String(KeyDistDir, d) }
func Search(enabled bool) slog.Attr { return slog.Bool(KeySearch, enabled) }
func Outcome(o string) slog.Attr { return slog.String(KeyOutcome, o) }
func Issues(n int) slog.Attr { return slog.Int(KeyIssues, n) }
func Duration(d time.Duration) slog.Attr { return DurationMS(float64(d.Microseconds()) / 1000) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
