// Package build runs a documentation export: it resolves paths, writes the
// Hugo project for a composed configuration, renders it, and verifies the
// resulting static bundle. Each stage is timed and reported to a
// metrics.Recorder.
package build
