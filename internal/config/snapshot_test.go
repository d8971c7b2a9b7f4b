package config

import "testing"

func TestSnapshotStableAcrossNormalizationVariants(t *testing.T) {
	a, err := Parse([]byte("build:\n  output: EXPORT\n"))
	if err != nil {
		t.Fatalf("parse a: %v", err)
	}
	b, err := Parse([]byte("build:\n  output: export\n  images:\n    unoptimized: true\ndocs:\n  search: false\n"))
	if err != nil {
		t.Fatalf("parse b: %v", err)
	}
	if a.Snapshot() != b.Snapshot() {
		t.Fatalf("expected snapshots equal, got\nA=%s\nB=%s", a.Snapshot(), b.Snapshot())
	}
}

func TestSnapshotDetectsMeaningfulChange(t *testing.T) {
	c := Default()
	snap1 := c.Snapshot()
	c.Docs.Search = Bool(true)
	if snap1 == c.Snapshot() {
		t.Fatalf("expected snapshot change after enabling search")
	}
}

func TestSnapshotIgnoresLogging(t *testing.T) {
	c := Default()
	snap1 := c.Snapshot()
	c.Logging.Level = LogLevelDebug
	if snap1 != c.Snapshot() {
		t.Fatalf("expected logging changes not to affect snapshot")
	}
}
