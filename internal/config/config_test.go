package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
remote:
  head: origin/develop
days: 30
extra_refs:
  - origin/release-1.2
  - origin/hotfix
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote.Head != "origin/develop" {
		t.Fatalf("Remote.Head = %q, want origin/develop", cfg.Remote.Head)
	}
	if cfg.Days != 30 {
		t.Fatalf("Days = %d, want 30", cfg.Days)
	}
	want := []string{"origin/release-1.2", "origin/hotfix"}
	if !slices.Equal(cfg.ExtraRefs, want) {
		t.Fatalf("ExtraRefs = %#v, want %#v", cfg.ExtraRefs, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Remote.Head != "" || cfg.Days != 0 || len(cfg.ExtraRefs) != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, "remote: [")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestLoadNegativeDays(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, "days: -1")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected a validation error")
	}
}
