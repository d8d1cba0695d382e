package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Template != DefaultTemplate {
		t.Error("Template should fall back to the default")
	}
	if cfg.Format != "auto" {
		t.Errorf("Format = %q, want auto", cfg.Format)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should have a default")
	}
}

func TestExpandHome(t *testing.T) {
	got := expandHome("/home/alex", "~/slack/archive.db")
	if !strings.HasPrefix(got, "/home/alex/") {
		t.Errorf("expandHome = %q, want path under home", got)
	}
	abs := expandHome("/home/alex", "/var/data/archive.db")
	if abs != "/var/data/archive.db" {
		t.Errorf("absolute path should pass through, got %q", abs)
	}
}
