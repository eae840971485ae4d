package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MOVIE_DATA_DIR", dir)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_TIMESTAMPS", "false")

	cfg, err := LoadFile(filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.LogTimestamps {
		t.Errorf("LogTimestamps = true, want false")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "MOVIE_DATA_DIR=" + dir + "\nPORT=:7070\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"MOVIE_DATA_DIR", "PORT", "LOG_TIMESTAMPS"} {
		key := key
		prev, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
	}

	cfg, err := LoadFile(envFile)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if !cfg.LogTimestamps {
		t.Errorf("LogTimestamps should default to true")
	}
}

func TestInvalidBool(t *testing.T) {
	t.Setenv("LOG_TIMESTAMPS", "sometimes")
	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.env")); err == nil {
		t.Fatal("expected error for invalid LOG_TIMESTAMPS")
	}
}

func TestResolveDataDir(t *testing.T) {
	dir := t.TempDir()
	got := resolveDataDir([]string{"", filepath.Join(dir, "nope"), dir}, "fallback")
	if got != dir {
		t.Errorf("resolveDataDir = %q, want %q", got, dir)
	}
	if got := resolveDataDir([]string{filepath.Join(dir, "nope")}, "fallback"); got != "fallback" {
		t.Errorf("resolveDataDir fallback = %q", got)
	}
}
