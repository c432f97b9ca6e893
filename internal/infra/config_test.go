package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults without file", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Replay.Output != "mbp_output.csv" {
			t.Errorf("default output = %s", cfg.Replay.Output)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("default level = %s", cfg.Logging.Level)
		}
	})

	t.Run("File values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "replay:\n  output: out.csv\n  archive_path: out.db\nlogging:\n  level: debug\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Replay.Output != "out.csv" || cfg.Replay.ArchivePath != "out.db" {
			t.Errorf("replay config = %+v", cfg.Replay)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("level = %s", cfg.Logging.Level)
		}
	})

	t.Run("Env overrides file", func(t *testing.T) {
		t.Setenv("MBP_OUTPUT", "env.csv")
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Replay.Output != "env.csv" {
			t.Errorf("output = %s; want env.csv", cfg.Replay.Output)
		}
	})

	t.Run("Missing explicit file is an error", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("Bad log level is rejected", func(t *testing.T) {
		t.Setenv("MBP_LOG_LEVEL", "loud")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected validation error for unknown level")
		}
	})
}
