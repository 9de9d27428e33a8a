package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starforged.toml")
	content := `
[simulation]
max_particles = 4096

[effects]
keep_invalid_until_finished = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.MaxParticles != 4096 {
		t.Fatalf("max particles = %d, want 4096", cfg.Simulation.MaxParticles)
	}
	if !cfg.Effects.KeepInvalidUntilFinished {
		t.Fatal("policy flag not parsed")
	}
	// Untouched sections keep their defaults.
	if cfg.Simulation.TickRate != 16*time.Millisecond {
		t.Fatalf("tick rate = %v, want default", cfg.Simulation.TickRate)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("log level = %q, want default", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}
