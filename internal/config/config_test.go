package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/tokasim/internal/reactor"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactor.yaml")

	cfg := reactor.DefaultConfig()
	cfg.MajorRadius = 4.5
	cfg.ToroidalField = 9.0
	cfg.FirstWallMaterial = "beryllium"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, loaded)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("major_radius: 3.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MajorRadius != 3.5 {
		t.Errorf("expected major radius 3.5, got %g", cfg.MajorRadius)
	}
	if cfg.ToroidalField != reactor.DefaultConfig().ToroidalField {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadEmptyFileIsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != reactor.DefaultConfig() {
		t.Error("empty file should load the defaults")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(path, []byte("mojor_radius: 3.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(names))
	}

	for _, name := range names {
		cfg, ok := GetPreset(name)
		if !ok {
			t.Fatalf("preset %s missing", name)
		}
		// Every preset must build a valid simulator.
		if _, err := reactor.New(cfg); err != nil {
			t.Errorf("preset %s is invalid: %v", name, err)
		}
	}

	if _, ok := GetPreset("sparc"); ok {
		t.Error("expected unknown preset to miss")
	}
}
