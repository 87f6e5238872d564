package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-stacker/internal/engine"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg StackerConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultStackerConfig()) {
		t.Errorf("embedded default = %+v, hardcoded = %+v", cfg, DefaultStackerConfig())
	}
}

func TestToEngine(t *testing.T) {
	cfg, err := DefaultStackerConfig().ToEngine()
	if err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if cfg.Width != 10 || cfg.VisibleHeight != 20 || cfg.HiddenRows != 3 {
		t.Errorf("board dims = %dx%d+%d", cfg.Width, cfg.VisibleHeight, cfg.HiddenRows)
	}
	if cfg.Gravity != 17 || cfg.SoftDrop != engine.Scale {
		t.Errorf("rates = %d/%d", cfg.Gravity, cfg.SoftDrop)
	}
}

func TestToEngineRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StackerConfig)
	}{
		{"zero gravity", func(c *StackerConfig) { c.Physics.Gravity = 0 }},
		{"negative soft drop", func(c *StackerConfig) { c.Physics.SoftDrop = -5 }},
		{"negative lock delay", func(c *StackerConfig) { c.Physics.LockDelayTicks = -1 }},
		{"narrow board", func(c *StackerConfig) { c.Board.Width = 2 }},
		{"no hidden rows", func(c *StackerConfig) { c.Board.HiddenRows = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultStackerConfig()
			tc.mutate(&cfg)
			if _, err := cfg.ToEngine(); !errors.Is(err, engine.ErrConfiguration) {
				t.Errorf("error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("board:\n  width: 12\n  visible_height: 22\n  hidden_rows: 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.VisibleHeight != 22 || cfg.Board.HiddenRows != 4 {
		t.Errorf("board = %+v", cfg.Board)
	}
}

func TestLoadMissingCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config path should be an error")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		check  func(t *testing.T, base, got StackerConfig)
	}{
		{DifficultyEasy, func(t *testing.T, base, got StackerConfig) {
			if got.Physics.Gravity >= base.Physics.Gravity {
				t.Error("easy should slow gravity")
			}
			if got.Physics.LockDelayTicks <= base.Physics.LockDelayTicks {
				t.Error("easy should lengthen lock delay")
			}
		}},
		{DifficultyNormal, func(t *testing.T, base, got StackerConfig) {
			if !reflect.DeepEqual(got, base) {
				t.Error("normal should leave values untouched")
			}
		}},
		{DifficultyHard, func(t *testing.T, base, got StackerConfig) {
			if got.Physics.Gravity <= base.Physics.Gravity {
				t.Error("hard should speed gravity up")
			}
			if got.Physics.MaxLockResets > 8 {
				t.Errorf("hard lock resets = %d, want <= 8", got.Physics.MaxLockResets)
			}
		}},
		{DifficultyFixed, func(t *testing.T, base, got StackerConfig) {
			if got.Physics.Gravity != 5 || got.Physics.LockDelayTicks != 60 {
				t.Errorf("fixed physics = %+v", got.Physics)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			base := DefaultStackerConfig()
			got := base
			ApplyPreset(&got, tc.preset)
			tc.check(t, base, got)

			// Every preset must still produce a valid engine config.
			if _, err := got.ToEngine(); err != nil {
				t.Errorf("preset %s breaks the config: %v", tc.preset, err)
			}
		})
	}
}

func TestValidPreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		if !ValidPreset(name) {
			t.Errorf("ValidPreset(%q) = false", name)
		}
	}
	if ValidPreset("nightmare") {
		t.Error("unknown preset accepted")
	}
}
