package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg RhythmConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	want := DefaultRhythmConfig()

	if cfg.Judgment != want.Judgment || cfg.Scoring != want.Scoring || cfg.Playfield != want.Playfield || cfg.TickRate != want.TickRate {
		t.Errorf("embedded defaults drifted from DefaultRhythmConfig:\n got %+v\nwant %+v", cfg, want)
	}
	if strings.Join(cfg.Keys.Lanes, ",") != strings.Join(want.Keys.Lanes, ",") {
		t.Errorf("lane keys = %v, want %v", cfg.Keys.Lanes, want.Keys.Lanes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded defaults invalid: %v", err)
	}
}

func TestRules(t *testing.T) {
	r := DefaultRhythmConfig().Rules()
	if r.PerfectMs != 50 || r.GreatMs != 120 || r.GraceMs != 1000 {
		t.Errorf("windows = %d/%d/%d", r.PerfectMs, r.GreatMs, r.GraceMs)
	}
	if r.ScorePerfect != 100 || r.ScoreGreat != 50 || r.ComboStep != 10 || r.MaxMultiplier != 8 {
		t.Errorf("scoring = %+v", r)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *RhythmConfig)
		wantErr string
	}{
		{"defaults", func(c *RhythmConfig) {}, ""},
		{"perfect wider than great", func(c *RhythmConfig) { c.Judgment.PerfectMs = 200 }, "exceeds great_ms"},
		{"zero window", func(c *RhythmConfig) { c.Judgment.GreatMs = 0 }, "must be positive"},
		{"negative grace", func(c *RhythmConfig) { c.Judgment.GraceMs = -1 }, "grace_ms"},
		{"three lanes", func(c *RhythmConfig) { c.Keys.Lanes = []string{"a", "s", "d"} }, "needs 4 keys"},
		{"duplicate key", func(c *RhythmConfig) { c.Keys.Pause = []string{"a"} }, "bound to both"},
		{"hit zone", func(c *RhythmConfig) { c.Playfield.HitZone = 150 }, "hit_zone"},
		{"tick rate", func(c *RhythmConfig) { c.TickRate = 0 }, "tick_rate"},
		{"combo step", func(c *RhythmConfig) { c.Scoring.ComboStep = 0 }, "combo_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRhythmConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rhythm.yaml")
	data := "judgment:\n  great_ms: 150\nkeys:\n  lanes: [d, f, j, k]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Judgment.GreatMs != 150 {
		t.Errorf("great_ms = %d, want 150", cfg.Judgment.GreatMs)
	}
	if cfg.Judgment.PerfectMs != 50 {
		t.Errorf("perfect_ms = %d, want default 50", cfg.Judgment.PerfectMs)
	}
	if got := strings.Join(cfg.Keys.Lanes, ""); got != "dfjk" {
		t.Errorf("lanes = %s, want dfjk", got)
	}
	if len(cfg.Keys.Pause) != 2 {
		t.Errorf("pause keys = %v, want defaults", cfg.Keys.Pause)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("judgment: [oops"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("tick_rate: 0\n"), 0o644)
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join("configs", FileName), []byte("tick_rate: 30\n"), 0o644)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickRate != 30 {
		t.Errorf("tick_rate = %d, want 30 from ./configs", cfg.TickRate)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rhythm.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("second WriteDefault should refuse to overwrite")
	}
	if _, err := Load(path); err != nil {
		t.Errorf("written default does not load: %v", err)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"NORMAL", DifficultyNormal},
		{"medium", DifficultyNormal},
		{" Hard ", DifficultyHard},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParsePreset("extreme"); err == nil {
		t.Error("expected error for unknown preset")
	}

	prevHi := 0.0
	for _, p := range Presets {
		lo, hi := DensityBand(p)
		if lo < prevHi || hi <= lo {
			t.Errorf("band %s = [%g, %g] overlaps or is empty", p, lo, hi)
		}
		prevHi = hi
		if d := DensityForPreset(p, 2); d != hi {
			t.Errorf("level is not clamped: %g", d)
		}
		if d := DensityForPreset(p, 0.5); d != lo+(hi-lo)/2 {
			t.Errorf("midpoint density = %g", d)
		}
	}
	if SongDifficulty(DifficultyHard) != "HARD" || SongDifficulty(DifficultyNormal) != "MEDIUM" {
		t.Error("unexpected song difficulty labels")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvDB, "")

	if got := GetEnvInt(EnvFPS, 60); got != 30 {
		t.Errorf("GetEnvInt = %d, want 30", got)
	}
	if got := GetEnv(EnvDB, "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}

	t.Setenv(EnvFPS, "fast")
	if got := GetEnvInt(EnvFPS, 60); got != 60 {
		t.Errorf("GetEnvInt with garbage = %d, want 60", got)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("BITHERO_CHARTS=/tmp/charts\n"), 0o644)
	t.Setenv(EnvCharts, "")
	os.Unsetenv(EnvCharts)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv(EnvCharts); got != "/tmp/charts" {
		t.Errorf("%s = %q", EnvCharts, got)
	}
}
