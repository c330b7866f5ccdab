package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search directory.
const FileName = "rhythm.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.bithero/configs/rhythm.yaml -> ./configs/rhythm.yaml -> embedded default.
// Files are layered over the defaults, so a file only needs the keys it changes.
// A custom path that is missing, unparsable or invalid is an error; the
// implicit locations are skipped when they cannot be used.
func Load(customPath string) (RhythmConfig, error) {
	base := embeddedDefault()

	if customPath != "" {
		cfg, err := loadFile(customPath, base)
		if err != nil {
			return base, err
		}
		if err := cfg.Validate(); err != nil {
			return base, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		cfg, err := loadFile(path, base)
		if err != nil {
			continue
		}
		if cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded
// defaults if it cannot be used.
func embeddedDefault() RhythmConfig {
	cfg := DefaultRhythmConfig()
	if err := yaml.Unmarshal(defaultRhythmYAML, &cfg); err != nil {
		return DefaultRhythmConfig()
	}
	if cfg.Validate() != nil {
		return DefaultRhythmConfig()
	}
	return cfg
}

func loadFile(path string, base RhythmConfig) (RhythmConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := base
	cfg.Keys = KeyConfig{
		Lanes:   append([]string(nil), base.Keys.Lanes...),
		Pause:   append([]string(nil), base.Keys.Pause...),
		Restart: append([]string(nil), base.Keys.Restart...),
		Quit:    append([]string(nil), base.Keys.Quit...),
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// DataDir returns ~/.bithero, or empty if the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bithero")
}

// WriteDefault writes the embedded default configuration to path, creating
// parent directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultRhythmYAML, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
