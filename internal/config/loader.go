package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in each config directory.
const FileName = "tilechain.yaml"

// LoadTileChain loads settings.
// Search order: customPath -> ~/.tilechain/configs/tilechain.yaml -> ./configs/tilechain.yaml -> embedded default
func LoadTileChain(customPath string) (TileChainConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TileChainConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return TileChainConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := parse(defaultTileChainYAML)
	if err != nil {
		return DefaultTileChainConfig(), nil
	}
	return cfg, nil
}

// parse decodes a settings file on top of the defaults and applies its
// pace preset.
func parse(data []byte) (TileChainConfig, error) {
	cfg := DefaultTileChainConfig()
	cfg.Pace = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TileChainConfig{}, err
	}
	pace, err := ParsePace(string(cfg.Pace))
	if err != nil {
		return TileChainConfig{}, err
	}
	ApplyPace(&cfg, pace)
	if err := cfg.Validate(); err != nil {
		return TileChainConfig{}, err
	}
	cfg.LevelsDir = ExpandHome(cfg.LevelsDir)
	return cfg, nil
}

// Validate rejects negative pacing and unknown glyph styles.
func (c TileChainConfig) Validate() error {
	p := c.Pacing
	if p.ClearTicks < 0 || p.FallTicks < 0 || p.PopupTicks < 0 || p.FlashTicks < 0 {
		return fmt.Errorf("config: pacing ticks must not be negative")
	}
	switch c.Theme.Glyphs {
	case "", GlyphsBlocks, GlyphsLetters:
	default:
		return fmt.Errorf("config: unknown glyph style %q", c.Theme.Glyphs)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// HomeDir returns ~/.tilechain, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilechain")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
