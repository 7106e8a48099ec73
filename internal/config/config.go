// Package config loads tilechain settings from YAML.
package config

// TileChainConfig is the top-level settings file.
type TileChainConfig struct {
	// Pace names a pacing preset. When set it replaces the Pacing block.
	Pace      PacePreset   `yaml:"pace,omitempty"`
	Pacing    PacingConfig `yaml:"pacing"`
	LevelsDir string       `yaml:"levels_dir,omitempty"`
	Theme     ThemeConfig  `yaml:"theme"`
}

// PacingConfig sets how many ticks the shell waits between engine steps
// and how long visual cues stay up.
type PacingConfig struct {
	ClearTicks int `yaml:"clear_ticks"` // between two tile clears
	FallTicks  int `yaml:"fall_ticks"`  // between two column refills
	PopupTicks int `yaml:"popup_ticks"` // lifetime of a floating "+N"
	FlashTicks int `yaml:"flash_ticks"` // lifetime of status messages
}

// ThemeConfig selects how tiles look.
type ThemeConfig struct {
	Name   string `yaml:"name"`   // color theme preset
	Glyphs string `yaml:"glyphs"` // "blocks" or "letters"
}

// Glyph styles.
const (
	GlyphsBlocks  = "blocks"
	GlyphsLetters = "letters"
)
