package config

import (
	_ "embed"
)

//go:embed defaults/tilechain.yaml
var defaultTileChainYAML []byte

// DefaultTileChainConfig is the fallback when no file can be read.
func DefaultTileChainConfig() TileChainConfig {
	return TileChainConfig{
		Pace:   PaceNormal,
		Pacing: PacingFor(PaceNormal),
		Theme: ThemeConfig{
			Name:   "classic",
			Glyphs: GlyphsBlocks,
		},
	}
}
