// Package formats parses level files.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tilechain/internal/games/tilechain/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk shape of a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Target   int               `yaml:"target"`
	Moves    int               `yaml:"moves"`
	MinMatch int               `yaml:"min_match,omitempty"`
	Palette  []YAMLSwatch      `yaml:"palette"`
	Layout   []string          `yaml:"layout,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize is the board size. Ignored when a layout is given.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLSwatch is one palette entry.
type YAMLSwatch struct {
	Color  string `yaml:"color"`
	Points int    `yaml:"points"`
}

// Parsed is a decoded level file.
type Parsed struct {
	Level    core.Level
	Metadata map[string]string
}

// ParseYAML decodes and validates a level file.
func ParseYAML(data []byte) (Parsed, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Parsed{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	palette := make(core.Palette, 0, len(yl.Palette))
	for i, ys := range yl.Palette {
		c, ok := core.ParseColor(ys.Color)
		if !ok {
			return Parsed{}, fmt.Errorf("palette entry %d: unknown color %q", i+1, ys.Color)
		}
		palette = append(palette, core.Swatch{Color: c, Points: ys.Points})
	}

	lvl := core.Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Rows:     yl.Size.Rows,
		Cols:     yl.Size.Cols,
		Palette:  palette,
		Target:   yl.Target,
		Moves:    yl.Moves,
		MinMatch: yl.MinMatch,
		Layout:   yl.Layout,
	}.Normalize()
	if err := lvl.Validate(); err != nil {
		return Parsed{}, err
	}

	return Parsed{Level: lvl, Metadata: yl.Metadata}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
