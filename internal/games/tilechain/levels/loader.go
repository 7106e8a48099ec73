// Package levels loads the level catalogue: the levels built into the
// binary plus any files found in user level directories.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/vovakirdan/tilechain/internal/games/tilechain/core"
	"github.com/vovakirdan/tilechain/internal/games/tilechain/levels/formats"
)

//go:embed data/*.yaml
var builtin embed.FS

// Level is a catalogue entry.
type Level struct {
	core.Level
	Metadata map[string]string
	Source   string // file the level came from
}

// SkippedFile records a level file that could not be used.
type SkippedFile struct {
	Path string
	Err  error
}

// Loader reads levels from the built-in set followed by extra directories.
// A level in a later source replaces one with the same ID.
type Loader struct {
	sources []source
	Skipped []SkippedFile
}

type source struct {
	name string
	fsys fs.FS
}

// NewLoader returns a loader over the built-in levels and dirs. Missing
// directories are ignored.
func NewLoader(dirs ...string) *Loader {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(err)
	}
	l := &Loader{sources: []source{{name: "builtin", fsys: sub}}}
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			continue
		}
		l.sources = append(l.sources, source{name: d, fsys: os.DirFS(d)})
	}
	return l
}

// NewLoaderFS reads only from fsys. Used for tests and custom packs.
func NewLoaderFS(name string, fsys fs.FS) *Loader {
	return &Loader{sources: []source{{name: name, fsys: fsys}}}
}

// LoadAll returns every valid level sorted by ID. Unreadable or invalid
// files are listed in Skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	l.Skipped = nil
	byID := make(map[string]Level)

	for _, src := range l.sources {
		err := fs.WalkDir(src.fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
				return nil
			}
			lvl, err := loadFile(src, p)
			if err != nil {
				l.Skipped = append(l.Skipped, SkippedFile{Path: path.Join(src.name, p), Err: err})
				return nil
			}
			byID[lvl.ID] = lvl
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("levels: walking %s: %w", src.name, err)
		}
	}

	out := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	slices.SortFunc(out, func(a, b Level) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

func loadFile(src source, p string) (Level, error) {
	data, err := fs.ReadFile(src.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}
	return Level{Level: parsed.Level, Metadata: parsed.Metadata, Source: path.Join(src.name, p)}, nil
}

// LoadFile parses a single level file from disk.
func LoadFile(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", filePath, err)
	}
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(filePath)))
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", filePath, err)
	}
	return Level{Level: parsed.Level, Metadata: parsed.Metadata, Source: filePath}, nil
}

// LoadByID returns the level with the given ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	if i := Index(all, id); i >= 0 {
		return all[i], nil
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, lvl := range all {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Upsert returns list with lvl in place of the level sharing its ID, or
// with lvl appended when the ID is new.
func Upsert(list []Level, lvl Level) []Level {
	out := slices.Clone(list)
	if i := Index(out, lvl.ID); i >= 0 {
		out[i] = lvl
		return out
	}
	return append(out, lvl)
}

// Index returns the position of id in list, or -1.
func Index(list []Level, id string) int {
	return slices.IndexFunc(list, func(l Level) bool { return l.ID == id })
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

func parseByExtension(data []byte, ext string) (formats.Parsed, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Parsed{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
