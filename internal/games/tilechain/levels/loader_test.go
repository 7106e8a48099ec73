package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tilechain/internal/games/tilechain/core"
)

const sampleLevel = `id: "t-1"
name: "Sample"
size: {rows: 4, cols: 5}
target: 90
moves: 3
palette:
  - {color: red, points: 10}
  - {color: b, points: 20}
`

func TestBuiltinLevelsLoad(t *testing.T) {
	l := NewLoader()
	all, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(l.Skipped) != 0 {
		t.Fatalf("built-in files skipped: %+v", l.Skipped)
	}
	if len(all) < 5 {
		t.Fatalf("got %d built-in levels", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("levels not sorted: %s before %s", all[i-1].ID, all[i].ID)
		}
	}
	for _, lvl := range all {
		if err := lvl.Validate(); err != nil {
			t.Errorf("%s: %v", lvl.ID, err)
		}
		if _, err := core.Start(lvl.Level, fixed(0), nil); err != nil {
			t.Errorf("%s does not start: %v", lvl.ID, err)
		}
	}
}

type fixed int

func (f fixed) Intn(n int) int { return int(f) % n }

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":        {Data: []byte(sampleLevel)},
		"notes.txt":     {Data: []byte("ignored")},
		"broken.yml":    {Data: []byte("id: [")},
		"nested/b.yaml": {Data: []byte("id: t-0\nsize: {rows: 3, cols: 3}\ntarget: 10\npalette: [{color: green, points: 5}]\n")},
		"invalid.yaml":  {Data: []byte("id: bad\nsize: {rows: 3, cols: 3}\ntarget: 0\npalette: [{color: red, points: 1}]\n")},
		"badcolor.yaml": {Data: []byte("id: bad2\nsize: {rows: 3, cols: 3}\ntarget: 5\npalette: [{color: teal, points: 1}]\n")},
	}
	l := NewLoaderFS("test", fsys)

	ids, err := l.ListIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "t-0" || ids[1] != "t-1" {
		t.Errorf("ids = %v", ids)
	}
	if len(l.Skipped) != 3 {
		t.Errorf("skipped %d files, want 3: %+v", len(l.Skipped), l.Skipped)
	}

	lvl, err := l.LoadByID("t-1")
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Rows != 4 || lvl.Cols != 5 || lvl.MinMatch != core.DefaultMinMatch {
		t.Errorf("level %+v", lvl.Level)
	}
	if sw, ok := lvl.Palette.Lookup(core.ColorBlue); !ok || sw.Points != 20 {
		t.Errorf("palette %s", lvl.Palette)
	}

	if _, err := l.LoadByID("missing"); err == nil {
		t.Error("missing level found")
	}
}

func TestUserDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	override := "id: \"01-first-steps\"\nname: Custom\nsize: {rows: 3, cols: 3}\ntarget: 10\nmoves: 1\npalette: [{color: red, points: 1}]\n"
	if err := os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := NewLoader(dir, filepath.Join(dir, "does-not-exist")).LoadByID("01-first-steps")
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Name != "Custom" || lvl.Rows != 3 {
		t.Errorf("override not applied: %+v", lvl.Level)
	}
}

func TestLoadFileReportsInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvl.yaml")
	body := "id: x\nlayout: [\"RG\", \"R\"]\ntarget: 10\npalette: [{color: red, points: 1}, {color: green, points: 1}]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, core.ErrInvalidLevel) {
		t.Errorf("ragged layout loaded: %v", err)
	}
}

func TestUpsert(t *testing.T) {
	list := []Level{
		{Level: core.Level{ID: "a", Name: "A"}},
		{Level: core.Level{ID: "b", Name: "B"}},
	}

	got := Upsert(list, Level{Level: core.Level{ID: "a", Name: "Mine"}})
	if len(got) != 2 || got[0].Name != "Mine" || got[1].ID != "b" {
		t.Errorf("replace: %+v", got)
	}
	if list[0].Name != "A" {
		t.Error("Upsert modified its input")
	}

	got = Upsert(list, Level{Level: core.Level{ID: "c"}})
	if len(got) != 3 || got[2].ID != "c" {
		t.Errorf("append: %+v", got)
	}
}
