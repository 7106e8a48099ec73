package storage

import (
	"os"
	"path/filepath"
	"testing"

	tc "github.com/vovakirdan/tilechain/internal/games/tilechain/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStarsOnlyImprove(t *testing.T) {
	store := openTemp(t)

	if got, err := store.BestStars("01"); err != nil || got != 0 {
		t.Fatalf("BestStars on empty db = %d, %v", got, err)
	}

	steps := []struct{ save, want int }{
		{2, 2},
		{1, 2},
		{3, 3},
		{2, 3},
	}
	for _, s := range steps {
		if err := store.SaveStars("01", s.save); err != nil {
			t.Fatalf("SaveStars(%d): %v", s.save, err)
		}
		got, err := store.BestStars("01")
		if err != nil {
			t.Fatal(err)
		}
		if got != s.want {
			t.Errorf("after saving %d: best = %d, want %d", s.save, got, s.want)
		}
	}

	all, err := store.AllStars()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all["01"] != 3 {
		t.Errorf("AllStars = %v", all)
	}
}

func TestStoreBacksProgress(t *testing.T) {
	store := openTemp(t)
	p := tc.NewProgress(store)

	wrote, err := p.Record("lvl", 2)
	if err != nil || !wrote {
		t.Fatalf("first record: %v, %v", wrote, err)
	}
	wrote, err = p.Record("lvl", 2)
	if err != nil || wrote {
		t.Errorf("equal rating written: %v, %v", wrote, err)
	}
	if best, _ := p.Best("lvl"); best != 2 {
		t.Errorf("best = %d", best)
	}
}

func TestScoresPerLevel(t *testing.T) {
	store := openTemp(t)

	runs := []struct {
		level        string
		score, stars int
	}{
		{"a", 100, 3},
		{"a", 50, 2},
		{"a", 200, 2},
		{"b", 500, 3},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r.level, r.score, r.stars); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	scores, err := store.TopScores("a", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, want)
		}
	}
	if scores[0].Stars != 2 || scores[0].LevelID != "a" {
		t.Errorf("top entry %+v", scores[0])
	}

	if top, _ := store.TopScores("a", 1); len(top) != 1 {
		t.Errorf("limit ignored: %d rows", len(top))
	}
	if hs, _ := store.HighScore("b"); hs != 500 {
		t.Errorf("HighScore(b) = %d", hs)
	}
	if hs, _ := store.HighScore("none"); hs != 0 {
		t.Errorf("HighScore(none) = %d", hs)
	}
}

func TestLevelStatsAndClear(t *testing.T) {
	store := openTemp(t)
	store.SaveScore("a", 100, 3)
	store.SaveScore("a", 300, 2)
	store.SaveStars("a", 3)
	store.SaveStars("only-stars", 1)

	stats, err := store.AllLevelStats()
	if err != nil {
		t.Fatal(err)
	}
	a := stats["a"]
	if a == nil || a.Runs != 2 || a.HighScore != 300 || a.AvgScore != 200 || a.BestStars != 3 {
		t.Errorf("stats[a] = %+v", a)
	}
	if s := stats["only-stars"]; s == nil || s.BestStars != 1 || s.Runs != 0 {
		t.Errorf("stats[only-stars] = %+v", s)
	}

	if err := store.ClearScores("a"); err != nil {
		t.Fatal(err)
	}
	if best, _ := store.BestStars("a"); best != 0 {
		t.Errorf("stars survived clear: %d", best)
	}
	if best, _ := store.BestStars("only-stars"); best != 1 {
		t.Errorf("other level cleared too: %d", best)
	}

	if err := store.ClearScores(""); err != nil {
		t.Fatal(err)
	}
	if all, _ := store.AllStars(); len(all) != 0 {
		t.Errorf("full clear left %v", all)
	}
}
