package core

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

// recorder collects notifications in arrival order.
type recorder struct {
	events []Event
}

func (r *recorder) OnTileCleared(pos Position, points int) {
	r.events = append(r.events, Event{Kind: EventTileCleared, Pos: pos, Points: points})
}

func (r *recorder) OnNoMatch() {
	r.events = append(r.events, Event{Kind: EventNoMatch})
}

func (r *recorder) OnRefillStep(pos Position, sw Swatch) {
	r.events = append(r.events, Event{Kind: EventRefillStep, Pos: pos, Swatch: sw})
}

func (r *recorder) OnLevelComplete(stars, score int) {
	r.events = append(r.events, Event{Kind: EventLevelComplete, Stars: stars, Score: score})
}

func (r *recorder) OnReshuffle(solvable bool) {
	r.events = append(r.events, Event{Kind: EventReshuffled, Solvable: solvable})
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) of(kind EventKind) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func redBlue() Palette {
	return Palette{{Color: ColorRed, Points: 10}, {Color: ColorBlue, Points: 20}}
}

func startLevel(t *testing.T, lvl Level, rng Source) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e, err := Start(lvl, rng, rec)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e, rec
}

func selectAll(t *testing.T, e *Engine, ps ...Position) {
	t.Helper()
	for _, p := range ps {
		if err := e.Select(p); err != nil {
			t.Fatalf("Select(%s): %v", p, err)
		}
	}
}

func TestStartInvariant(t *testing.T) {
	for seed := range int64(20) {
		lvl := Level{ID: "rand", Rows: 6, Cols: 7, Palette: testPalette, Target: 500, Moves: 10}
		e, _ := startLevel(t, lvl, rand.New(rand.NewSource(seed)))
		board := e.Board()
		for tile := range board.All() {
			if !tile.Alive {
				t.Fatalf("seed %d: dead tile at %s", seed, tile.Pos)
			}
			if _, ok := testPalette.Lookup(tile.Color); !ok {
				t.Fatalf("seed %d: color %s not in palette", seed, tile.Color)
			}
		}
		if !board.HasAnyMatch(DefaultMinMatch) && !e.Unsolvable() {
			t.Errorf("seed %d: no match and not flagged unsolvable", seed)
		}
		if e.State() != StateIdle {
			t.Errorf("seed %d: state %s after start", seed, e.State())
		}
	}
}

func TestStartRejectsInvalidLevel(t *testing.T) {
	tests := []Level{
		{Rows: 3, Cols: 3, Palette: testPalette, Target: 10},
		{ID: "a", Rows: 3, Cols: 3, Palette: testPalette},
		{ID: "a", Rows: 0, Cols: 3, Palette: testPalette, Target: 10},
		{ID: "a", Rows: 3, Cols: 3, Target: 10},
		{ID: "a", Rows: 3, Cols: 3, Palette: testPalette, Target: 10, Moves: -1},
	}
	for i, lvl := range tests {
		if _, err := Start(lvl, fixedSource(0), nil); !errors.Is(err, ErrInvalidLevel) {
			t.Errorf("case %d: got %v, want ErrInvalidLevel", i, err)
		}
	}
}

func TestSelectTwiceRestoresSelection(t *testing.T) {
	e, _ := startLevel(t, Level{ID: "t", Rows: 4, Cols: 4, Palette: redBlue(), Target: 100}, fixedSource(0))
	selectAll(t, e, P(0, 0))
	before := e.Selection()
	selectAll(t, e, P(2, 2), P(2, 2))
	if got := e.Selection(); !slices.Equal(got, before) {
		t.Errorf("selection %v, want %v", got, before)
	}
	selectAll(t, e, P(0, 0))
	if len(e.Selection()) != 0 {
		t.Errorf("selection not empty: %v", e.Selection())
	}
}

func TestContractErrors(t *testing.T) {
	e, _ := startLevel(t, Level{ID: "t", Rows: 4, Cols: 4, Palette: redBlue(), Target: 100}, fixedSource(0))

	if err := e.Select(P(4, 0)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Select out of bounds: %v", err)
	}
	if _, err := e.Confirm(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Confirm empty: %v", err)
	}

	selectAll(t, e, P(0, 0), P(1, 0), P(2, 0))
	ok, err := e.Confirm()
	if !ok || err != nil {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	if !e.Busy() {
		t.Fatal("engine not busy after a successful confirm")
	}
	if err := e.Select(P(3, 3)); !errors.Is(err, ErrBusy) {
		t.Errorf("Select mid-sequence: %v", err)
	}
	if _, err := e.Confirm(); !errors.Is(err, ErrBusy) {
		t.Errorf("Confirm mid-sequence: %v", err)
	}
	e.Run()
	if e.Busy() || e.State() != StateIdle {
		t.Errorf("state %s after draining", e.State())
	}
}

func TestConfirmShortSelectionIsNoMatch(t *testing.T) {
	e, rec := startLevel(t, Level{ID: "t", Rows: 4, Cols: 4, Palette: redBlue(), Target: 100, Moves: 5}, fixedSource(0))
	selectAll(t, e, P(0, 0), P(0, 1))

	ok, err := e.Confirm()
	if ok || err != nil {
		t.Fatalf("Confirm = %v, %v; want false, nil", ok, err)
	}
	if rec.count(EventNoMatch) != 1 {
		t.Errorf("got %d no-match events", rec.count(EventNoMatch))
	}
	s := e.Session()
	if s.Score != 0 || s.MovesRemaining != 5 || s.Stars != 3 {
		t.Errorf("session changed: %+v", s)
	}
	if len(e.Selection()) != 0 {
		t.Error("selection not cleared after failed confirm")
	}
	if _, ok := e.Step(); ok {
		t.Error("Step advanced after a failed confirm")
	}
}

func TestClearOrderAndScore(t *testing.T) {
	// Red tiles everywhere except a blue bottom-right.
	lvl := Level{
		ID:      "order",
		Palette: redBlue(),
		Target:  1000,
		Moves:   5,
		Layout: []string{
			"RRR",
			"RRR",
			"RRB",
		},
	}
	e, rec := startLevel(t, lvl, fixedSource(0))
	// Selected top-down: (0,2), (1,1), (0,1), (1,0). Heights 2,1,1,0.
	selectAll(t, e, P(0, 2), P(1, 1), P(0, 1), P(1, 0))
	if ok, err := e.Confirm(); !ok || err != nil {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}

	var clears []Position
	for st := range e.Steps() {
		if st.Kind == StepClear {
			clears = append(clears, st.Pos)
		}
	}
	want := []Position{P(1, 0), P(1, 1), P(0, 1), P(0, 2)}
	if !slices.Equal(clears, want) {
		t.Errorf("clear order %v, want %v", clears, want)
	}

	var notified []Position
	for _, ev := range rec.of(EventTileCleared) {
		notified = append(notified, ev.Pos)
		if ev.Points != 10 {
			t.Errorf("tile %s worth %d, want 10", ev.Pos, ev.Points)
		}
	}
	if !slices.Equal(notified, want) {
		t.Errorf("notification order %v, want %v", notified, want)
	}
	if s := e.Session(); s.Score != 40 || s.MovesRemaining != 4 {
		t.Errorf("session %+v, want score 40 moves 4", s)
	}
}

func TestThreeTilesScoreThirty(t *testing.T) {
	e, _ := startLevel(t, Level{ID: "t", Rows: 5, Cols: 5, Palette: redBlue(), Target: 100}, fixedSource(0))
	selectAll(t, e, P(1, 1), P(1, 2), P(2, 2))
	if ok, _ := e.Confirm(); !ok {
		t.Fatal("adjacent bend rejected")
	}
	e.Run()
	if got := e.Session().Score; got != 30 {
		t.Errorf("score %d, want 30", got)
	}

	// A red path (1,1)-(2,2)-(3,3) exists, but the picks skip it.
	selectAll(t, e, P(1, 1), P(3, 3), P(3, 4))
	if ok, _ := e.Confirm(); ok {
		t.Error("chain with a non-adjacent step accepted")
	}
}

func TestRefillAfterClearingBottomCell(t *testing.T) {
	// Row 0 reads, bottom to top: R P Y G B.
	lvl := Level{
		ID:       "column",
		MinMatch: 1,
		Target:   1000,
		Moves:    3,
		Palette: Palette{
			{Color: ColorRed, Points: 10},
			{Color: ColorGreen, Points: 20},
			{Color: ColorBlue, Points: 30},
			{Color: ColorYellow, Points: 40},
			{Color: ColorPurple, Points: 50},
		},
		Layout: []string{
			"BRR",
			"GRR",
			"YRR",
			"PRR",
			"RRR",
		},
	}
	e, rec := startLevel(t, lvl, fixedSource(0))
	selectAll(t, e, P(0, 0))
	if ok, err := e.Confirm(); !ok || err != nil {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	steps := e.Run()
	if len(steps) != 2 || steps[0].Kind != StepClear || steps[1].Kind != StepRefill {
		t.Fatalf("unexpected steps %+v", steps)
	}

	want := []Color{ColorPurple, ColorYellow, ColorGreen, ColorBlue, ColorRed}
	for col, c := range want {
		tile, err := e.TileAt(P(0, col))
		if err != nil {
			t.Fatal(err)
		}
		if !tile.Alive || tile.Color != c {
			t.Errorf("(0,%d) = %s alive=%v, want %s", col, tile.Color, tile.Alive, c)
		}
	}
	if n := rec.count(EventRefillStep); n != 5 {
		t.Errorf("got %d refill notifications, want 5", n)
	}
	if !e.Board().Stable() {
		t.Error("board has holes after the sequence")
	}
	if e.Session().Score != 10 {
		t.Errorf("score %d, want 10", e.Session().Score)
	}
}

func TestStackedClearsInOneColumn(t *testing.T) {
	lvl := Level{
		ID:       "stack",
		MinMatch: 2,
		Target:   1000,
		Palette:  testPalette,
		Layout: []string{
			"ORR",
			"PRR",
			"YRR",
			"BRR",
			"GRR",
		},
	}
	e, _ := startLevel(t, lvl, fixedSource(0))
	// Bottom two cells of row 0 are G (col 0) and B (col 1); recolor them
	// to match so the chain is legal.
	e.grid.Paint(P(0, 1), Swatch{Color: ColorGreen, Points: 20})
	selectAll(t, e, P(0, 1), P(0, 0))
	if ok, _ := e.Confirm(); !ok {
		t.Fatal("vertical pair rejected")
	}
	e.Run()

	want := []Color{ColorYellow, ColorPurple, ColorOrange, ColorRed, ColorRed}
	for col, c := range want {
		tile, _ := e.TileAt(P(0, col))
		if tile.Color != c {
			t.Errorf("(0,%d) = %s, want %s\n%s", col, tile.Color, c, e.Board())
		}
	}
}

func TestEndToEndCompletion(t *testing.T) {
	allRed := []string{"RRRRR", "RRRRR", "RRRRR", "RRRRR", "RRRRR"}
	chain := []Position{P(0, 0), P(1, 0), P(2, 0), P(3, 0)}

	tests := []struct {
		name      string
		moves     int
		wantStars int
	}{
		{"budget never exhausted", 5, 3},
		{"budget exhausted first", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := Level{ID: "e2e", Palette: redBlue(), Target: 100, Moves: tt.moves, Layout: allRed}
			e, rec := startLevel(t, lvl, fixedSource(0))

			selectAll(t, e, chain...)
			if ok, _ := e.Confirm(); !ok {
				t.Fatal("first chain rejected")
			}
			e.Run()
			if s := e.Session(); s.Score != 40 || s.Complete {
				t.Fatalf("after one chain: %+v", s)
			}

			for range 2 {
				selectAll(t, e, chain...)
				if ok, _ := e.Confirm(); !ok {
					t.Fatal("chain rejected")
				}
				e.Run()
			}

			s := e.Session()
			if s.Score != 120 || !s.Complete {
				t.Fatalf("final session %+v", s)
			}
			if e.State() != StateComplete {
				t.Errorf("state %s, want complete", e.State())
			}
			done := rec.of(EventLevelComplete)
			if len(done) != 1 {
				t.Fatalf("level complete fired %d times", len(done))
			}
			if done[0].Stars != tt.wantStars || done[0].Score != 120 {
				t.Errorf("level complete %+v, want stars %d score 120", done[0], tt.wantStars)
			}

			if err := e.Select(P(0, 0)); !errors.Is(err, ErrLevelComplete) {
				t.Errorf("Select after completion: %v", err)
			}
			if _, ok := e.Step(); ok {
				t.Error("Step advanced after completion")
			}
			if rec.count(EventLevelComplete) != 1 {
				t.Error("level complete fired again")
			}
		})
	}
}

func TestReshuffleOnStart(t *testing.T) {
	lvl := Level{ID: "stuck", Palette: testPalette, Target: 100, Layout: []string{"RGB", "BYR", "GRB"}}

	e, rec := startLevel(t, lvl, fixedSource(0))
	if e.Reshuffles() != 1 || e.Unsolvable() {
		t.Errorf("reshuffles=%d unsolvable=%v, want 1 false", e.Reshuffles(), e.Unsolvable())
	}
	if ev := rec.of(EventReshuffled); len(ev) != 1 || !ev[0].Solvable {
		t.Errorf("reshuffle events %+v", ev)
	}

	// Cycling draws give every cell a different color from the center.
	e, rec = startLevel(t, lvl, &cycleSource{})
	if e.Reshuffles() != 1 || !e.Unsolvable() {
		t.Errorf("reshuffles=%d unsolvable=%v, want 1 true", e.Reshuffles(), e.Unsolvable())
	}
	if ev := rec.of(EventReshuffled); len(ev) != 1 || ev[0].Solvable {
		t.Errorf("reshuffle events %+v", ev)
	}
	if e.State() != StateIdle {
		t.Errorf("unsolvable level should still start, state %s", e.State())
	}
}

// scriptSource hands out draws in order, then zeros.
type scriptSource struct{ draws []int }

func (s *scriptSource) Intn(n int) int {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

func TestReshuffleAfterRefill(t *testing.T) {
	lvl := Level{
		ID:      "dead-refill",
		Palette: testPalette,
		Target:  30,
		Moves:   5,
		Layout:  []string{"RRR", "GRY", "YGB"},
	}
	// Nine draws are painted over by the layout, then the top line
	// refills green, blue and yellow, leaving the red center alone.
	rng := &scriptSource{draws: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}}
	e, rec := startLevel(t, lvl, rng)
	if e.Reshuffles() != 0 {
		t.Fatalf("opening board reshuffled %d times", e.Reshuffles())
	}

	selectAll(t, e, P(0, 2), P(1, 2), P(2, 2))
	if ok, err := e.Confirm(); !ok || err != nil {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	e.Run()

	if e.Reshuffles() != 1 || e.Unsolvable() {
		t.Errorf("reshuffles=%d unsolvable=%v, want 1 false", e.Reshuffles(), e.Unsolvable())
	}
	if !e.Complete() {
		t.Fatalf("level not complete, state %s", e.State())
	}

	lastRefill, reshuffled, complete := -1, -1, -1
	for i, ev := range rec.events {
		switch ev.Kind {
		case EventRefillStep:
			lastRefill = i
		case EventReshuffled:
			reshuffled = i
		case EventLevelComplete:
			complete = i
		}
	}
	if !(lastRefill < reshuffled && reshuffled < complete) {
		t.Errorf("event order: last refill %d, reshuffle %d, complete %d", lastRefill, reshuffled, complete)
	}
}

// countingSource counts draws.
type countingSource struct{ draws int }

func (c *countingSource) Intn(int) int {
	c.draws++
	return 0
}

func TestBoardCopyKeepsEngineDraws(t *testing.T) {
	rng := &countingSource{}
	e, _ := startLevel(t, Level{ID: "t", Rows: 4, Cols: 4, Palette: redBlue(), Target: 1000}, rng)
	before, board := rng.draws, e.grid.String()

	b := e.Board()
	b.ShuffleAllColors()
	b.ReplaceCellFromAbove(P(0, 0))
	if rng.draws != before {
		t.Errorf("board copy drew %d times from the engine source", rng.draws-before)
	}
	if got := e.grid.String(); got != board {
		t.Errorf("engine board changed through its copy:\n%s", got)
	}
}

func TestStepsResume(t *testing.T) {
	e, _ := startLevel(t, Level{ID: "t", Rows: 5, Cols: 5, Palette: redBlue(), Target: 1000}, fixedSource(0))
	selectAll(t, e, P(0, 0), P(1, 1), P(2, 2))
	e.Confirm()

	for range e.Steps() {
		break
	}
	if e.State() != StateClearing {
		t.Fatalf("state %s after one step", e.State())
	}
	rest := e.Run()
	if len(rest) != 5 {
		t.Errorf("resumed with %d steps, want 5", len(rest))
	}
	if last := rest[len(rest)-1]; last.State != StateIdle {
		t.Errorf("last step left state %s", last.State)
	}
}

func TestListenerFuncs(t *testing.T) {
	var cleared, refills int
	var noMatch bool
	l := ListenerFuncs{
		TileCleared: func(Position, int) { cleared++ },
		RefillStep:  func(Position, Swatch) { refills++ },
		NoMatch:     func() { noMatch = true },
	}
	e, err := Start(Level{ID: "t", Rows: 3, Cols: 3, Palette: redBlue(), Target: 1000}, fixedSource(0), l)
	if err != nil {
		t.Fatal(err)
	}
	selectAll(t, e, P(0, 0))
	e.Confirm()
	if !noMatch {
		t.Error("NoMatch func not called")
	}
	selectAll(t, e, P(0, 2), P(1, 2), P(2, 2))
	e.Confirm()
	e.Run()
	if cleared != 3 || refills != 3 {
		t.Errorf("cleared=%d refills=%d, want 3 and 3", cleared, refills)
	}
}
