package core

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/looplab/fsm"
)

// Engine states.
const (
	StateIdle     = "idle"
	StateClearing = "clearing"
	StateFalling  = "falling"
	StateComplete = "complete"
)

const (
	evConfirm = "confirm"
	evFall    = "fall"
	evSettle  = "settle"
	evFinish  = "finish"
)

// StepKind says what a single Step did.
type StepKind uint8

const (
	StepClear StepKind = iota + 1
	StepRefill
)

func (k StepKind) String() string {
	switch k {
	case StepClear:
		return "clear"
	case StepRefill:
		return "refill"
	default:
		return "none"
	}
}

// Step is the result of advancing a clear sequence by one unit.
type Step struct {
	Kind   StepKind
	Pos    Position
	State  string // engine state after the step
	Events []Event
}

// Engine runs one level: it owns the grid, the selection and the session,
// and sequences clear and refill steps through a small state machine.
// An Engine is not safe for concurrent use.
type Engine struct {
	level    Level
	grid     *Grid
	sel      Selection
	session  Session
	machine  *fsm.FSM
	listener Listener

	plan   []Position
	cursor int

	unsolvable bool
	reshuffles int
	pending    []Event
}

// Start builds the board for level, makes sure it has a match and returns
// an engine waiting for input. A nil listener is allowed.
func Start(level Level, rng Source, listener Listener) (*Engine, error) {
	level = level.Normalize()
	if err := level.Validate(); err != nil {
		return nil, err
	}

	var (
		grid *Grid
		err  error
	)
	if len(level.Layout) > 0 {
		grid, err = NewGridFromLayout(level.Layout, level.Palette, rng)
	} else {
		grid, err = NewGrid(level.Rows, level.Cols, level.Palette, rng)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", level.ID, err)
	}

	if listener == nil {
		listener = NopListener{}
	}
	e := &Engine{
		level:    level,
		grid:     grid,
		session:  newSession(level.Target, level.Moves),
		listener: listener,
	}
	e.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: evConfirm, Src: []string{StateIdle}, Dst: StateClearing},
			{Name: evFall, Src: []string{StateClearing}, Dst: StateFalling},
			{Name: evSettle, Src: []string{StateFalling}, Dst: StateIdle},
			{Name: evFinish, Src: []string{StateIdle}, Dst: StateComplete},
		},
		fsm.Callbacks{
			"enter_" + StateClearing: func(_ context.Context, _ *fsm.Event) {
				e.cursor = 0
			},
			"enter_" + StateFalling: func(_ context.Context, _ *fsm.Event) {
				e.cursor = len(e.plan) - 1
			},
			"enter_" + StateIdle: func(_ context.Context, _ *fsm.Event) {
				e.plan = nil
				e.ensureSolvable()
			},
			"enter_" + StateComplete: func(_ context.Context, _ *fsm.Event) {
				e.emit(Event{Kind: EventLevelComplete, Stars: e.session.Stars, Score: e.session.Score})
			},
		},
	)

	e.ensureSolvable()
	return e, nil
}

func (e *Engine) fire(event string) {
	if err := e.machine.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("tilechain: %s from %s: %v", event, e.machine.Current(), err))
	}
}

func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
	dispatch(e.listener, ev)
}

// ensureSolvable reshuffles once when the board has no match and records
// whether the reshuffle helped. It never retries.
func (e *Engine) ensureSolvable() {
	if e.grid.HasAnyMatch(e.level.MinMatch) {
		e.unsolvable = false
		return
	}
	e.grid.ShuffleAllColors()
	e.reshuffles++
	e.unsolvable = !e.grid.HasAnyMatch(e.level.MinMatch)
	e.emit(Event{Kind: EventReshuffled, Solvable: !e.unsolvable})
}

func (e *Engine) ready() error {
	switch e.machine.Current() {
	case StateIdle:
		return nil
	case StateComplete:
		return ErrLevelComplete
	default:
		return ErrBusy
	}
}

// Select toggles p in the current selection.
func (e *Engine) Select(p Position) error {
	if err := e.ready(); err != nil {
		return err
	}
	if !e.grid.InBounds(p) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	e.sel.Toggle(p)
	return nil
}

// Confirm tries to clear the current selection. It reports false with a
// nil error when the selection is not a valid chain; the NoMatch event has
// been emitted by then. On success the engine enters the clearing state
// and the caller pulls the sequence with Step. The selection is empty
// afterwards either way.
func (e *Engine) Confirm() (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if e.sel.Len() == 0 {
		return false, ErrEmptySelection
	}
	e.pending = nil
	defer e.sel.Clear()

	if !e.sel.Validate(e.grid, e.level.MinMatch) {
		e.emit(Event{Kind: EventNoMatch})
		return false, nil
	}

	e.session.SpendMove()
	e.plan = clearOrder(e.sel.Positions())
	e.fire(evConfirm)
	return true, nil
}

// clearOrder sorts bottom of the board first, keeping selection order
// between tiles at the same height.
func clearOrder(ps []Position) []Position {
	slices.SortStableFunc(ps, func(a, b Position) int {
		return cmp.Compare(a.Col, b.Col)
	})
	return ps
}

// Step advances the clear sequence by one tile. It returns false when
// there is nothing to do, i.e. the engine is idle or complete.
func (e *Engine) Step() (Step, bool) {
	e.pending = nil
	var st Step

	switch e.machine.Current() {
	case StateClearing:
		p := e.plan[e.cursor]
		e.cursor++
		t := e.grid.kill(p)
		e.session.Award(t.Points)
		e.emit(Event{Kind: EventTileCleared, Pos: p, Swatch: t.Swatch, Points: t.Points, Score: e.session.Score})
		st = Step{Kind: StepClear, Pos: p}
		if e.cursor == len(e.plan) {
			e.fire(evFall)
		}

	case StateFalling:
		p := e.plan[e.cursor]
		e.cursor--
		for _, r := range e.grid.ReplaceCellFromAbove(p) {
			e.emit(Event{Kind: EventRefillStep, Pos: r.Pos, Swatch: r.Swatch})
		}
		st = Step{Kind: StepRefill, Pos: p}
		if e.cursor < 0 {
			e.fire(evSettle)
			if e.session.settle() {
				e.fire(evFinish)
			}
		}

	default:
		return Step{}, false
	}

	st.State = e.machine.Current()
	st.Events = e.pending
	return st, true
}

// Steps yields the remaining steps of the current sequence. Stopping early
// leaves the engine mid-sequence; ranging again resumes it.
func (e *Engine) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for {
			st, ok := e.Step()
			if !ok || !yield(st) {
				return
			}
		}
	}
}

// Run drains the current sequence.
func (e *Engine) Run() []Step {
	return slices.Collect(e.Steps())
}

// State returns the state machine's current state.
func (e *Engine) State() string { return e.machine.Current() }

// Busy reports whether a clear sequence is in flight.
func (e *Engine) Busy() bool {
	return e.machine.Is(StateClearing) || e.machine.Is(StateFalling)
}

// Complete reports whether the level has been won.
func (e *Engine) Complete() bool { return e.machine.Is(StateComplete) }

// Session returns a copy of the score and move bookkeeping.
func (e *Engine) Session() Session { return e.session }

// Level returns the normalized level the engine was started with.
func (e *Engine) Level() Level { return e.level }

// Unsolvable reports whether the last solvability check failed even after
// reshuffling.
func (e *Engine) Unsolvable() bool { return e.unsolvable }

// Reshuffles counts how many times the board has been reshuffled.
func (e *Engine) Reshuffles() int { return e.reshuffles }

// Rows and Cols give the board size.
func (e *Engine) Rows() int { return e.grid.Rows() }
func (e *Engine) Cols() int { return e.grid.Cols() }

// TileAt returns the tile at p.
func (e *Engine) TileAt(p Position) (Tile, error) { return e.grid.TileAt(p) }

// Board returns a copy of the grid. The copy has its own source that
// always draws the first swatch, so shuffling or refilling it leaves the
// engine's random sequence untouched.
func (e *Engine) Board() *Grid {
	b := e.grid.Clone()
	b.rng = firstSource{}
	return b
}

// Selected reports whether p is part of the current selection.
func (e *Engine) Selected(p Position) bool { return e.sel.Contains(p) }

// Selection returns the selected positions in order.
func (e *Engine) Selection() []Position { return e.sel.Positions() }
