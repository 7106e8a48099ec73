package core

// EventKind tags an engine notification.
type EventKind uint8

const (
	EventTileCleared EventKind = iota
	EventNoMatch
	EventRefillStep
	EventReshuffled
	EventLevelComplete
)

func (k EventKind) String() string {
	switch k {
	case EventTileCleared:
		return "tile_cleared"
	case EventNoMatch:
		return "no_match"
	case EventRefillStep:
		return "refill_step"
	case EventReshuffled:
		return "reshuffled"
	case EventLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Event is one notification. Fields not meaningful for a kind are zero.
type Event struct {
	Kind     EventKind
	Pos      Position
	Swatch   Swatch
	Points   int
	Score    int
	Stars    int
	Solvable bool // EventReshuffled only
}

// Listener receives engine notifications synchronously from the call that
// caused them.
type Listener interface {
	OnTileCleared(pos Position, points int)
	OnNoMatch()
	OnRefillStep(pos Position, sw Swatch)
	OnLevelComplete(stars, score int)
}

// ReshuffleListener is implemented by listeners that also want to know
// when the board was reshuffled.
type ReshuffleListener interface {
	OnReshuffle(solvable bool)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	TileCleared   func(pos Position, points int)
	NoMatch       func()
	RefillStep    func(pos Position, sw Swatch)
	LevelComplete func(stars, score int)
	Reshuffle     func(solvable bool)
}

func (f ListenerFuncs) OnTileCleared(pos Position, points int) {
	if f.TileCleared != nil {
		f.TileCleared(pos, points)
	}
}

func (f ListenerFuncs) OnNoMatch() {
	if f.NoMatch != nil {
		f.NoMatch()
	}
}

func (f ListenerFuncs) OnRefillStep(pos Position, sw Swatch) {
	if f.RefillStep != nil {
		f.RefillStep(pos, sw)
	}
}

func (f ListenerFuncs) OnLevelComplete(stars, score int) {
	if f.LevelComplete != nil {
		f.LevelComplete(stars, score)
	}
}

func (f ListenerFuncs) OnReshuffle(solvable bool) {
	if f.Reshuffle != nil {
		f.Reshuffle(solvable)
	}
}

// NopListener ignores everything.
type NopListener struct{}

func (NopListener) OnTileCleared(Position, int)   {}
func (NopListener) OnNoMatch()                    {}
func (NopListener) OnRefillStep(Position, Swatch) {}
func (NopListener) OnLevelComplete(int, int)      {}

func dispatch(l Listener, ev Event) {
	switch ev.Kind {
	case EventTileCleared:
		l.OnTileCleared(ev.Pos, ev.Points)
	case EventNoMatch:
		l.OnNoMatch()
	case EventRefillStep:
		l.OnRefillStep(ev.Pos, ev.Swatch)
	case EventLevelComplete:
		l.OnLevelComplete(ev.Stars, ev.Score)
	case EventReshuffled:
		if rl, ok := l.(ReshuffleListener); ok {
			rl.OnReshuffle(ev.Solvable)
		}
	}
}
