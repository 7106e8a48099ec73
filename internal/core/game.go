package core

// Game is the contract between a game and the platform shell. The shell
// calls Step once per tick with the input gathered since the previous
// tick, and Render whenever it draws a frame.
type Game interface {
	ID() string
	Title() string
	Reset(cfg RuntimeConfig)
	Step(in InputFrame) StepResult
	Render(dst *Screen)
	State() GameState
}
