package core

import "errors"

var (
	ErrOutOfBounds    = errors.New("tilechain: position out of bounds")
	ErrEmptySelection = errors.New("tilechain: confirm with empty selection")
	ErrBusy           = errors.New("tilechain: clear sequence in progress")
	ErrLevelComplete  = errors.New("tilechain: level already complete")
	ErrInvalidLevel   = errors.New("tilechain: invalid level")
)
