package main

import "errors"

var (
	// ErrInvalidConfiguration is returned before a search starts when start or
	// end is missing, identical, off the grid or placed on a barrier.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfBounds is returned by grid edits outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrCellOccupied is returned when an edit would overwrite the start or end cell.
	ErrCellOccupied = errors.New("cell occupied")

	// ErrInvalidBoard is returned by the board and layout readers for malformed input.
	ErrInvalidBoard = errors.New("invalid board")
)
