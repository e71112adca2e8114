package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Text board glyphs accepted by ParseBoard.
const (
	boardEmpty   = '.'
	boardBarrier = '#'
	boardStart   = 'S'
	boardEnd     = 'E'
)

// LoadBoard reads a text board from path.
func LoadBoard(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board %s: %w", path, err)
	}
	defer f.Close()
	return ParseBoard(f)
}

// ParseBoard reads a grid drawn one row per line with '.' for empty cells,
// '#' for barriers, 'S' for the start and 'E' for the end. Blank lines
// before and after the board are ignored.
func ParseBoard(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r \t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrInvalidBoard)
	}

	cols := len(lines[0])
	grid, err := NewGrid(len(lines), cols)
	if err != nil {
		return nil, err
	}
	for row, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, row, len(line), cols)
		}
		for col := 0; col < cols; col++ {
			p := Position{Row: row, Col: col}
			switch glyph := line[col]; glyph {
			case boardEmpty:
			case boardBarrier:
				err = grid.SetBarrier(p)
			case boardStart:
				if _, ok := grid.Start(); ok {
					return nil, fmt.Errorf("%w: second start at %v", ErrInvalidBoard, p)
				}
				err = grid.SetStart(p)
			case boardEnd:
				if _, ok := grid.End(); ok {
					return nil, fmt.Errorf("%w: second end at %v", ErrInvalidBoard, p)
				}
				err = grid.SetEnd(p)
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at %v", ErrInvalidBoard, glyph, p)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
			}
		}
	}
	return grid, nil
}
