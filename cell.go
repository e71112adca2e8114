package main

import "fmt"

// Status is the state of a single grid cell.
type Status int

const (
	StatusEmpty Status = iota
	StatusBarrier
	StatusStart
	StatusEnd
	StatusFrontier
	StatusVisited
	StatusPath
)

var statusNames = [...]string{
	StatusEmpty:    "empty",
	StatusBarrier:  "barrier",
	StatusStart:    "start",
	StatusEnd:      "end",
	StatusFrontier: "frontier",
	StatusVisited:  "visited",
	StatusPath:     "path",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Position is a (row, col) grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is a single grid location. Cells are created and owned by a Grid;
// status changes go through the Grid so it can keep adjacency current.
type Cell struct {
	pos    Position
	status Status
}

func (c *Cell) Position() Position { return c.pos }
func (c *Cell) Status() Status     { return c.status }
func (c *Cell) IsBarrier() bool    { return c.status == StatusBarrier }
func (c *Cell) IsStart() bool      { return c.status == StatusStart }
func (c *Cell) IsEnd() bool        { return c.status == StatusEnd }
