package main

import "fmt"

// borderThickness is how many cells deep the border wall reaches into the grid.
const borderThickness = 2

// Grid is a rows x cols board of cells with a lazily built knight-move
// adjacency. Any change to a cell's barrier status drops the adjacency so
// the next Neighbors call sees the current barriers.
type Grid struct {
	rows, cols int
	cells      [][]*Cell

	start, end *Position
	borderWall bool
	adj        adjacency
}

// NewGrid builds a grid with every cell Empty.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidBoard, rows, cols)
	}
	cells := make([][]*Cell, rows)
	for row := range cells {
		cells[row] = make([]*Cell, cols)
		for col := range cells[row] {
			cells[row][col] = &Cell{pos: Position{Row: row, Col: col}}
		}
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Cell returns the cell at p, or false when p is off the grid.
func (g *Grid) Cell(p Position) (*Cell, bool) {
	if !g.InBounds(p) {
		return nil, false
	}
	return g.cells[p.Row][p.Col], true
}

// Status returns the status at p. Off-grid positions report StatusBarrier.
func (g *Grid) Status(p Position) Status {
	c, ok := g.Cell(p)
	if !ok {
		return StatusBarrier
	}
	return c.status
}

// Start returns the start position if one has been placed.
func (g *Grid) Start() (Position, bool) {
	if g.start == nil {
		return Position{}, false
	}
	return *g.start, true
}

// End returns the end position if one has been placed.
func (g *Grid) End() (Position, bool) {
	if g.end == nil {
		return Position{}, false
	}
	return *g.end, true
}

// BorderWall reports whether the border wall is currently raised.
func (g *Grid) BorderWall() bool { return g.borderWall }

// SetStart places the start cell, moving it if one already exists.
func (g *Grid) SetStart(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: start %v", ErrOutOfBounds, p)
	}
	if g.end != nil && *g.end == p {
		return fmt.Errorf("%w: %v is the end cell", ErrCellOccupied, p)
	}
	if g.start != nil {
		g.setStatus(*g.start, StatusEmpty)
	}
	g.setStatus(p, StatusStart)
	g.start = &p
	return nil
}

// SetEnd places the end cell, moving it if one already exists.
func (g *Grid) SetEnd(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: end %v", ErrOutOfBounds, p)
	}
	if g.start != nil && *g.start == p {
		return fmt.Errorf("%w: %v is the start cell", ErrCellOccupied, p)
	}
	if g.end != nil {
		g.setStatus(*g.end, StatusEmpty)
	}
	g.setStatus(p, StatusEnd)
	g.end = &p
	return nil
}

// SetBarrier turns p into a barrier. The start and end cells cannot be walled over.
func (g *Grid) SetBarrier(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: barrier %v", ErrOutOfBounds, p)
	}
	if c := g.cells[p.Row][p.Col]; c.IsStart() || c.IsEnd() {
		return fmt.Errorf("%w: %v holds the %s", ErrCellOccupied, p, c.Status())
	}
	g.setStatus(p, StatusBarrier)
	return nil
}

// Reset returns p to Empty, forgetting the start or end if it was one.
func (g *Grid) Reset(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: reset %v", ErrOutOfBounds, p)
	}
	if g.start != nil && *g.start == p {
		g.start = nil
	}
	if g.end != nil && *g.end == p {
		g.end = nil
	}
	g.setStatus(p, StatusEmpty)
	return nil
}

// Clear empties the whole grid.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for _, c := range row {
			c.status = StatusEmpty
		}
	}
	g.start, g.end = nil, nil
	g.borderWall = false
	g.adj = nil
}

// ClearSearchMarks removes the frontier, visited and path marks left by a search.
func (g *Grid) ClearSearchMarks() {
	for _, row := range g.cells {
		for _, c := range row {
			switch c.status {
			case StatusFrontier, StatusVisited, StatusPath:
				c.status = StatusEmpty
			}
		}
	}
	g.restoreEndpoints()
}

// restoreEndpoints re-applies the Start and End statuses after search marks
// may have painted over them.
func (g *Grid) restoreEndpoints() {
	if g.start != nil {
		g.mark(*g.start, StatusStart)
	}
	if g.end != nil {
		g.mark(*g.end, StatusEnd)
	}
}

// ToggleBorderWall raises or lowers a barrier frame borderThickness cells deep
// along the grid edge. Start and end are never overwritten; lowering the wall
// only clears frame cells that are barriers.
func (g *Grid) ToggleBorderWall() {
	raise := !g.borderWall
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if !g.onBorder(row, col) {
				continue
			}
			p := Position{Row: row, Col: col}
			switch c := g.cells[row][col]; {
			case raise && !c.IsStart() && !c.IsEnd():
				g.setStatus(p, StatusBarrier)
			case !raise && c.IsBarrier():
				g.setStatus(p, StatusEmpty)
			}
		}
	}
	g.borderWall = raise
}

func (g *Grid) onBorder(row, col int) bool {
	return row < borderThickness || row >= g.rows-borderThickness ||
		col < borderThickness || col >= g.cols-borderThickness
}

// UpdateNeighbors recomputes the adjacency of every cell from the current barriers.
func (g *Grid) UpdateNeighbors() {
	g.adj = buildAdjacency(g)
}

// Neighbors returns the cells one knight move from p that are on the grid and
// not barriers. Off-grid positions have no neighbours.
func (g *Grid) Neighbors(p Position) []Position {
	if !g.InBounds(p) {
		return nil
	}
	if g.adj == nil {
		g.UpdateNeighbors()
	}
	return g.adj[p]
}

// setStatus is the single place cell statuses change; it drops the cached
// adjacency whenever a cell enters or leaves the barrier state.
func (g *Grid) setStatus(p Position, status Status) {
	c := g.cells[p.Row][p.Col]
	if (c.status == StatusBarrier) != (status == StatusBarrier) {
		g.adj = nil
	}
	c.status = status
}

// mark sets a search status on p. Search marks never involve barriers, so
// the adjacency stays valid.
func (g *Grid) mark(p Position, status Status) {
	g.cells[p.Row][p.Col].status = status
}
