package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Renderer draws the grid. It is called after every search step and every
// path reconstruction step and must not modify the grid.
type Renderer interface {
	Render(grid *Grid)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(grid *Grid)

func (f RenderFunc) Render(grid *Grid) { f(grid) }

type nopRenderer struct{}

func (nopRenderer) Render(*Grid) {}

// statusColors is the board palette.
var statusColors = map[Status]lipgloss.Color{
	StatusEmpty:    lipgloss.Color("#FFFFFF"),
	StatusFrontier: lipgloss.Color("#00FF00"),
	StatusVisited:  lipgloss.Color("#FF0000"),
	StatusBarrier:  lipgloss.Color("#000000"),
	StatusStart:    lipgloss.Color("#FFA500"),
	StatusEnd:      lipgloss.Color("#800080"),
	StatusPath:     lipgloss.Color("#FFFF00"),
}

// statusGlyphs is the plain-text form of each status.
var statusGlyphs = map[Status]byte{
	StatusEmpty:    '.',
	StatusFrontier: 'o',
	StatusVisited:  'x',
	StatusBarrier:  '#',
	StatusStart:    'S',
	StatusEnd:      'E',
	StatusPath:     '*',
}

// FormatGrid renders the grid as glyph rows, one string per row.
func FormatGrid(grid *Grid) []string {
	rows := make([]string, grid.Rows())
	var b strings.Builder
	for row := range rows {
		b.Reset()
		for col := 0; col < grid.Cols(); col++ {
			b.WriteByte(statusGlyphs[grid.Status(Position{Row: row, Col: col})])
		}
		rows[row] = b.String()
	}
	return rows
}

// TerminalOption configures a TerminalRenderer.
type TerminalOption func(*TerminalRenderer)

// WithFrameDelay pauses after every drawn frame so the search can be watched.
func WithFrameDelay(d time.Duration) TerminalOption {
	return func(t *TerminalRenderer) { t.delay = d }
}

// WithFinalFrameOnly suppresses per-step frames; only Draw writes output.
func WithFinalFrameOnly() TerminalOption {
	return func(t *TerminalRenderer) { t.finalOnly = true }
}

// TerminalRenderer paints the grid as coloured blocks on a terminal.
type TerminalRenderer struct {
	out       io.Writer
	delay     time.Duration
	finalOnly bool
	styles    map[Status]lipgloss.Style
	frames    int
}

func NewTerminalRenderer(out io.Writer, opts ...TerminalOption) *TerminalRenderer {
	t := &TerminalRenderer{out: out, styles: make(map[Status]lipgloss.Style, len(statusColors))}
	for status, color := range statusColors {
		t.styles[status] = lipgloss.NewStyle().Background(color)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Frames is the number of frames written so far.
func (t *TerminalRenderer) Frames() int { return t.frames }

func (t *TerminalRenderer) Render(grid *Grid) {
	if t.finalOnly {
		return
	}
	t.Draw(grid)
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
}

// Draw writes one frame regardless of the final-only setting.
func (t *TerminalRenderer) Draw(grid *Grid) {
	var b strings.Builder
	if !t.finalOnly {
		// home the cursor and clear so frames overwrite each other
		b.WriteString("\x1b[H\x1b[2J")
	}
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			status := grid.Status(Position{Row: row, Col: col})
			cell := string([]byte{statusGlyphs[status], ' '})
			b.WriteString(t.styles[status].Render(cell))
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(t.out, b.String())
	t.frames++
}

// Frame is one captured rendering.
type Frame struct {
	Step int      `json:"step"`
	Rows []string `json:"rows"`
}

// FrameRecorder keeps the rendered frames in memory, up to a frame limit
// and a budget on the total number of cells across all kept frames.
type FrameRecorder struct {
	limit      int
	cellBudget int
	cells      int
	step       int
	frames     []Frame
	dropped    int
}

// NewFrameRecorder records at most limit frames holding at most cellBudget
// cells in total. A value <= 0 disables that bound.
func NewFrameRecorder(limit, cellBudget int) *FrameRecorder {
	return &FrameRecorder{limit: limit, cellBudget: cellBudget}
}

func (r *FrameRecorder) Render(grid *Grid) {
	r.step++
	size := grid.Rows() * grid.Cols()
	if (r.limit > 0 && len(r.frames) >= r.limit) ||
		(r.cellBudget > 0 && r.cells+size > r.cellBudget) {
		r.dropped++
		return
	}
	r.cells += size
	r.frames = append(r.frames, Frame{Step: r.step, Rows: FormatGrid(grid)})
}

// Cells is the number of grid cells held by the kept frames.
func (r *FrameRecorder) Cells() int { return r.cells }

func (r *FrameRecorder) Frames() []Frame { return r.frames }

// Dropped is how many frames were discarded once a bound was reached.
func (r *FrameRecorder) Dropped() int { return r.dropped }
