package main

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// edgeCost is the g-score charged per knight move. Reported path lengths
// count moves, not cost.
const edgeCost = 2

// State is the lifecycle of a Search.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// frontierItem is a cell waiting in the open set
type frontierItem struct {
	Pos   Position
	F     float64 // f-score when the cell was queued
	Seq   int     // insertion order, breaks ties between equal F
	Index int     // Index in the heap
}

// PriorityQueue implements heap.Interface ordered by (F, Seq)
type PriorityQueue []*frontierItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].F != pq[j].F {
		return pq[i].F < pq[j].F
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*frontierItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

// Result is the outcome of a finished search.
type Result struct {
	Found    bool       `json:"found"`
	Moves    int        `json:"moves"`
	Path     []Position `json:"path,omitempty"`
	Expanded int        `json:"expanded"`
}

type options struct {
	renderer Renderer
	logger   *zap.Logger
}

// Option configures a Search.
type Option func(*options)

// WithRenderer sets the renderer called after every step. A nil renderer is ignored.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		if r != nil {
			o.renderer = r
		}
	}
}

// WithLogger sets the logger used for run-level events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Search is a single A* run over a grid's knight-move graph. It owns all of
// its scores and its frontier; the grid must not be edited while it runs.
type Search struct {
	grid       *Grid
	start, end Position
	renderer   Renderer
	logger     *zap.Logger

	state    State
	gScore   map[Position]float64
	fScore   map[Position]float64
	cameFrom map[Position]Position
	openSet  PriorityQueue
	inOpen   map[Position]bool
	closed   map[Position]bool
	seq      int
	expanded int
	result   Result
	began    time.Time
}

// NewSearch validates start and end against the grid and prepares a search
// in the Idle state. If the grid has no start or end yet they are placed;
// if it has different ones the configuration is rejected.
func NewSearch(grid *Grid, start, end Position, opts ...Option) (*Search, error) {
	o := options{renderer: nopRenderer{}, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateEndpoints(grid, start, end); err != nil {
		return nil, err
	}
	grid.ClearSearchMarks()
	if _, ok := grid.Start(); !ok {
		if err := grid.SetStart(start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
	}
	if _, ok := grid.End(); !ok {
		if err := grid.SetEnd(end); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
	}

	s := &Search{
		grid:     grid,
		start:    start,
		end:      end,
		renderer: o.renderer,
		logger:   o.logger,
		gScore:   map[Position]float64{start: 0},
		fScore:   map[Position]float64{start: Estimate(start, end)},
		cameFrom: make(map[Position]Position),
		inOpen:   map[Position]bool{start: true},
		closed:   make(map[Position]bool),
	}
	heap.Init(&s.openSet)
	heap.Push(&s.openSet, &frontierItem{Pos: start, F: s.fScore[start], Seq: 0})
	return s, nil
}

func validateEndpoints(grid *Grid, start, end Position) error {
	if grid == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidConfiguration)
	}
	if !grid.InBounds(start) {
		return fmt.Errorf("%w: start %v is outside the %dx%d grid", ErrInvalidConfiguration, start, grid.Rows(), grid.Cols())
	}
	if !grid.InBounds(end) {
		return fmt.Errorf("%w: end %v is outside the %dx%d grid", ErrInvalidConfiguration, end, grid.Rows(), grid.Cols())
	}
	if start == end {
		return fmt.Errorf("%w: start and end are both %v", ErrInvalidConfiguration, start)
	}
	if grid.Status(start) == StatusBarrier {
		return fmt.Errorf("%w: start %v is a barrier", ErrInvalidConfiguration, start)
	}
	if grid.Status(end) == StatusBarrier {
		return fmt.Errorf("%w: end %v is a barrier", ErrInvalidConfiguration, end)
	}
	if p, ok := grid.Start(); ok && p != start {
		return fmt.Errorf("%w: grid start is %v, not %v", ErrInvalidConfiguration, p, start)
	}
	if p, ok := grid.End(); ok && p != end {
		return fmt.Errorf("%w: grid end is %v, not %v", ErrInvalidConfiguration, p, end)
	}
	return nil
}

func (s *Search) State() State { return s.state }

// Done reports whether the search has reached a terminal state.
func (s *Search) Done() bool {
	return s.state == StateSucceeded || s.state == StateFailed
}

// Result returns the outcome so far. It is only meaningful once Done.
func (s *Search) Result() Result { return s.result }

// GScore returns the best known cost from start to p, +Inf if p was never reached.
func (s *Search) GScore(p Position) float64 { return score(s.gScore, p) }

// FScore returns g + estimate for p, +Inf if p was never reached.
func (s *Search) FScore(p Position) float64 { return score(s.fScore, p) }

func score(m map[Position]float64, p Position) float64 {
	if v, ok := m[p]; ok {
		return v
	}
	return math.Inf(1)
}

// Step expands the lowest (f, seq) frontier cell and returns it together with
// the state after the step. Stepping a finished search does nothing.
func (s *Search) Step() (Position, State) {
	switch s.state {
	case StateSucceeded, StateFailed:
		return Position{}, s.state
	case StateIdle:
		s.state = StateRunning
		s.began = time.Now()
		s.logger.Info("search started",
			zap.Stringer("start", s.start),
			zap.Stringer("end", s.end),
			zap.Int("rows", s.grid.Rows()),
			zap.Int("cols", s.grid.Cols()))
	}

	if s.openSet.Len() == 0 {
		s.result = Result{Found: false, Expanded: s.expanded}
		s.finish(StateFailed)
		return Position{}, s.state
	}

	current := heap.Pop(&s.openSet).(*frontierItem).Pos
	delete(s.inOpen, current)
	s.closed[current] = true
	s.expanded++

	// Check if we reached the goal
	if current == s.end {
		moves := ReconstructPath(s.grid, s.cameFrom, s.end, s.renderer)
		s.grid.mark(s.end, StatusEnd)
		s.grid.mark(s.start, StatusStart)
		s.renderer.Render(s.grid)
		s.result = Result{
			Found:    true,
			Moves:    moves,
			Path:     tracePath(s.cameFrom, s.end),
			Expanded: s.expanded,
		}
		s.finish(StateSucceeded)
		return current, s.state
	}

	tentativeG := s.gScore[current] + edgeCost
	for _, neighbor := range s.grid.Neighbors(current) {
		// popped cells are final
		if s.closed[neighbor] {
			continue
		}
		if tentativeG >= score(s.gScore, neighbor) {
			continue
		}
		s.cameFrom[neighbor] = current
		s.gScore[neighbor] = tentativeG
		s.fScore[neighbor] = tentativeG + Estimate(neighbor, s.end)
		if !s.inOpen[neighbor] {
			s.seq++
			heap.Push(&s.openSet, &frontierItem{Pos: neighbor, F: s.fScore[neighbor], Seq: s.seq})
			s.inOpen[neighbor] = true
			s.grid.mark(neighbor, StatusFrontier)
		}
	}

	if current != s.start {
		s.grid.mark(current, StatusVisited)
	}
	s.logger.Debug("expanded",
		zap.Stringer("cell", current),
		zap.Float64("g", s.gScore[current]),
		zap.Int("frontier", s.openSet.Len()))
	s.renderer.Render(s.grid)
	return current, s.state
}

func (s *Search) finish(state State) {
	s.state = state
	s.logger.Info("search finished",
		zap.Stringer("state", state),
		zap.Bool("found", s.result.Found),
		zap.Int("moves", s.result.Moves),
		zap.Int("expanded", s.result.Expanded),
		zap.Duration("elapsed", time.Since(s.began)))
}

// Run steps the search until it finishes or ctx is done. Cancellation is
// checked between steps; an abandoned search needs no cleanup.
func (s *Search) Run(ctx context.Context) (Result, error) {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			s.logger.Info("search cancelled",
				zap.Int("expanded", s.expanded),
				zap.Error(err))
			return Result{Expanded: s.expanded}, err
		}
		s.Step()
	}
	return s.result, nil
}

// Run searches grid for a knight path from start to end, calling renderer
// after every step. Found is false, with a nil error, when end cannot be reached.
func Run(ctx context.Context, grid *Grid, start, end Position, renderer Renderer, opts ...Option) (Result, error) {
	search, err := NewSearch(grid, start, end, append([]Option{WithRenderer(renderer)}, opts...)...)
	if err != nil {
		return Result{}, err
	}
	return search.Run(ctx)
}

// RunGrid is Run using the start and end already placed on grid.
func RunGrid(ctx context.Context, grid *Grid, renderer Renderer, opts ...Option) (Result, error) {
	if grid == nil {
		return Result{}, fmt.Errorf("%w: nil grid", ErrInvalidConfiguration)
	}
	start, ok := grid.Start()
	if !ok {
		return Result{}, fmt.Errorf("%w: no start cell", ErrInvalidConfiguration)
	}
	end, ok := grid.End()
	if !ok {
		return Result{}, fmt.Errorf("%w: no end cell", ErrInvalidConfiguration)
	}
	return Run(ctx, grid, start, end, renderer, opts...)
}
