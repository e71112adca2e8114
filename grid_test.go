package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	require.NoError(t, err)
	return g
}

func TestNewGrid(t *testing.T) {
	t.Run("all cells start empty", func(t *testing.T) {
		g := mustGrid(t, 3, 4)
		assert.Equal(t, 3, g.Rows())
		assert.Equal(t, 4, g.Cols())
		for row := 0; row < 3; row++ {
			for col := 0; col < 4; col++ {
				c, ok := g.Cell(Position{row, col})
				require.True(t, ok)
				assert.Equal(t, StatusEmpty, c.Status())
				assert.Equal(t, Position{row, col}, c.Position())
			}
		}
	})

	t.Run("rejects empty dimensions", func(t *testing.T) {
		_, err := NewGrid(0, 5)
		assert.ErrorIs(t, err, ErrInvalidBoard)
		_, err = NewGrid(5, -1)
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestNeighbors(t *testing.T) {
	t.Run("corner keeps only in-bounds moves", func(t *testing.T) {
		g := mustGrid(t, 8, 8)
		assert.ElementsMatch(t, []Position{{1, 2}, {2, 1}}, g.Neighbors(Position{0, 0}))
	})

	t.Run("centre has all eight moves in a fixed order", func(t *testing.T) {
		g := mustGrid(t, 8, 8)
		assert.Equal(t, []Position{
			{2, 1}, {1, 2}, {1, 4}, {2, 5},
			{4, 1}, {5, 2}, {5, 4}, {4, 5},
		}, g.Neighbors(Position{3, 3}))
	})

	t.Run("no wrap-around on small grids", func(t *testing.T) {
		g := mustGrid(t, 3, 3)
		assert.Empty(t, g.Neighbors(Position{1, 1}))
	})

	t.Run("off-grid cell has no neighbours", func(t *testing.T) {
		g := mustGrid(t, 3, 3)
		assert.Nil(t, g.Neighbors(Position{-1, 0}))
	})

	t.Run("barrier changes are seen by the next lookup", func(t *testing.T) {
		g := mustGrid(t, 8, 8)
		require.Len(t, g.Neighbors(Position{0, 0}), 2)

		require.NoError(t, g.SetBarrier(Position{1, 2}))
		assert.Equal(t, []Position{{2, 1}}, g.Neighbors(Position{0, 0}))

		require.NoError(t, g.Reset(Position{1, 2}))
		assert.Len(t, g.Neighbors(Position{0, 0}), 2)
	})

	t.Run("search marks keep the cached adjacency", func(t *testing.T) {
		g := mustGrid(t, 8, 8)
		g.UpdateNeighbors()
		g.mark(Position{1, 2}, StatusVisited)
		assert.NotNil(t, g.adj)
		assert.Len(t, g.Neighbors(Position{0, 0}), 2)
	})
}

func TestStartAndEnd(t *testing.T) {
	t.Run("moving the start empties the old cell", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		require.NoError(t, g.SetStart(Position{0, 0}))
		require.NoError(t, g.SetStart(Position{2, 2}))

		assert.Equal(t, StatusEmpty, g.Status(Position{0, 0}))
		assert.Equal(t, StatusStart, g.Status(Position{2, 2}))
		p, ok := g.Start()
		assert.True(t, ok)
		assert.Equal(t, Position{2, 2}, p)
	})

	t.Run("start and end cannot share a cell", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		require.NoError(t, g.SetStart(Position{1, 1}))
		assert.ErrorIs(t, g.SetEnd(Position{1, 1}), ErrCellOccupied)
		require.NoError(t, g.SetEnd(Position{3, 3}))
		assert.ErrorIs(t, g.SetStart(Position{3, 3}), ErrCellOccupied)
	})

	t.Run("start replaces a barrier", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		require.NoError(t, g.SetBarrier(Position{1, 2}))
		require.NotContains(t, g.Neighbors(Position{0, 0}), Position{1, 2})
		require.NoError(t, g.SetStart(Position{1, 2}))
		assert.Equal(t, StatusStart, g.Status(Position{1, 2}))
		assert.Contains(t, g.Neighbors(Position{0, 0}), Position{1, 2})
	})

	t.Run("barriers cannot cover start or end", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		require.NoError(t, g.SetStart(Position{0, 0}))
		require.NoError(t, g.SetEnd(Position{4, 4}))
		assert.ErrorIs(t, g.SetBarrier(Position{0, 0}), ErrCellOccupied)
		assert.ErrorIs(t, g.SetBarrier(Position{4, 4}), ErrCellOccupied)
	})

	t.Run("reset forgets the endpoint", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		require.NoError(t, g.SetEnd(Position{4, 4}))
		require.NoError(t, g.Reset(Position{4, 4}))
		_, ok := g.End()
		assert.False(t, ok)
	})

	t.Run("edits outside the grid fail", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		assert.ErrorIs(t, g.SetStart(Position{5, 0}), ErrOutOfBounds)
		assert.ErrorIs(t, g.SetEnd(Position{0, -1}), ErrOutOfBounds)
		assert.ErrorIs(t, g.SetBarrier(Position{9, 9}), ErrOutOfBounds)
		assert.ErrorIs(t, g.Reset(Position{-3, 2}), ErrOutOfBounds)
	})
}

func TestClear(t *testing.T) {
	g := mustGrid(t, 6, 6)
	require.NoError(t, g.SetStart(Position{2, 2}))
	require.NoError(t, g.SetEnd(Position{3, 4}))
	require.NoError(t, g.SetBarrier(Position{0, 0}))
	g.ToggleBorderWall()

	g.Clear()

	assert.Equal(t, []string{"......", "......", "......", "......", "......", "......"}, FormatGrid(g))
	_, ok := g.Start()
	assert.False(t, ok)
	_, ok = g.End()
	assert.False(t, ok)
	assert.False(t, g.BorderWall())
}

func TestToggleBorderWall(t *testing.T) {
	g := mustGrid(t, 6, 6)
	require.NoError(t, g.SetStart(Position{0, 0}))
	require.NoError(t, g.SetEnd(Position{3, 3}))

	g.ToggleBorderWall()
	assert.True(t, g.BorderWall())
	assert.Equal(t, []string{
		"S#####",
		"######",
		"##..##",
		"##.E##",
		"######",
		"######",
	}, FormatGrid(g))

	g.ToggleBorderWall()
	assert.False(t, g.BorderWall())
	assert.Equal(t, []string{
		"S.....",
		"......",
		"......",
		"...E..",
		"......",
		"......",
	}, FormatGrid(g))
}

func TestToggleBorderWallKeepsEndpointsOnTheFrame(t *testing.T) {
	g := mustGrid(t, 6, 6)
	require.NoError(t, g.SetStart(Position{1, 4}))
	require.NoError(t, g.SetEnd(Position{5, 0}))

	g.ToggleBorderWall()
	assert.True(t, mustCell(t, g, Position{1, 4}).IsStart())
	assert.True(t, mustCell(t, g, Position{5, 0}).IsEnd())
	assert.True(t, mustCell(t, g, Position{0, 0}).IsBarrier())

	g.ToggleBorderWall()
	assert.True(t, mustCell(t, g, Position{1, 4}).IsStart())
	assert.True(t, mustCell(t, g, Position{5, 0}).IsEnd())
	assert.False(t, mustCell(t, g, Position{0, 0}).IsBarrier())
}

func mustCell(t *testing.T, g *Grid, p Position) *Cell {
	t.Helper()
	c, ok := g.Cell(p)
	require.True(t, ok, "cell %v", p)
	return c
}

func TestCellPredicates(t *testing.T) {
	g := mustGrid(t, 3, 3)
	require.NoError(t, g.SetStart(Position{0, 0}))
	require.NoError(t, g.SetEnd(Position{2, 2}))
	require.NoError(t, g.SetBarrier(Position{1, 1}))

	start, end, wall := mustCell(t, g, Position{0, 0}), mustCell(t, g, Position{2, 2}), mustCell(t, g, Position{1, 1})
	assert.True(t, start.IsStart())
	assert.False(t, start.IsEnd())
	assert.True(t, end.IsEnd())
	assert.False(t, end.IsBarrier())
	assert.True(t, wall.IsBarrier())
	assert.False(t, wall.IsStart())
	assert.Equal(t, Position{1, 1}, wall.Position())
}

func TestClearSearchMarks(t *testing.T) {
	g := mustGrid(t, 3, 3)
	require.NoError(t, g.SetStart(Position{0, 0}))
	require.NoError(t, g.SetEnd(Position{2, 1}))
	require.NoError(t, g.SetBarrier(Position{1, 1}))
	g.mark(Position{0, 1}, StatusFrontier)
	g.mark(Position{0, 2}, StatusVisited)
	g.mark(Position{1, 0}, StatusPath)
	g.mark(Position{2, 1}, StatusFrontier)

	g.ClearSearchMarks()

	assert.Equal(t, []string{"S..", ".#.", ".E."}, FormatGrid(g))
}
