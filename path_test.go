package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	cameFrom := map[Position]Position{
		{4, 4}: {2, 3},
		{2, 3}: {1, 1},
		{1, 1}: {0, 3},
		{0, 3}: {2, 2},
		{3, 0}: {1, 1}, // off-path entry
	}

	t.Run("counts links and marks predecessors", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		renders := 0
		moves := ReconstructPath(g, cameFrom, Position{4, 4}, RenderFunc(func(*Grid) { renders++ }))

		assert.Equal(t, 4, moves)
		assert.Equal(t, 4, renders)
		for _, p := range []Position{{2, 3}, {1, 1}, {0, 3}, {2, 2}} {
			assert.Equal(t, StatusPath, g.Status(p), "cell %v", p)
		}
		assert.Equal(t, StatusEmpty, g.Status(Position{4, 4}))
		assert.Equal(t, StatusEmpty, g.Status(Position{3, 0}))
	})

	t.Run("is idempotent", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		first := ReconstructPath(g, cameFrom, Position{4, 4}, nil)
		second := ReconstructPath(g, cameFrom, Position{4, 4}, nil)
		assert.Equal(t, first, second)
	})

	t.Run("no predecessor means no moves", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		assert.Zero(t, ReconstructPath(g, map[Position]Position{}, Position{4, 4}, nil))
	})

	t.Run("a cyclic map terminates", func(t *testing.T) {
		g := mustGrid(t, 5, 5)
		cycle := map[Position]Position{{0, 0}: {1, 2}, {1, 2}: {0, 0}}
		assert.Equal(t, 2, ReconstructPath(g, cycle, Position{0, 0}, nil))
	})
}

func TestTracePath(t *testing.T) {
	cameFrom := map[Position]Position{
		{4, 4}: {2, 3},
		{2, 3}: {0, 2},
	}
	assert.Equal(t, []Position{{0, 2}, {2, 3}, {4, 4}}, tracePath(cameFrom, Position{4, 4}))
	assert.Equal(t, []Position{{1, 1}}, tracePath(cameFrom, Position{1, 1}))
}
