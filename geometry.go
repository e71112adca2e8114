package main

import (
	"math"

	"github.com/paulmach/orb"
)

// octileSaving is what one diagonal step saves over a straight step in each axis.
var octileSaving = math.Sqrt(2) - 2

// Estimate is the octile distance between two cells, the search's guess at
// the remaining cost. It is symmetric and zero for a == b, but it is an
// 8-direction metric and not a lower bound on knight moves.
func Estimate(a, b Position) float64 {
	dx := absInt(a.Row - b.Row)
	dy := absInt(a.Col - b.Col)
	// explicit conversion keeps the product from being fused into an FMA,
	// so f-score ties break the same way on every platform
	diagonal := float64(octileSaving * float64(min(dx, dy)))
	return float64(dx+dy) + diagonal
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Layout geometry uses cell coordinates: x is the column, y the row, and
// cell (r, c) covers [c, c+1) x [r, r+1).

// cellCenter returns the centre of the cell at p.
func cellCenter(p Position) orb.Point {
	return orb.Point{float64(p.Col) + 0.5, float64(p.Row) + 0.5}
}

// positionAt returns the cell containing pt.
func positionAt(pt orb.Point) Position {
	return Position{Row: int(math.Floor(pt.Y())), Col: int(math.Floor(pt.X()))}
}

// gridBound is the area covered by a rows x cols grid.
func gridBound(rows, cols int) orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{float64(cols), float64(rows)}}
}
