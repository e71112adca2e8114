package main

// knightOffsets are the eight single knight moves, in the order neighbours are listed.
var knightOffsets = [8]Position{
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	{1, -2}, {2, -1}, {2, 1}, {1, 2},
}

// adjacency maps every cell of a grid to the cells one knight move away that
// are inside the grid and not barriers.
type adjacency map[Position][]Position

// buildAdjacency computes the knight-move graph for the grid's current barriers.
func buildAdjacency(g *Grid) adjacency {
	adj := make(adjacency, g.rows*g.cols)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			from := Position{Row: row, Col: col}
			adj[from] = knightMoves(g, from)
		}
	}
	return adj
}

// knightMoves lists the reachable cells from p. Offsets that leave the grid are skipped.
func knightMoves(g *Grid, p Position) []Position {
	moves := make([]Position, 0, len(knightOffsets))
	for _, off := range knightOffsets {
		to := Position{Row: p.Row + off.Row, Col: p.Col + off.Col}
		if !g.InBounds(to) {
			continue
		}
		if g.cells[to.Row][to.Col].IsBarrier() {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}
