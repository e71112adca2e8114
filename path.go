package main

// ReconstructPath walks the predecessor chain back from end, marking every
// predecessor Path and rendering once per marked cell. It returns the number
// of links followed, which is the path length in moves. The start cell is
// marked too; callers restore the Start and End statuses afterwards.
func ReconstructPath(grid *Grid, cameFrom map[Position]Position, end Position, renderer Renderer) int {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	moves := 0
	for current := end; moves < len(cameFrom); moves++ {
		previous, ok := cameFrom[current]
		if !ok {
			break
		}
		grid.mark(previous, StatusPath)
		renderer.Render(grid)
		current = previous
	}
	return moves
}

// tracePath returns the chain ending at end, ordered from its first cell to end.
func tracePath(cameFrom map[Position]Position, end Position) []Position {
	path := []Position{end}
	for current := end; len(path) <= len(cameFrom); {
		previous, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
