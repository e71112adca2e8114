package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RemoveContainedObstacles drops obstacles that lie entirely inside another
// obstacle. They add nothing to the rasterised barriers and only grow the index.
func RemoveContainedObstacles(obstacles []orb.Polygon) []orb.Polygon {
	if len(obstacles) <= 1 {
		return obstacles
	}

	contained := make([]bool, len(obstacles))
	for i := 0; i < len(obstacles); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(obstacles); j++ {
			if i == j || contained[j] {
				continue
			}

			// Check if obstacle i is contained in obstacle j
			if isObstacleContainedIn(obstacles[i], obstacles[j]) {
				contained[i] = true
				break
			}

			// Check if obstacle j is contained in obstacle i
			if isObstacleContainedIn(obstacles[j], obstacles[i]) {
				contained[j] = true
			}
		}
	}

	result := make([]orb.Polygon, 0, len(obstacles))
	for i, polygon := range obstacles {
		if !contained[i] {
			result = append(result, polygon)
		}
	}
	return result
}

// isObstacleContainedIn checks if every vertex of a's outer ring is inside b
func isObstacleContainedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 || len(a[0]) == 0 || len(b[0]) == 0 {
		return false
	}

	// Quick bounding box check first
	ab, bb := a.Bound(), b.Bound()
	if !bb.Contains(ab.Min) || !bb.Contains(ab.Max) {
		return false
	}

	for _, vertex := range a[0] {
		if !planar.PolygonContains(b, vertex) {
			return false
		}
	}
	return true
}
