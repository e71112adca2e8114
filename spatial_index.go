package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// pointTolerance is the half-size of the box used to query the tree for a point.
const pointTolerance = 1e-9

// ObstacleEntry wraps an obstacle polygon for R-tree storage
type ObstacleEntry struct {
	Polygon orb.Polygon
	BBox    rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *ObstacleEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers which obstacles cover a point in layout coordinates.
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex indexes the obstacles by bounding box. Degenerate polygons
// (no area) are skipped; they cannot contain a cell centre.
func NewSpatialIndex(obstacles []orb.Polygon) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	size := 0

	for _, polygon := range obstacles {
		bbox, err := boundingRect(polygon.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&ObstacleEntry{Polygon: polygon, BBox: bbox})
		size++
	}

	return &SpatialIndex{tree: tree, size: size}
}

// Len is the number of indexed obstacles.
func (si *SpatialIndex) Len() int { return si.size }

// QueryPoint returns the obstacles whose bounding box contains pt.
func (si *SpatialIndex) QueryPoint(pt orb.Point) []orb.Polygon {
	results := si.tree.SearchIntersect(rtreego.Point{pt.X(), pt.Y()}.ToRect(pointTolerance))
	polygons := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		polygons = append(polygons, item.(*ObstacleEntry).Polygon)
	}
	return polygons
}

// Contains reports whether any obstacle covers pt.
func (si *SpatialIndex) Contains(pt orb.Point) bool {
	for _, polygon := range si.QueryPoint(pt) {
		if planar.PolygonContains(polygon, pt) {
			return true
		}
	}
	return false
}

// boundingRect converts an orb bound to an rtreego rectangle.
func boundingRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{b.Max.X() - b.Min.X(), b.Max.Y() - b.Min.Y()},
	)
}
