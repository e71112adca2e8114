package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Layout feature roles for Point features.
const (
	roleStart = "start"
	roleEnd   = "end"
)

// LoadLayout reads a GeoJSON obstacle layout file and stamps it onto a new
// rows x cols grid.
func LoadLayout(path string, rows, cols int, logger *zap.Logger) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return ParseLayout(data, rows, cols, logger)
}

// ParseLayout builds a grid from a GeoJSON FeatureCollection in cell
// coordinates. Polygon and MultiPolygon features are obstacles: every cell
// whose centre they cover becomes a barrier. Point features with a "role"
// property of "start" or "end" place those cells.
func ParseLayout(data []byte, rows, cols int, logger *zap.Logger) (*Grid, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	var obstacles []orb.Polygon
	var start, end *Position
	for i, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			obstacles = append(obstacles, geometry)
		case orb.MultiPolygon:
			obstacles = append(obstacles, geometry...)
		case orb.Point:
			p := positionAt(geometry)
			if !grid.InBounds(p) {
				return nil, fmt.Errorf("%w: feature %d point %v is outside the %dx%d grid", ErrInvalidBoard, i, p, rows, cols)
			}
			switch role := feature.Properties.MustString("role", ""); role {
			case roleStart:
				if start != nil {
					return nil, fmt.Errorf("%w: more than one start point", ErrInvalidBoard)
				}
				start = &p
			case roleEnd:
				if end != nil {
					return nil, fmt.Errorf("%w: more than one end point", ErrInvalidBoard)
				}
				end = &p
			default:
				logger.Warn("skipping point feature without a start/end role",
					zap.Int("feature", i), zap.String("role", role))
			}
		default:
			logger.Warn("skipping unsupported layout geometry",
				zap.Int("feature", i), zap.String("type", geometryType(feature.Geometry)))
		}
	}

	obstacles = RemoveContainedObstacles(clipToGrid(obstacles, rows, cols, logger))
	index := NewSpatialIndex(obstacles)
	barriers := stampObstacles(grid, index)
	logger.Info("layout loaded",
		zap.Int("features", len(fc.Features)),
		zap.Int("obstacles", index.Len()),
		zap.Int("barriers", barriers))

	if start != nil {
		if grid.Status(*start) == StatusBarrier {
			return nil, fmt.Errorf("%w: start %v lies inside an obstacle", ErrInvalidBoard, *start)
		}
		if err := grid.SetStart(*start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
		}
	}
	if end != nil {
		if grid.Status(*end) == StatusBarrier {
			return nil, fmt.Errorf("%w: end %v lies inside an obstacle", ErrInvalidBoard, *end)
		}
		if err := grid.SetEnd(*end); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
		}
	}
	return grid, nil
}

// stampObstacles marks every cell whose centre is covered by an obstacle as a
// barrier and returns how many cells it marked.
func stampObstacles(grid *Grid, index *SpatialIndex) int {
	if index.Len() == 0 {
		return 0
	}
	marked := 0
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			p := Position{Row: row, Col: col}
			if !index.Contains(cellCenter(p)) {
				continue
			}
			if err := grid.SetBarrier(p); err == nil {
				marked++
			}
		}
	}
	return marked
}

// clipToGrid drops obstacles that do not touch the grid at all.
func clipToGrid(obstacles []orb.Polygon, rows, cols int, logger *zap.Logger) []orb.Polygon {
	bound := gridBound(rows, cols)
	kept := obstacles[:0]
	for _, polygon := range obstacles {
		if !polygon.Bound().Intersects(bound) {
			logger.Debug("obstacle outside grid", zap.Any("bound", polygon.Bound()))
			continue
		}
		kept = append(kept, polygon)
	}
	return kept
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "none"
	}
	return g.GeoJSONType()
}
