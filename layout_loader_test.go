package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleLayout = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[1,1],[3,1],[3,3],[1,3],[1,1]]]}},
    {"type": "Feature", "properties": {"note": "inside the first"},
     "geometry": {"type": "Polygon", "coordinates": [[[1.2,1.2],[1.8,1.2],[1.8,1.8],[1.2,1.8],[1.2,1.2]]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[5,0],[6,0],[6,1],[5,1],[5,0]]],
        [[[100,100],[101,100],[101,101],[100,101],[100,100]]]
     ]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "LineString", "coordinates": [[0,0],[5,5]]}},
    {"type": "Feature", "properties": {"role": "start"},
     "geometry": {"type": "Point", "coordinates": [0.5, 0.5]}},
    {"type": "Feature", "properties": {"role": "end"},
     "geometry": {"type": "Point", "coordinates": [4.2, 4.7]}}
  ]
}`

func TestParseLayout(t *testing.T) {
	g, err := ParseLayout([]byte(sampleLayout), 6, 6, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"S....#",
		".##...",
		".##...",
		"......",
		"....E.",
		"......",
	}, FormatGrid(g))
}

func TestParseLayoutThenSearch(t *testing.T) {
	g, err := ParseLayout([]byte(sampleLayout), 6, 6, nil)
	require.NoError(t, err)

	res, err := RunGrid(context.Background(), g, nil)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assertValidPath(t, g, Position{0, 0}, Position{4, 4}, res)
}

func TestParseLayoutErrors(t *testing.T) {
	point := func(role string, x, y float64) string {
		return `{"type":"Feature","properties":{"role":"` + role + `"},"geometry":{"type":"Point","coordinates":[` +
			formatFloat(x) + `,` + formatFloat(y) + `]}}`
	}
	collection := func(features ...string) []byte {
		out := `{"type":"FeatureCollection","features":[`
		for i, f := range features {
			if i > 0 {
				out += ","
			}
			out += f
		}
		return []byte(out + `]}`)
	}
	block := `{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,2],[0,0]]]}}`

	tests := []struct {
		name string
		data []byte
	}{
		{"not geojson", []byte("not json")},
		{"point off the grid", collection(point("start", 9.5, 0.5))},
		{"two starts", collection(point("start", 0.5, 0.5), point("start", 1.5, 0.5))},
		{"two ends", collection(point("end", 0.5, 0.5), point("end", 1.5, 0.5))},
		{"start inside an obstacle", collection(block, point("start", 1.5, 1.5))},
		{"end inside an obstacle", collection(block, point("end", 0.5, 0.5))},
		{"start and end on one cell", collection(point("start", 3.5, 3.5), point("end", 3.2, 3.9))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.data, 5, 5, nil)
			assert.ErrorIs(t, err, ErrInvalidBoard)
		})
	}

	t.Run("bad dimensions", func(t *testing.T) {
		_, err := ParseLayout(collection(), 0, 5, nil)
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleLayout), 0o644))

	g, err := LoadLayout(path, 6, 6, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusBarrier, g.Status(Position{1, 1}))

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.geojson"), 6, 6, nil)
	assert.Error(t, err)
}
