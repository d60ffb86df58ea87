package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	p := Scale(Pt(1, -2, 3), 2.5)
	assert.Equal(t, Pt(2.5, -5, 7.5), p)
}

func TestDirectionAndLength(t *testing.T) {
	d := Direction(Pt(1, 1, 1), Pt(4, 5, 1))
	assert.Equal(t, Pt(3, 4, 0), d)
	assert.InDelta(t, 5.0, Length(d), 1e-12)

	e := MakeEdge(Pt(0, 0, 0), Pt(0, 0, 2))
	assert.InDelta(t, 2.0, e.Length(), 1e-12)
	assert.Equal(t, Pt(0, 0, 2), e.Direction())
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, Pt(1, 2, 3), Midpoint(Pt(0, 0, 0), Pt(2, 4, 6)))
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		name           string
		v              Vector
		polar, azimuth float64
	}{
		{"up", Pt(0, 0, 1), 0, 0},
		{"down", Pt(0, 0, -3), 180, 0},
		{"x", Pt(2, 0, 0), 90, 0},
		{"y", Pt(0, 1, 0), 90, 90},
		{"zero", Pt(0, 0, 0), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a := Orientation(tt.v)
			assert.InDelta(t, tt.polar, p, 1e-9)
			assert.InDelta(t, tt.azimuth, a, 1e-9)
		})
	}
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(Pt(1, 2, 3)))
	assert.False(t, Finite(Pt(math.NaN(), 0, 0)))
	assert.False(t, Finite(Pt(0, math.Inf(1), 0)))
}

func TestRing(t *testing.T) {
	pts := Ring(2, 5, 4)
	require.Len(t, pts, 5)
	assert.Equal(t, pts[0], pts[4])
	for _, p := range pts {
		assert.InDelta(t, 2.0, math.Hypot(p.X, p.Y), 1e-12)
		assert.Equal(t, 5.0, p.Z)
	}
	assert.True(t, Near(pts[1], Pt(0, 2, 5), 1e-12))
}
