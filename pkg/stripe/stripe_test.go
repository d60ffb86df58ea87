package stripe

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/decorated/pkg/brep"
)

// tubeVolume is the volume of a prism over the regular n-gon annulus.
func tubeVolume(p Params) float64 {
	n := float64(p.Segments)
	ring := n / 2 * math.Sin(2*math.Pi/n)
	r := p.InnerRadius()
	return p.Height * ring * (p.Radius*p.Radius - r*r)
}

func TestBuildFaceCount(t *testing.T) {
	p := Params{Radius: 2, Thickness: 1, Height: 10, Stripes: 1, Segments: 4}
	solid, err := Build(p)
	require.NoError(t, err)
	assert.Equal(t, 24, solid.FaceCount())
	assert.Equal(t, p.FaceCount(), solid.FaceCount())
	require.NoError(t, solid.Check())
	assert.InDelta(t, 60.0, solid.Volume(), 1e-9)
}

func TestBuildBelowThresholdIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"no segments", Params{Radius: 2, Thickness: 1, Height: 10, Stripes: 5, Segments: 0}},
		{"negative segments", Params{Radius: 2, Thickness: 1, Height: 10, Stripes: 5, Segments: -3}},
		{"no stripes", Params{Radius: 2, Thickness: 1, Height: 10, Stripes: 0, Segments: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solid, err := Build(tt.p)
			require.NoError(t, err)
			assert.True(t, solid.IsEmpty())
			assert.Zero(t, tt.p.FaceCount())
		})
	}
}

func TestBuildIsClosedManifold(t *testing.T) {
	for _, segments := range []int{3, 4, 7, 12, 32} {
		for _, stripes := range []int{1, 2, 5} {
			for _, reversed := range []bool{false, true} {
				p := Params{Radius: 3, Thickness: 0.75, Height: 4, Stripes: stripes, Segments: segments, Reversed: reversed}
				solid, err := Build(p)
				require.NoError(t, err)
				assert.NoError(t, solid.Check(), "%+v", p)
				assert.Greater(t, solid.Volume(), 0.0, "%+v", p)
			}
		}
	}
}

func TestReversedKeepsVolume(t *testing.T) {
	p := Params{Radius: 2, Thickness: 0.5, Height: 10, Stripes: 5, Segments: 12}
	plain, err := Build(p)
	require.NoError(t, err)
	p.Reversed = true
	reversed, err := Build(p)
	require.NoError(t, err)

	assert.InDelta(t, plain.Volume(), reversed.Volume(), 1e-9)
	assert.InDelta(t, tubeVolume(p), reversed.Volume(), 1e-9)
	assert.Equal(t, plain.FaceCount(), reversed.FaceCount())
	assert.NotEqual(t, plain.Faces()[0].Vertices(), reversed.Faces()[0].Vertices())
}

func TestOuterWallFacesOutward(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		p := Params{Radius: 2, Thickness: 1, Height: 3, Stripes: 2, Segments: 6, Reversed: reversed}
		solid, err := Build(p)
		require.NoError(t, err)
		wall := 2 * p.Segments * p.Stripes
		faces := solid.Faces()
		for i, f := range faces[:2*wall] {
			c := f.Centroid()
			radial := c.X*f.Normal().X + c.Y*f.Normal().Y
			if i < wall {
				assert.Less(t, radial, 0.0, "inner face %d should face the axis", i)
			} else {
				assert.Greater(t, radial, 0.0, "outer face %d should face away from the axis", i)
			}
		}
		assert.InDelta(t, -1, faces[2*wall].Normal().Z, 1e-12)
		assert.InDelta(t, 1, faces[len(faces)-1].Normal().Z, 1e-12)
	}
}

func TestDegenerateThicknessDoesNotPanic(t *testing.T) {
	tests := []struct {
		name      string
		thickness float64
	}{
		{"zero thickness", 0},
		{"solid core", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Radius: 2, Thickness: tt.thickness, Height: 10, Stripes: 2, Segments: 8}
			var solid *brep.Solid
			require.NotPanics(t, func() {
				var err error
				solid, err = Build(p)
				require.NoError(t, err)
			})
			assert.Equal(t, p.FaceCount(), solid.FaceCount())
			assert.Error(t, solid.Check())
		})
	}
}

func TestRefineMergesPanels(t *testing.T) {
	p := Params{Radius: 2, Thickness: 1, Height: 6, Stripes: 3, Segments: 6}
	plain, err := Build(p)
	require.NoError(t, err)

	p.Refine = true
	refined, err := Build(p)
	require.NoError(t, err)

	require.NoError(t, refined.Check())
	assert.InDelta(t, plain.Volume(), refined.Volume(), 1e-9)
	// One quad per wall column, caps unchanged.
	assert.Equal(t, 4*p.Segments, refined.FaceCount())
	for _, f := range refined.Faces() {
		assert.Len(t, f.Vertices(), 4)
	}
}

func TestNonFiniteParameters(t *testing.T) {
	p := DefaultParams()
	p.Height = math.NaN()
	_, err := Build(p)
	require.Error(t, err)
	var gerr *brep.GeometryError
	assert.True(t, errors.As(err, &gerr))
	assert.True(t, errors.Is(err, brep.ErrGeometry))
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	solid, err := Build(p)
	require.NoError(t, err)
	require.NoError(t, solid.Check())
	assert.Equal(t, 4*12*5+2*12, solid.FaceCount())
	assert.InDelta(t, tubeVolume(p), solid.Volume(), 1e-9)
}
