package document

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/decorated/pkg/brep"
	"github.com/chazu/decorated/pkg/feature"
	"github.com/chazu/decorated/pkg/frame"
)

func TestAddAndLookup(t *testing.T) {
	d := New("")
	assert.Equal(t, DefaultName, d.Name)
	assert.False(t, d.Saved())
	assert.Empty(t, d.Dir())

	a, err := d.AddObject("", feature.NewStripeCylinder())
	require.NoError(t, err)
	b, err := d.AddObject("", feature.NewStripeCylinder())
	require.NoError(t, err)
	assert.Equal(t, "stripe-cylinder", a.Name)
	assert.Equal(t, "stripe-cylinder001", b.Name)

	_, err = d.AddObject("stripe-cylinder", feature.NewPlatonicFrame())
	assert.True(t, errors.Is(err, ErrDuplicateName))

	assert.Same(t, b, d.Lookup("stripe-cylinder001"))
	assert.Nil(t, d.Lookup("missing"))
	assert.Len(t, d.Objects(), 2)
	assert.True(t, a.Dirty())
}

func TestSelection(t *testing.T) {
	d := New("doc")
	_, _ = d.AddObject("a", feature.NewStripeCylinder())
	_, _ = d.AddObject("b", feature.NewStripeCylinder())

	require.NoError(t, d.Select("b", "a"))
	sel := d.Selection()
	require.Len(t, sel, 2)
	assert.Equal(t, "b", sel[0].Name)

	err := d.Select("a", "zzz")
	assert.True(t, errors.Is(err, ErrNoObject))
	assert.Len(t, d.Selection(), 2, "a failed Select keeps the previous selection")

	d.ClearSelection()
	assert.Empty(t, d.Selection())
}

func TestRecomputeKeepsLastGoodShape(t *testing.T) {
	d := New("doc")
	o, err := d.AddObject("tube", feature.NewStripeCylinder())
	require.NoError(t, err)

	require.NoError(t, d.Recompute(nil))
	assert.False(t, o.Dirty())
	good := o.Shape
	require.NotNil(t, good)
	assert.NoError(t, o.Err)

	require.NoError(t, d.SetParameter("tube", "thickness", 0.0))
	assert.True(t, o.Dirty())
	err = d.Recompute(nil)
	require.Error(t, err)
	assert.True(t, feature.IsKind(err, feature.DegenerateGeometry))
	assert.Same(t, good, o.Shape)
	assert.Error(t, o.Err)

	require.NoError(t, d.SetParameter("tube", "thickness", 0.5))
	require.NoError(t, d.Recompute(nil))
	assert.NotSame(t, good, o.Shape)
	assert.NoError(t, o.Err)
}

func TestRecomputeCollectsErrors(t *testing.T) {
	d := New("doc")
	_, _ = d.AddObject("ok", feature.NewStripeCylinder())
	bad1, _ := d.AddObject("bad1", feature.NewStripeCylinder())
	bad2, _ := d.AddObject("bad2", feature.NewPlatonicFrame())
	bad1.Feature.(*feature.StripeCylinder).Params.Height = -1

	err := d.Recompute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad1")
	assert.Contains(t, err.Error(), "bad2")
	assert.Nil(t, bad2.Shape)
	assert.NotNil(t, d.Lookup("ok").Shape)

	// Nothing is dirty any more.
	assert.NoError(t, d.Recompute(nil))
	assert.Error(t, d.RecomputeAll(nil))
}

func TestRejectedEditKeepsShape(t *testing.T) {
	d := New("doc")
	o, err := d.AddObject("tube", feature.NewStripeCylinder())
	require.NoError(t, err)
	require.NoError(t, d.Recompute(nil))
	good := o.Shape.(*brep.Solid)
	faces := good.FaceCount()
	require.NotZero(t, faces)

	require.Error(t, d.SetParameter("tube", "segments", 2.5))
	assert.False(t, o.Dirty(), "a rejected edit does not schedule a rebuild")
	assert.Same(t, good, o.Shape)

	require.NoError(t, d.SetParameter("tube", "height", 12.0))
	require.NoError(t, d.Recompute(nil))
	rebuilt := o.Shape.(*brep.Solid)
	assert.NotSame(t, good, rebuilt)
	assert.Equal(t, faces, rebuilt.FaceCount())
	_, hi := rebuilt.BoundingBox()
	assert.InDelta(t, 12, hi[2], 1e-9)
}

func TestSetParameter(t *testing.T) {
	d := New("doc")
	o, _ := d.AddObject("ico", feature.NewPlatonicFrame())
	require.NoError(t, d.SetParameter("ico", "style", "polyhedron"))
	require.NoError(t, d.SetParameter("ico", "solid", "icosahedron"))
	require.NoError(t, d.SetParameter("ico", "edge-length", 4))
	require.NoError(t, d.Recompute(nil))

	fr := o.Shape.(*frame.Frame)
	require.IsType(t, &brep.Solid{}, fr.Solid)
	assert.Len(t, fr.Struts, 30)
	for i := range fr.Struts {
		assert.InDelta(t, 4, fr.StrutLength(i), 1e-9)
	}

	assert.True(t, errors.Is(d.SetParameter("nope", "style", "cloud"), ErrNoObject))
	assert.Error(t, d.SetParameter("ico", "colour", "red"))
}

func TestDir(t *testing.T) {
	d := New("part")
	d.FileName = filepath.Join("work", "part.decor")
	assert.True(t, d.Saved())
	assert.Equal(t, "work", d.Dir())
}
