package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/decorated/pkg/geom"
)

func TestEdgeCounts(t *testing.T) {
	want := map[Kind]int{
		Tetrahedron:  6,
		Cube:         12,
		Octahedron:   12,
		Icosahedron:  30,
		Dodecahedron: 30,
	}
	for kind, n := range want {
		t.Run(kind.String(), func(t *testing.T) {
			d := MustDescribe(kind)
			adj := d.Adjacency()
			assert.Equal(t, len(d.Vertices), adj.Size())
			assert.Equal(t, n, adj.Count())
			assert.Len(t, adj.Edges(), n)
		})
	}
}

func TestAuthoredEdgesMatchAdjacency(t *testing.T) {
	for _, kind := range Kinds() {
		d := MustDescribe(kind)
		if d.Edges == nil {
			continue
		}
		t.Run(kind.String(), func(t *testing.T) {
			adj := d.Adjacency()
			require.Len(t, d.Edges, adj.Count(), "authored edge list size")
			for _, e := range d.Edges {
				assert.True(t, adj.Adjacent(e[0], e[1]), "edge %v not derived from faces", e)
			}
			assert.ElementsMatch(t, d.Edges, adj.Edges())
		})
	}
}

func TestCanonicalMeasures(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			d := MustDescribe(kind)
			for i, v := range d.Vertices {
				assert.InDelta(t, d.Radius, geom.Length(v), 1e-9, "vertex %d circumradius", i)
			}
			for _, e := range d.Adjacency().Edges() {
				l := geom.Distance(d.Vertices[e[0]], d.Vertices[e[1]])
				assert.InDelta(t, d.EdgeLength, l, 1e-9, "edge %v length", e)
			}
		})
	}
}

func TestFaceArity(t *testing.T) {
	want := map[Kind]int{Tetrahedron: 3, Cube: 4, Octahedron: 3, Icosahedron: 3, Dodecahedron: 5}
	for kind, n := range want {
		for _, f := range MustDescribe(kind).Faces {
			assert.Len(t, f, n, "%s face %v", kind, f)
		}
	}
}

func TestFactor(t *testing.T) {
	d := MustDescribe(Cube)

	f, err := d.Factor(OuterRadius, 2*math.Sqrt(3))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f, 1e-12)

	f, err = d.Factor(EdgeLength, 10)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, f, 1e-12)

	_, err = d.Factor(ScaleMode(7), 1)
	assert.Error(t, err)
}

func TestDescribeUnknownKind(t *testing.T) {
	_, err := Describe(Kind(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))

	var lerr *LookupError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, Kind(42), lerr.Kind)

	assert.Panics(t, func() { MustDescribe(Kind(-1)) })
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Icosahedron ")
	require.NoError(t, err)
	assert.Equal(t, Icosahedron, k)

	_, err = ParseKind("hexagon")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseScaleMode(t *testing.T) {
	m, err := ParseScaleMode("edge-length")
	require.NoError(t, err)
	assert.Equal(t, EdgeLength, m)

	m, err = ParseScaleMode("outer radius")
	require.NoError(t, err)
	assert.Equal(t, OuterRadius, m)

	_, err = ParseScaleMode("diameter")
	assert.Error(t, err)
}

func TestBuildEdgeAdjacencyWrapAround(t *testing.T) {
	adj := BuildEdgeAdjacency([][]int{{0, 1, 2, 3}})
	assert.Equal(t, 4, adj.Size())
	assert.True(t, adj.Adjacent(3, 0))
	assert.True(t, adj.Adjacent(0, 3))
	assert.False(t, adj.Adjacent(0, 2))
	assert.False(t, adj.Adjacent(0, 9))
	assert.Equal(t, [][2]int{{0, 1}, {0, 3}, {1, 2}, {2, 3}}, adj.Edges())
}
