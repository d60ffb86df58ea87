package sdfx

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/decorated/pkg/kernel"
)

// coarse keeps marching cubes tests fast.
var coarse = kernel.Tolerance{Linear: 0.5, Angular: 10}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 32)
	mesh, err := k.ToMesh(cyl, coarse)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestSphereBoundingBox(t *testing.T) {
	k := New()
	s := k.Translate(k.Sphere(2, 0), 10, 0, 0)
	min, max := s.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{8, -2, -2}
	expectMax := [3]float64{12, 2, 2}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestJoin(t *testing.T) {
	k := New()
	a := k.Sphere(5, 0)
	b := k.Translate(k.Sphere(5, 0), 20, 0, 0)
	c := k.Translate(k.Sphere(5, 0), 0, 20, 0)

	j := k.Join(a, b, c)
	min, max := j.BoundingBox()
	if math.Abs(min[0]+5) > 0.01 || math.Abs(max[0]-25) > 0.01 || math.Abs(max[1]-25) > 0.01 {
		t.Errorf("join bounds = %v..%v", min, max)
	}
	mesh, err := k.ToMesh(j, coarse)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("join mesh is empty")
	}

	if k.Join() != nil {
		t.Error("Join() of nothing should be nil")
	}
	if k.Join(a) != a {
		t.Error("Join(a) should return a")
	}

	u := k.Union(a, b)
	umin, umax := u.BoundingBox()
	if math.Abs(umin[0]+5) > 0.01 || math.Abs(umax[0]-25) > 0.01 {
		t.Errorf("union bounds = %v..%v", umin, umax)
	}
}

func TestRotateAlignsCylinder(t *testing.T) {
	k := New()
	// A Z cylinder rotated 90 degrees about Y lies along X.
	cyl := k.Rotate(k.Cylinder(20, 1, 0), 0, 90, 0)
	min, max := cyl.BoundingBox()
	if math.Abs(max[0]-min[0]-20) > 0.5 {
		t.Errorf("x extent = %f, want ~20", max[0]-min[0])
	}
	if max[2]-min[2] > 2.5 {
		t.Errorf("z extent = %f, want ~2", max[2]-min[2])
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	cyl := k.Cylinder(10, 5, 0)
	translated := k.Translate(cyl, 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

// tetra is a polyhedral solid outside any kernel.
type tetra struct{}

func (tetra) BoundingBox() (min, max [3]float64) { return [3]float64{}, [3]float64{1, 1, 1} }

func (tetra) Triangles() [][3]v3.Vec {
	o := v3.Vec{}
	x, y, z := v3.Vec{X: 1}, v3.Vec{Y: 1}, v3.Vec{Z: 1}
	return [][3]v3.Vec{{o, y, x}, {o, x, z}, {o, z, y}, {x, y, z}}
}

func TestToMeshPolyhedral(t *testing.T) {
	k := New()
	mesh, err := k.ToMesh(tetra{}, kernel.DefaultTolerance)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if got := mesh.TriangleCount(); got != 4 {
		t.Fatalf("triangle count = %d, want 4", got)
	}
}

func TestToMeshNil(t *testing.T) {
	if _, err := New().ToMesh(nil, coarse); err == nil {
		t.Fatal("ToMesh(nil) should fail")
	}
}
