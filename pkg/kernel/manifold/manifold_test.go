//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/decorated/pkg/kernel"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func TestCylinder(t *testing.T) {
	k := mustNew(t)
	s := k.Cylinder(20, 5, 32)
	if s == nil {
		t.Fatal("Cylinder() returned nil")
	}
	min, max := s.BoundingBox()

	// Cylinder is centered, radius=5, height=20.
	if min[2] < -10.01 || min[2] > -9.99 {
		t.Errorf("Cylinder min Z = %f, want ~-10", min[2])
	}
	if max[2] < 9.99 || max[2] > 10.01 {
		t.Errorf("Cylinder max Z = %f, want ~10", max[2])
	}

	// X/Y bounds should be within the radius (polygon inscribed in circle).
	for i := 0; i < 2; i++ {
		if min[i] > -4.5 {
			t.Errorf("Cylinder min[%d] = %f, want <= -4.5", i, min[i])
		}
		if max[i] < 4.5 {
			t.Errorf("Cylinder max[%d] = %f, want >= 4.5", i, max[i])
		}
	}
}

func TestSphere(t *testing.T) {
	k := mustNew(t)
	s := k.Sphere(3, 0)
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if min[i] < -3.001 || min[i] > -2.9 {
			t.Errorf("Sphere min[%d] = %f, want ~-3", i, min[i])
		}
		if max[i] > 3.001 || max[i] < 2.9 {
			t.Errorf("Sphere max[%d] = %f, want ~3", i, max[i])
		}
	}
}

func TestJoin(t *testing.T) {
	k := mustNew(t)
	parts := []kernel.Solid{
		k.Sphere(1, 16),
		k.Translate(k.Sphere(1, 16), 10, 0, 0),
		k.Translate(k.Sphere(1, 16), 0, 10, 0),
	}
	j := k.Join(parts...)
	min, max := j.BoundingBox()
	if math.Abs(max[0]-11) > 1e-6 || math.Abs(max[1]-11) > 1e-6 || min[0] > -0.9 {
		t.Errorf("Join bounds = %v..%v", min, max)
	}
	if k.Join() != nil {
		t.Error("Join() of nothing should be nil")
	}
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	cyl := k.Cylinder(10, 5, 4)
	moved := k.Translate(cyl, 100, 200, 300)
	if moved == nil {
		t.Fatal("Translate() returned nil")
	}

	min, max := moved.BoundingBox()
	if math.Abs(min[2]-295) > 1e-6 || math.Abs(max[2]-305) > 1e-6 {
		t.Errorf("Translate Z bounds = %f..%f, want 295..305", min[2], max[2])
	}
	if math.Abs(max[0]-105) > 1e-6 {
		t.Errorf("Translate max X = %f, want 105", max[0])
	}
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	cyl := k.Cylinder(10, 5, 8)
	mesh, err := k.ToMesh(cyl, kernel.DefaultTolerance)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if mesh.IsEmpty() {
		t.Error("ToMesh() returned empty mesh for a cylinder")
	}

	// An 8-sided prism has 2*6 cap triangles and 16 side triangles.
	if mesh.TriangleCount() < 28 {
		t.Errorf("ToMesh() triangle count = %d, want >= 28", mesh.TriangleCount())
	}

	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("ToMesh() normals length = %d, vertices length = %d, want equal",
			len(mesh.Normals), len(mesh.Vertices))
	}
}
