package brep

import "github.com/chazu/decorated/pkg/geom"

// Shell is an unordered collection of faces. A closed shell has every
// directed edge matched by exactly one opposite edge on another face.
type Shell struct {
	Faces []Face
}

// MakeShell collects faces into a shell without checking them.
func MakeShell(faces ...Face) *Shell {
	return &Shell{Faces: faces}
}

// Add appends faces to the shell.
func (s *Shell) Add(faces ...Face) {
	s.Faces = append(s.Faces, faces...)
}

// edgeKey identifies a directed edge by its endpoints.
type edgeKey struct {
	a, b geom.Point3
}

// Check verifies the shell is closed, manifold and consistently oriented:
// every face is valid, and every directed edge a→b is used by exactly one
// face while its reverse b→a is used by exactly one other face.
func (s *Shell) Check() error {
	p := problems{op: "shell"}
	if len(s.Faces) == 0 {
		p.addf("no faces")
		return p.err()
	}

	uses := make(map[edgeKey]int)
	owner := make(map[edgeKey]int)
	for i, f := range s.Faces {
		f.validate(&p, i)
		for _, e := range f.Loop {
			k := edgeKey{e.A, e.B}
			uses[k]++
			owner[k] = i
		}
	}

	for k, n := range uses {
		if n > 1 {
			p.addf("edge %v→%v traversed %d times in the same direction", k.a, k.b, n)
			continue
		}
		rev := edgeKey{k.b, k.a}
		switch m := uses[rev]; {
		case m == 0:
			p.addf("edge %v→%v of face %d is open", k.a, k.b, owner[k])
		case m == 1 && owner[rev] == owner[k]:
			p.addf("edge %v→%v folds back onto face %d", k.a, k.b, owner[k])
		}
	}
	return p.err()
}

// Closed reports whether Check passes.
func (s *Shell) Closed() bool {
	return s.Check() == nil
}

// EdgeCount returns the number of distinct undirected edges.
func (s *Shell) EdgeCount() int {
	seen := make(map[edgeKey]bool)
	for _, f := range s.Faces {
		for _, e := range f.Loop {
			k := edgeKey{e.A, e.B}
			if seen[edgeKey{e.B, e.A}] {
				continue
			}
			seen[k] = true
		}
	}
	return len(seen)
}

// VertexCount returns the number of distinct vertices.
func (s *Shell) VertexCount() int {
	seen := make(map[geom.Point3]bool)
	for _, f := range s.Faces {
		for _, e := range f.Loop {
			seen[e.A] = true
		}
	}
	return len(seen)
}
