package brep

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGeometry is wrapped by every GeometryError.
var ErrGeometry = errors.New("geometry construction failed")

// maxProblems bounds the number of individual findings kept on an error.
const maxProblems = 8

// GeometryError reports degenerate or inconsistent topology found while
// wiring faces, sewing a shell, or checking a solid.
type GeometryError struct {
	Op       string   // "face", "shell", "solid"
	Problems []string // individual findings, truncated
	Total    int      // number of findings before truncation
}

func (e *GeometryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "brep: %s: %v", e.Op, ErrGeometry)
	if len(e.Problems) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Problems, "; "))
	}
	if e.Total > len(e.Problems) {
		fmt.Fprintf(&b, " (and %d more)", e.Total-len(e.Problems))
	}
	return b.String()
}

func (e *GeometryError) Unwrap() error { return ErrGeometry }

// problems accumulates findings for a GeometryError.
type problems struct {
	op    string
	list  []string
	total int
}

func (p *problems) addf(format string, args ...any) {
	p.total++
	if len(p.list) < maxProblems {
		p.list = append(p.list, fmt.Sprintf(format, args...))
	}
}

func (p *problems) err() error {
	if p.total == 0 {
		return nil
	}
	return &GeometryError{Op: p.op, Problems: p.list, Total: p.total}
}
