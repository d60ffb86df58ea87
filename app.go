package main

import (
	"fmt"

	"github.com/chazu/decorated/pkg/document"
	"github.com/chazu/decorated/pkg/engine"
	"github.com/chazu/decorated/pkg/export"
	"github.com/chazu/decorated/pkg/kernel"
	"github.com/chazu/decorated/pkg/kernel/manifold"
	"github.com/chazu/decorated/pkg/kernel/sdfx"
	"github.com/chazu/decorated/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App runs a script through evaluation, rebuild, tessellation and export.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	tol    kernel.Tolerance
	doc    *document.Document
}

// MeshData is the JSON-serializable mesh format of one document object.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation. Rebuild failures of
// single objects are reported as warnings; the other objects still mesh.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return NewAppWithKernel(sdfx.New())
}

// NewAppWithKernel creates an App that rebuilds and meshes with k.
func NewAppWithKernel(k kernel.Kernel) *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
		tol:    kernel.PreviewTolerance,
	}
}

// newKernel returns the kernel registered under name.
func newKernel(name string) (kernel.Kernel, error) {
	switch name {
	case "", "sdfx":
		return sdfx.New(), nil
	case "manifold":
		return manifold.New()
	}
	return nil, fmt.Errorf("unknown kernel %q, expected sdfx or manifold", name)
}

// SetTolerance changes the display tessellation tolerance of later
// evaluations. Zero fields keep their current values. Export always uses
// kernel.DefaultTolerance.
func (a *App) SetTolerance(tol kernel.Tolerance) {
	if tol.Linear > 0 {
		a.tol.Linear = tol.Linear
	}
	if tol.Angular > 0 {
		a.tol.Angular = tol.Angular
	}
}

// Document returns the document of the last successful evaluation, or nil.
func (a *App) Document() *document.Document {
	return a.doc
}

// Evaluate takes Lisp source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
	log := kernel.Logger()

	// Step 1: Evaluate the Lisp source into a document.
	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Error("evaluate: fatal error", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the result format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	a.doc = d

	// Step 3: Rebuild every object. Objects that fail keep no shape.
	for _, o := range d.Objects() {
		if err := o.Recompute(a.kernel); err != nil {
			result.Warnings = append(result.Warnings, EvalErrorData{Message: err.Error()})
		}
	}

	// Step 4: Tessellate the document into triangle meshes.
	meshes, err := tessellate.Document(d, a.kernel, a.tol)
	if err != nil {
		log.Error("evaluate: tessellation failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 5: Convert kernel meshes to the MeshData format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

// Export writes the selected object of the last evaluated document as STL
// next to the document file and returns the path.
func (a *App) Export() (string, error) {
	if a.doc == nil {
		return "", fmt.Errorf("export: no document evaluated")
	}
	return export.Selected(a.kernel, a.doc, kernel.DefaultTolerance)
}
