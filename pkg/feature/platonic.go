package feature

import (
	"fmt"

	"github.com/chazu/decorated/pkg/catalog"
	"github.com/chazu/decorated/pkg/frame"
	"github.com/chazu/decorated/pkg/kernel"
)

// PlatonicFrameType is the Type of a PlatonicFrame.
const PlatonicFrameType = "platonic-frame"

// PlatonicParams is the parameter set of a PlatonicFrame. OuterRadius and
// EdgeLength are alternative scale anchors; Measure says which is active.
type PlatonicParams struct {
	Solid       catalog.Kind      `json:"solid"`
	Measure     catalog.ScaleMode `json:"measure"`
	OuterRadius float64           `json:"outerRadius"`
	EdgeLength  float64           `json:"edgeLength"`
	EdgeRadius  float64           `json:"edgeRadius"`
	Style       frame.Style       `json:"style"`
}

// DefaultPlatonicParams returns the parameters of a new frame.
func DefaultPlatonicParams() PlatonicParams {
	return PlatonicParams{
		Solid:       catalog.Tetrahedron,
		Measure:     catalog.OuterRadius,
		OuterRadius: 10,
		EdgeLength:  5,
		EdgeRadius:  2,
		Style:       frame.StyleFrame,
	}
}

// Scale returns the value of the active measure.
func (p PlatonicParams) Scale() float64 {
	if p.Measure == catalog.EdgeLength {
		return p.EdgeLength
	}
	return p.OuterRadius
}

// Frame converts to builder parameters.
func (p PlatonicParams) Frame() frame.Params {
	return frame.Params{
		Kind:       p.Solid,
		Mode:       p.Measure,
		Scale:      p.Scale(),
		EdgeRadius: p.EdgeRadius,
		Style:      p.Style,
	}
}

// PlatonicFrame is the Platonic solid feature.
type PlatonicFrame struct {
	Params PlatonicParams
}

var _ Feature = (*PlatonicFrame)(nil)

// NewPlatonicFrame returns a frame with the default parameters.
func NewPlatonicFrame() *PlatonicFrame {
	return &PlatonicFrame{Params: DefaultPlatonicParams()}
}

func (f *PlatonicFrame) Type() string { return PlatonicFrameType }

func kindNames() []string {
	var names []string
	for _, k := range catalog.Kinds() {
		names = append(names, k.String())
	}
	return names
}

// Parameters lists the frame parameters.
func (f *PlatonicFrame) Parameters() []Param {
	d := DefaultPlatonicParams()
	p := f.Params
	const group = "Platonic solid"
	return []Param{
		{Name: "solid", Group: group, Kind: Enum, Doc: "Type of solid",
			Default: d.Solid.String(), Value: p.Solid.String(), Options: kindNames()},
		{Name: "measure", Group: group, Kind: Enum, Doc: "Measure type active",
			Default: d.Measure.String(), Value: p.Measure.String(),
			Options: []string{catalog.OuterRadius.String(), catalog.EdgeLength.String()}},
		{Name: "outer-radius", Group: group, Kind: Length, Doc: "Outer Radius", Default: d.OuterRadius, Value: p.OuterRadius},
		{Name: "edge-length", Group: group, Kind: Length, Doc: "Edge Length", Default: d.EdgeLength, Value: p.EdgeLength},
		{Name: "edge-radius", Group: group, Kind: Length, Doc: "Edge Radius", Default: d.EdgeRadius, Value: p.EdgeRadius},
		{Name: "style", Group: group, Kind: Enum, Doc: "Frame, solid polyhedron or vertex cloud",
			Default: d.Style.String(), Value: p.Style.String(),
			Options: []string{frame.StyleFrame.String(), frame.StylePolyhedron.String(), frame.StyleCloud.String()}},
	}
}

// Set assigns one parameter by name. Setting a measure value does not
// switch the active measure; OnParameterChanged does. A rejected value
// leaves the parameters unchanged.
func (f *PlatonicFrame) Set(name string, value any) error {
	p := f.Params
	var err error
	switch name {
	case "solid":
		var s string
		if s, err = asString(value); err == nil {
			var k catalog.Kind
			if k, err = catalog.ParseKind(s); err != nil {
				return &BuildError{Kind: CatalogLookup, Feature: f.Type(), Param: name, Err: err}
			}
			p.Solid = k
		}
	case "measure":
		var s string
		if s, err = asString(value); err == nil {
			p.Measure, err = catalog.ParseScaleMode(s)
		}
	case "outer-radius":
		p.OuterRadius, err = asFloat(value)
	case "edge-length":
		p.EdgeLength, err = asFloat(value)
	case "edge-radius":
		p.EdgeRadius, err = asFloat(value)
	case "style":
		var s string
		if s, err = asString(value); err == nil {
			p.Style, err = frame.ParseStyle(s)
		}
	default:
		return invalid(f.Type(), name, "%w", ErrUnknownParameter)
	}
	if err != nil {
		return invalid(f.Type(), name, "%w", err)
	}
	f.Params = p
	return nil
}

// SetOuterRadius scales the solid by its circumradius. The edge length
// anchor is cleared.
func (f *PlatonicFrame) SetOuterRadius(r float64) {
	f.Params.OuterRadius = r
	f.OnParameterChanged("outer-radius")
}

// SetEdgeLength scales the solid by its edge length. The outer radius
// anchor is cleared.
func (f *PlatonicFrame) SetEdgeLength(l float64) {
	f.Params.EdgeLength = l
	f.OnParameterChanged("edge-length")
}

// Validate checks the scale and edge radius are finite and not negative
// and that the solid is in the catalog.
func (f *PlatonicFrame) Validate() error {
	p := f.Params
	if _, err := catalog.Describe(p.Solid); err != nil {
		return &BuildError{Kind: CatalogLookup, Feature: f.Type(), Param: "solid", Err: err}
	}
	for _, v := range []struct {
		name string
		v    float64
	}{{"outer-radius", p.OuterRadius}, {"edge-length", p.EdgeLength}, {"edge-radius", p.EdgeRadius}} {
		if !finite(v.v) {
			return invalid(f.Type(), v.name, "%v is not finite", v.v)
		}
		if v.v < 0 {
			return invalid(f.Type(), v.name, "must not be negative, got %v", v.v)
		}
	}
	return nil
}

// Rebuild builds the frame. Kernel panics surface as DegenerateGeometry.
func (f *PlatonicFrame) Rebuild(k kernel.Kernel) (kernel.Solid, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p := f.Params.Frame()
	if k == nil && p.Style != frame.StylePolyhedron {
		return nil, invalid(f.Type(), "style", "%s style needs a geometry kernel", p.Style)
	}
	return guard(f.Type(), func() (kernel.Solid, error) {
		fr, err := frame.Build(k, p)
		if err != nil {
			return nil, err
		}
		if fr.Solid == nil {
			return nil, fmt.Errorf("kernel returned no solid")
		}
		return fr, nil
	})
}

// OnParameterChanged keeps the two scale anchors mutually exclusive:
// changing one activates it and zeroes the other.
func (f *PlatonicFrame) OnParameterChanged(name string) bool {
	switch name {
	case "outer-radius":
		f.Params.Measure = catalog.OuterRadius
		f.Params.EdgeLength = 0
	case "edge-length":
		f.Params.Measure = catalog.EdgeLength
		f.Params.OuterRadius = 0
	case "solid", "measure", "edge-radius", "style":
	default:
		return false
	}
	return true
}
