package feature

import (
	"fmt"

	"github.com/chazu/decorated/pkg/kernel"
	"github.com/chazu/decorated/pkg/stripe"
)

// StripeCylinderType is the Type of a StripeCylinder.
const StripeCylinderType = "stripe-cylinder"

// StripeCylinder is the decorated cylinder feature.
type StripeCylinder struct {
	Params stripe.Params
}

var _ Feature = (*StripeCylinder)(nil)

// NewStripeCylinder returns a cylinder with the default parameters.
func NewStripeCylinder() *StripeCylinder {
	return &StripeCylinder{Params: stripe.DefaultParams()}
}

func (c *StripeCylinder) Type() string { return StripeCylinderType }

// Parameters lists the cylinder parameters.
func (c *StripeCylinder) Parameters() []Param {
	d := stripe.DefaultParams()
	p := c.Params
	return []Param{
		{Name: "radius", Group: "Dimensions", Kind: Length, Doc: "Outer radius of the cylinder", Default: d.Radius, Value: p.Radius},
		{Name: "thickness", Group: "Dimensions", Kind: Length, Doc: "Wall thickness of the cylinder", Default: d.Thickness, Value: p.Thickness},
		{Name: "height", Group: "Dimensions", Kind: Length, Doc: "Height of the cylinder", Default: d.Height, Value: p.Height},
		{Name: "stripes", Group: "Visual", Kind: Integer, Doc: "Number of vertical stripes", Default: d.Stripes, Value: p.Stripes},
		{Name: "segments", Group: "Visual", Kind: Integer, Doc: "Number of circle segments", Default: d.Segments, Value: p.Segments},
		{Name: "reversed", Group: "Visual", Kind: Bool, Doc: "Direction of segments", Default: d.Reversed, Value: p.Reversed},
		{Name: "refine", Group: "Visual", Kind: Bool, Doc: "Merge coplanar faces", Default: d.Refine, Value: p.Refine},
	}
}

// Set assigns one parameter by name. A rejected value leaves the
// parameters unchanged.
func (c *StripeCylinder) Set(name string, value any) error {
	p := c.Params
	var err error
	switch name {
	case "radius":
		p.Radius, err = asFloat(value)
	case "thickness":
		p.Thickness, err = asFloat(value)
	case "height":
		p.Height, err = asFloat(value)
	case "stripes":
		p.Stripes, err = asInt(value)
	case "segments":
		p.Segments, err = asInt(value)
	case "reversed":
		p.Reversed, err = asBool(value)
	case "refine":
		p.Refine, err = asBool(value)
	default:
		return invalid(c.Type(), name, "%w", ErrUnknownParameter)
	}
	if err != nil {
		return invalid(c.Type(), name, "%w", err)
	}
	c.Params = p
	return nil
}

// Validate checks 0 <= Thickness <= Radius and Height > 0. Segment and
// stripe counts below one are not errors: they build an empty solid.
func (c *StripeCylinder) Validate() error {
	p := c.Params
	for _, f := range []struct {
		name string
		v    float64
	}{{"radius", p.Radius}, {"thickness", p.Thickness}, {"height", p.Height}} {
		if !finite(f.v) {
			return invalid(c.Type(), f.name, "%v is not finite", f.v)
		}
	}
	switch {
	case p.Radius < 0:
		return invalid(c.Type(), "radius", "must not be negative, got %v", p.Radius)
	case p.Thickness < 0:
		return invalid(c.Type(), "thickness", "must not be negative, got %v", p.Thickness)
	case p.Thickness > p.Radius:
		return invalid(c.Type(), "thickness", "%v exceeds radius %v", p.Thickness, p.Radius)
	case p.Height <= 0:
		return invalid(c.Type(), "height", "must be positive, got %v", p.Height)
	}
	return nil
}

// Rebuild builds the cylinder and checks its shell. The kernel is not
// used: the cylinder is an exact polyhedral solid.
func (c *StripeCylinder) Rebuild(_ kernel.Kernel) (kernel.Solid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return guard(c.Type(), func() (kernel.Solid, error) {
		solid, err := stripe.Build(c.Params)
		if err != nil {
			return nil, err
		}
		if solid.IsEmpty() {
			kernel.Logger().Debug("feature: empty stripe cylinder",
				"segments", c.Params.Segments, "stripes", c.Params.Stripes)
			return solid, nil
		}
		if err := solid.Check(); err != nil {
			return nil, fmt.Errorf("shell is not closed: %w", err)
		}
		return solid, nil
	})
}

// OnParameterChanged reports whether name is a cylinder parameter.
func (c *StripeCylinder) OnParameterChanged(name string) bool {
	for _, p := range c.Parameters() {
		if p.Name == name {
			return true
		}
	}
	return false
}
