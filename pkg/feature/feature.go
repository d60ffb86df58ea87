// Package feature is the contract between the solid builders and the host
// document: every feature exposes its parameters, rebuilds its solid from
// them on demand, and is told when a parameter changed. A feature holds
// only its parameter struct; it never caches the solid it produced.
package feature

import (
	"errors"
	"fmt"

	"github.com/chazu/decorated/pkg/brep"
	"github.com/chazu/decorated/pkg/catalog"
	"github.com/chazu/decorated/pkg/kernel"
)

// ParamKind is the semantic type of a parameter.
type ParamKind int

const (
	Length ParamKind = iota
	Integer
	Bool
	Enum
)

func (k ParamKind) String() string {
	switch k {
	case Length:
		return "length"
	case Integer:
		return "integer"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Param describes one parameter and carries its current value.
type Param struct {
	Name    string    `json:"name"`
	Group   string    `json:"group"`
	Kind    ParamKind `json:"kind"`
	Doc     string    `json:"doc"`
	Default any       `json:"default"`
	Value   any       `json:"value"`
	Options []string  `json:"options,omitempty"` // Enum only
}

// Feature is a parametric solid generator.
type Feature interface {
	// Type names the feature kind, e.g. "stripe-cylinder".
	Type() string
	// Parameters lists the recognized parameters with their current values.
	Parameters() []Param
	// Set assigns one parameter. Values are coerced from float64, int,
	// bool or string as the parameter kind requires.
	Set(name string, value any) error
	// Validate checks the current parameters.
	Validate() error
	// Rebuild computes the solid from scratch.
	Rebuild(k kernel.Kernel) (kernel.Solid, error)
	// OnParameterChanged is called after a parameter was set. It applies
	// dependent updates and reports whether the feature needs a rebuild.
	OnParameterChanged(name string) bool
}

// ErrorKind classifies a BuildError.
type ErrorKind int

const (
	InvalidParameter ErrorKind = iota
	DegenerateGeometry
	CatalogLookup
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case DegenerateGeometry:
		return "degenerate geometry"
	case CatalogLookup:
		return "catalog lookup"
	default:
		return "unknown"
	}
}

// BuildError reports why a feature could not produce a solid.
type BuildError struct {
	Kind    ErrorKind
	Feature string // feature type
	Param   string // offending parameter, if known
	Err     error
}

func (e *BuildError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("feature: %s: %s %s: %v", e.Feature, e.Kind, e.Param, e.Err)
	}
	return fmt.Sprintf("feature: %s: %s: %v", e.Feature, e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// IsKind reports whether err is a BuildError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BuildError
	return errors.As(err, &be) && be.Kind == kind
}

// ErrUnknownParameter is wrapped when Set is given a name the feature
// does not recognize.
var ErrUnknownParameter = errors.New("unknown parameter")

func invalid(feature, param string, format string, args ...any) *BuildError {
	return &BuildError{Kind: InvalidParameter, Feature: feature, Param: param, Err: fmt.Errorf(format, args...)}
}

// classify wraps a builder error in a BuildError of the matching kind.
func classify(feature string, err error) error {
	if err == nil {
		return nil
	}
	var be *BuildError
	if errors.As(err, &be) {
		return err
	}
	var lerr *catalog.LookupError
	switch {
	case errors.As(err, &lerr):
		return &BuildError{Kind: CatalogLookup, Feature: feature, Err: err}
	case errors.Is(err, brep.ErrGeometry):
		return &BuildError{Kind: DegenerateGeometry, Feature: feature, Err: err}
	}
	return &BuildError{Kind: InvalidParameter, Feature: feature, Err: err}
}

// guard converts a kernel panic during fn into a DegenerateGeometry error.
func guard(feature string, fn func() (kernel.Solid, error)) (s kernel.Solid, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = &BuildError{Kind: DegenerateGeometry, Feature: feature, Err: fmt.Errorf("kernel panic: %v", r)}
		}
	}()
	s, err = fn()
	return s, classify(feature, err)
}
