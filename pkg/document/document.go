// Package document is the host side of the feature contract: a named
// document owning feature objects, the current selection, and the last
// good shape of every object. Documents are passed explicitly; there is
// no active document. A Document is not safe for concurrent use.
package document

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chazu/decorated/pkg/feature"
	"github.com/chazu/decorated/pkg/kernel"
)

// DefaultName is the name of a new document.
const DefaultName = "Unnamed"

// ErrDuplicateName is returned when an object name is already taken.
var ErrDuplicateName = errors.New("document: duplicate object name")

// ErrNoObject is returned for a name no object carries.
var ErrNoObject = errors.New("document: no such object")

// Object is one feature placed in a document.
type Object struct {
	Name    string
	Feature feature.Feature
	// Shape is the last successfully built solid. A failed rebuild
	// leaves it untouched.
	Shape kernel.Solid
	// Err is the error of the last rebuild, nil after a success.
	Err error

	dirty bool
}

// Dirty reports whether the object needs a rebuild.
func (o *Object) Dirty() bool { return o.dirty }

// Touch marks the object for rebuild.
func (o *Object) Touch() { o.dirty = true }

// Recompute rebuilds the shape from the current parameters.
func (o *Object) Recompute(k kernel.Kernel) error {
	log := kernel.Logger().With("object", o.Name, "type", o.Feature.Type())
	log.Debug("document: recompute")
	o.dirty = false
	shape, err := o.Feature.Rebuild(k)
	if err != nil {
		o.Err = err
		log.Warn("document: rebuild rejected, keeping last shape", "err", err)
		return fmt.Errorf("document: %s: %w", o.Name, err)
	}
	o.Shape = shape
	o.Err = nil
	return nil
}

// Document is a collection of named objects.
type Document struct {
	Name string
	// FileName is where the document was saved. Empty for a document
	// that was never saved.
	FileName string

	objects   []*Object
	index     map[string]*Object
	selection []*Object
}

// New creates an empty, unsaved document.
func New(name string) *Document {
	if name == "" {
		name = DefaultName
	}
	return &Document{
		Name:  name,
		index: make(map[string]*Object),
	}
}

// Saved reports whether the document has a file on disk.
func (d *Document) Saved() bool { return d.FileName != "" }

// Dir returns the directory of the document file, or "" if unsaved.
func (d *Document) Dir() string {
	if !d.Saved() {
		return ""
	}
	return filepath.Dir(d.FileName)
}

// AddObject places a feature in the document and marks it for rebuild.
// An empty name is replaced by a unique name derived from the feature
// type.
func (d *Document) AddObject(name string, f feature.Feature) (*Object, error) {
	if name == "" {
		name = d.uniqueName(f.Type())
	}
	if _, ok := d.index[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	o := &Object{Name: name, Feature: f, dirty: true}
	d.objects = append(d.objects, o)
	d.index[name] = o
	return o, nil
}

func (d *Document) uniqueName(base string) string {
	if _, ok := d.index[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%03d", base, i)
		if _, ok := d.index[name]; !ok {
			return name
		}
	}
}

// Objects returns the objects in insertion order.
func (d *Document) Objects() []*Object {
	return d.objects
}

// Lookup returns the object with the given name, or nil.
func (d *Document) Lookup(name string) *Object {
	return d.index[name]
}

// Select replaces the selection with the named objects.
func (d *Document) Select(names ...string) error {
	sel := make([]*Object, 0, len(names))
	for _, n := range names {
		o := d.index[n]
		if o == nil {
			return fmt.Errorf("%w: %q", ErrNoObject, n)
		}
		sel = append(sel, o)
	}
	d.selection = sel
	return nil
}

// ClearSelection empties the selection.
func (d *Document) ClearSelection() { d.selection = nil }

// Selection returns the selected objects in selection order.
func (d *Document) Selection() []*Object {
	return d.selection
}

// SetParameter assigns a parameter of the named object and lets the
// feature react. The object is marked for rebuild when the feature asks
// for it.
func (d *Document) SetParameter(object, param string, value any) error {
	o := d.index[object]
	if o == nil {
		return fmt.Errorf("%w: %q", ErrNoObject, object)
	}
	if err := o.Feature.Set(param, value); err != nil {
		return err
	}
	if o.Feature.OnParameterChanged(param) {
		o.Touch()
	}
	return nil
}

// Recompute rebuilds every dirty object. Failures are collected; each
// failed object keeps its previous shape.
func (d *Document) Recompute(k kernel.Kernel) error {
	var errs []error
	for _, o := range d.objects {
		if !o.dirty {
			continue
		}
		if err := o.Recompute(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecomputeAll marks every object dirty and rebuilds.
func (d *Document) RecomputeAll(k kernel.Kernel) error {
	for _, o := range d.objects {
		o.Touch()
	}
	return d.Recompute(k)
}
