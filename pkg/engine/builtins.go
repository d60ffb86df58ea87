package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/decorated/pkg/document"
	"github.com/chazu/decorated/pkg/feature"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms DSL source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: stripe-cylinder -> stripe_cylinder
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpObject refers to a document object by name so builtins can pass
// objects to one another.
type sexpObject struct {
	name string
	typ  string
}

func (o *sexpObject) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", o.typ, o.name)
}
func (o *sexpObject) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
// order lists keyword names as they appeared; a repeated keyword keeps the
// position of its first use and the value of its last.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value, treat as flag with nil.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_cube) and plain strings ("cube").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toValue converts a Sexp to the Go value a feature parameter setter
// accepts: int64, float64, bool or string. Keywords become their names.
func toValue(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		return toKeywordString(v)
	}
	return nil, fmt.Errorf("expected number, bool, string or keyword, got %T (%s)", s, s.SexpString(nil))
}

// toObjectName accepts an object reference or a plain name.
func toObjectName(s zygo.Sexp) (string, error) {
	if o, ok := s.(*sexpObject); ok {
		return o.name, nil
	}
	name, err := toString(s)
	if err != nil {
		return "", fmt.Errorf("expected object or name: %w", err)
	}
	return name, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// constructors maps DSL builtin names, as registered after kebab-case
// conversion, to feature constructors.
var constructors = map[string]func() feature.Feature{
	"stripe_cylinder": func() feature.Feature { return feature.NewStripeCylinder() },
	"platonic_frame":  func() feature.Feature { return feature.NewPlatonicFrame() },
}

// dslName reverses the kebab-case conversion for error messages.
func dslName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// applyParams assigns keyword arguments to an object in source order.
func applyParams(d *document.Document, builtin, object string, pa kwArgs) error {
	for _, key := range pa.order {
		v, err := toValue(pa.kw[key])
		if err != nil {
			return fmt.Errorf("%s: %s: %w", builtin, key, err)
		}
		if err := d.SetParameter(object, key, v); err != nil {
			return fmt.Errorf("%s: %s: %w", builtin, key, err)
		}
	}
	return nil
}

// registerBuiltins installs all DSL builtins into a zygomys environment.
// The builtins operate on the provided Document, populating it during
// evaluation. Nothing is rebuilt here; callers recompute the document
// with the kernel of their choice.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *document.Document) {

	// -----------------------------------------------------------------------
	// (document "Vase" :file "/work/vase.decor")
	// -----------------------------------------------------------------------
	env.AddFunction("document", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			n, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("document: name: %w", err)
			}
			if n != "" {
				d.Name = n
			}
		}
		for _, key := range pa.order {
			switch key {
			case "file":
				f, err := toString(pa.kw[key])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("document: file: %w", err)
				}
				d.FileName = f
			default:
				return zygo.SexpNull, fmt.Errorf("document: unknown keyword :%s", key)
			}
		}
		return &zygo.SexpStr{S: d.Name}, nil
	})

	// -----------------------------------------------------------------------
	// (stripe-cylinder "vase" :radius 2 :thickness 1 :height 10
	//                  :stripes 5 :segments 12 :reversed false)
	// (platonic-frame "frame" :solid :cube :outer-radius 10 :style :frame)
	//
	// Registered with underscores because zygomys does not support hyphens
	// in identifiers. The name is optional; keywords are applied in order,
	// so a later :edge-length overrides an earlier :outer-radius.
	// -----------------------------------------------------------------------
	for builtin, ctor := range constructors {
		ctor := ctor
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			label := dslName(name)

			var objName string
			if len(pa.positional) > 0 {
				n, err := toString(pa.positional[0])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: name: %w", label, err)
				}
				objName = n
			}

			f := ctor()
			o, err := d.AddObject(objName, f)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			if err := applyParams(d, label, o.Name, pa); err != nil {
				return zygo.SexpNull, err
			}
			return &sexpObject{name: o.Name, typ: f.Type()}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (object "vase")
	// -----------------------------------------------------------------------
	env.AddFunction("object", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("object requires a name argument")
		}
		objName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("object: name: %w", err)
		}
		o := d.Lookup(objName)
		if o == nil {
			return zygo.SexpNull, fmt.Errorf("object: no object named %q", objName)
		}
		return &sexpObject{name: o.Name, typ: o.Feature.Type()}, nil
	})

	// -----------------------------------------------------------------------
	// (set-param (object "vase") :stripes 8 :reversed true)
	// -----------------------------------------------------------------------
	env.AddFunction("set_param", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("set-param requires an object as first argument")
		}
		objName, err := toObjectName(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-param: %w", err)
		}
		o := d.Lookup(objName)
		if o == nil {
			return zygo.SexpNull, fmt.Errorf("set-param: no object named %q", objName)
		}
		if err := applyParams(d, "set-param", objName, pa); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpObject{name: o.Name, typ: o.Feature.Type()}, nil
	})

	// -----------------------------------------------------------------------
	// (select-objects (object "vase") "frame")
	// -----------------------------------------------------------------------
	env.AddFunction("select_objects", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		names := make([]string, 0, len(args))
		for i, a := range args {
			n, err := toObjectName(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select-objects: argument %d: %w", i, err)
			}
			names = append(names, n)
		}
		if err := d.Select(names...); err != nil {
			return zygo.SexpNull, fmt.Errorf("select-objects: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(names))}, nil
	})
}
