package yamlschema

import (
	"errors"
	"slices"
	"strings"
)

// DefaultSeparator joins ancestor property names in row paths.
const DefaultSeparator = "/"

type flattenOptions struct {
	separator   string
	definitions bool
}

// FlattenOption configures Flatten.
type FlattenOption func(*flattenOptions)

// WithSeparator sets the string placed between nested property names.
func WithSeparator(sep string) FlattenOption {
	return func(o *flattenOptions) {
		if sep != "" {
			o.separator = sep
		}
	}
}

// WithDefinitions toggles the definitions pass (enabled by default).
func WithDefinitions(enabled bool) FlattenOption {
	return func(o *flattenOptions) { o.definitions = enabled }
}

// Flatten walks the schema depth-first and returns one row per documented
// property. Rows for the root properties come first; each entry of
// definitions and $defs follows, preceded by a separator row.
func Flatten(s *Schema, opts ...FlattenOption) ([]Row, error) {
	o := flattenOptions{separator: DefaultSeparator, definitions: true}
	for _, opt := range opts {
		opt(&o)
	}
	f := &flattener{root: s.doc, sep: o.separator, expanding: map[string]bool{}}

	root := s.Root()
	props, ok, err := root.Properties()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := f.properties(props, root.Required(), "", root.At.Field("properties"), false); err != nil {
			return nil, err
		}
	}

	if !o.definitions {
		return f.rows, nil
	}
	defs, err := s.Definitions()
	if err != nil {
		return nil, err
	}
	for _, def := range defs {
		n, err := Classify(def.Value, def.At)
		if err != nil {
			return nil, err
		}
		f.rows = append(f.rows, Row{Separator: true})
		loc := def.At.Pointer()
		f.expanding[loc] = true
		err = f.dispatch(frame{name: def.Name}, n)
		delete(f.expanding, loc)
		if err != nil {
			return nil, err
		}
	}
	return f.rows, nil
}

// FlattenDocument is Flatten for a raw loaded document.
func FlattenDocument(doc Map, opts ...FlattenOption) ([]Row, error) {
	s, err := NewSchema(doc)
	if err != nil {
		return nil, err
	}
	return Flatten(s, opts...)
}

// frame is the context a node is documented in.
type frame struct {
	name     string
	prefix   string
	required bool
	// item marks rows directly under an array whose items are an object.
	item bool
	// desc overrides the target's description (set by a $ref sibling).
	desc string
}

func (fr frame) path() string { return fr.prefix + fr.name }

type flattener struct {
	root Map
	sep  string
	rows []Row
	// Locations of the ref targets currently being expanded. A ref back into
	// one of them is documented as a single row.
	expanding map[string]bool
}

func (f *flattener) emit(fr frame, typ, format, desc string) {
	if fr.desc != "" {
		desc = fr.desc
	}
	if fr.item {
		typ = "array-item " + typ
	}
	f.rows = append(f.rows, Row{
		Path:        fr.path(),
		Type:        typ,
		Format:      format,
		Required:    fr.required,
		Description: desc,
	})
}

func (f *flattener) dispatch(fr frame, n Node) error {
	switch n.Kind {
	case NodeObject:
		return f.object(fr, n)
	case NodeArray:
		return f.array(fr, n)
	case NodeRef:
		if d := n.Description(); d != "" && fr.desc == "" {
			fr.desc = d
		}
		return f.ref(fr, n.Ref(), n.At.Field("$ref"))
	case NodeUnion:
		return f.union(fr, n)
	default:
		f.emit(fr, n.Type(), FormatCode(n.Format()), n.Description())
		return nil
	}
}

// properties documents each entry of props in declared order. required is
// the owning node's required list.
func (f *flattener) properties(props Map, required []string, prefix string, at PathRef, item bool) error {
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		n, err := Classify(pair.Value, at.Field(pair.Key))
		if err != nil {
			return err
		}
		fr := frame{
			name:     pair.Key,
			prefix:   prefix,
			required: slices.Contains(required, pair.Key),
			item:     item,
		}
		if err := f.dispatch(fr, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) object(fr frame, n Node) error {
	f.emit(fr, "object", "", n.Description())
	props, ok, err := n.Properties()
	if err != nil || !ok {
		return err
	}
	return f.properties(props, n.Required(), fr.path()+f.sep, n.At.Field("properties"), false)
}

func (f *flattener) array(fr frame, n Node) error {
	items, err := n.Items()
	if err != nil {
		return err
	}
	desc := n.Description()
	switch items.Kind {
	case NodeRef:
		f.emit(fr, "array("+RefName(items.Ref())+")", "", desc)
	case NodeUnion:
		refs, err := items.AnyOf()
		if err != nil {
			return err
		}
		names := make([]string, len(refs))
		for i, ref := range refs {
			names[i] = RefName(ref)
		}
		f.emit(fr, "array("+strings.Join(names, ",")+")", "", desc)
	case NodeObject:
		f.emit(fr, "array(object)", "", desc)
		props, ok, err := items.Properties()
		if err != nil || !ok {
			return err
		}
		return f.properties(props, items.Required(), fr.path()+f.sep, items.At.Field("properties"), true)
	case NodeArray:
		f.emit(fr, "array(array)", "", desc)
	default:
		f.emit(fr, "array("+items.Type()+")", FormatCode(items.Format()), desc)
	}
	return nil
}

// ref resolves a local reference and documents the target in place of the
// referencing property. at locates the $ref keyword for error reporting.
// A ref into a target that is already being expanded yields one row and no
// recursion.
func (f *flattener) ref(fr frame, ref string, at PathRef) error {
	target, err := Resolve(f.root, ref)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Pointer = at.Pointer()
		}
		return err
	}
	n, err := Classify(target, refLocation(ref))
	if err != nil {
		return err
	}
	if fr.name == "" {
		fr.name = RefName(ref)
	}
	loc := n.At.Pointer()
	if f.expanding[loc] {
		typ := n.Type()
		if typ == "" {
			typ = "object"
		}
		f.emit(fr, typ, FormatCode(n.Format()), n.Description())
		return nil
	}
	f.expanding[loc] = true
	defer delete(f.expanding, loc)
	return f.dispatch(fr, n)
}

// union documents every anyOf member in declared order under the property's
// name.
func (f *flattener) union(fr frame, n Node) error {
	refs, err := n.AnyOf()
	if err != nil {
		return err
	}
	at := n.At.Field("anyOf")
	if d := n.Description(); d != "" && fr.desc == "" {
		fr.desc = d
	}
	for i, ref := range refs {
		if err := f.ref(fr, ref, at.Index(i).Field("$ref")); err != nil {
			return err
		}
	}
	return nil
}
