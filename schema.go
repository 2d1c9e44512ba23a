package yamlschema

// Definition containers documented after the main property tree, in this
// order.
var definitionKeys = []string{"definitions", "$defs"}

// Schema is a loaded schema document. It is read-only once constructed.
type Schema struct {
	doc Map
}

// NewSchema wraps a loaded document.
func NewSchema(doc Map) (*Schema, error) {
	if doc == nil {
		return nil, structureError("/", "schema root must be a mapping")
	}
	return &Schema{doc: doc}, nil
}

// Document returns the underlying ordered document.
func (s *Schema) Document() Map { return s.doc }

// Root returns the root node. The root is always walked as an object
// regardless of its declared type.
func (s *Schema) Root() Node {
	return Node{Kind: NodeObject, m: s.doc}
}

// Required returns the root-level required property names.
func (s *Schema) Required() []string { return s.Root().Required() }

// Definition is a named reusable subtree from definitions or $defs.
type Definition struct {
	Name  string
	Value any
	At    PathRef
}

// Definitions lists definitions followed by $defs, each in declared order.
func (s *Schema) Definitions() ([]Definition, error) {
	var out []Definition
	for _, key := range definitionKeys {
		raw, ok := s.doc.Get(key)
		if !ok || raw == nil {
			continue
		}
		defs, ok := raw.(Map)
		if !ok {
			return nil, structureError(PointerOf(key).Pointer(), "%s must be a mapping, got %s", key, describe(raw))
		}
		for pair := defs.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, Definition{Name: pair.Key, Value: pair.Value, At: PointerOf(key, pair.Key)})
		}
	}
	return out, nil
}
