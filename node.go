package yamlschema

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the order-preserving mapping used for every YAML/JSON object in a
// loaded document. Iteration follows declaration order.
type Map = *orderedmap.OrderedMap[string, any]

// NewMap returns an empty Map.
func NewMap() Map { return orderedmap.New[string, any]() }

// NodeKind is the shape of a schema node.
type NodeKind int

const (
	NodePrimitive NodeKind = iota
	NodeObject
	NodeArray
	NodeRef
	NodeUnion
)

func (k NodeKind) String() string {
	switch k {
	case NodeObject:
		return "object"
	case NodeArray:
		return "array"
	case NodeRef:
		return "ref"
	case NodeUnion:
		return "union"
	default:
		return "primitive"
	}
}

// Node is a classified schema node. Kind is computed once by Classify; the
// accessors read the underlying mapping.
type Node struct {
	Kind NodeKind
	// At is the location of the node inside the document.
	At PathRef

	m Map
}

// Classify determines the shape of v using a fixed precedence: type object,
// type array, $ref, anyOf, otherwise primitive. The first match wins.
func Classify(v any, at PathRef) (Node, error) {
	m, ok := v.(Map)
	if !ok || m == nil {
		return Node{}, structureError(at.Pointer(), "schema node must be a mapping, got %s", describe(v))
	}
	n := Node{At: at, m: m}
	typ, _ := m.Get("type")
	switch {
	case typ == "object":
		n.Kind = NodeObject
	case typ == "array":
		n.Kind = NodeArray
	case value(m, "$ref") != nil:
		if _, ok := value(m, "$ref").(string); !ok {
			return Node{}, structureError(at.Field("$ref").Pointer(), "$ref must be a string, got %s", describe(value(m, "$ref")))
		}
		n.Kind = NodeRef
	case value(m, "anyOf") != nil:
		n.Kind = NodeUnion
	default:
		n.Kind = NodePrimitive
	}
	return n, nil
}

// Type renders the node's type keyword. A list of types is joined with "|".
func (n Node) Type() string {
	switch t := value(n.m, "type").(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, "|")
	default:
		return fmt.Sprint(t)
	}
}

func (n Node) Format() string { return n.str("format") }

func (n Node) Description() string { return n.str("description") }

// Ref returns the $ref pointer for NodeRef nodes.
func (n Node) Ref() string { return n.str("$ref") }

// Required returns the names listed under the node's required keyword.
func (n Node) Required() []string {
	list, _ := value(n.m, "required").([]any)
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Properties returns the properties mapping. ok is false when the keyword is
// absent; a present but non-mapping value is a structure error.
func (n Node) Properties() (props Map, ok bool, err error) {
	raw, present := n.m.Get("properties")
	if !present || raw == nil {
		return nil, false, nil
	}
	props, isMap := raw.(Map)
	if !isMap {
		return nil, false, structureError(n.At.Field("properties").Pointer(), "properties must be a mapping, got %s", describe(raw))
	}
	return props, true, nil
}

// Items classifies the array's item schema. Arrays without items are rejected.
func (n Node) Items() (Node, error) {
	raw, present := n.m.Get("items")
	if !present {
		return Node{}, structureError(n.At.Pointer(), "array without items")
	}
	return Classify(raw, n.At.Field("items"))
}

// AnyOf returns the $ref pointer of every anyOf member, in declared order.
func (n Node) AnyOf() ([]string, error) {
	at := n.At.Field("anyOf")
	list, ok := value(n.m, "anyOf").([]any)
	if !ok {
		return nil, structureError(at.Pointer(), "anyOf must be a list, got %s", describe(value(n.m, "anyOf")))
	}
	refs := make([]string, 0, len(list))
	for i, member := range list {
		m, ok := member.(Map)
		if !ok {
			return nil, structureError(at.Index(i).Pointer(), "anyOf entry must be a mapping with $ref")
		}
		ref, ok := value(m, "$ref").(string)
		if !ok {
			return nil, structureError(at.Index(i).Pointer(), "anyOf entry without $ref")
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (n Node) str(key string) string {
	switch v := value(n.m, key).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case Map:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "bool"
	case int64, int, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func value(m Map, key string) any {
	v, _ := m.Get(key)
	return v
}
