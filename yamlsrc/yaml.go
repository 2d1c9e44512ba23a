// Package yamlsrc loads YAML schema sources into order-preserving documents.
package yamlsrc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/yamlschema"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// LoadFile reads the schema at path.
func LoadFile(path string) (yamlschema.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &yamlschema.Error{Kind: yamlschema.KindSourceNotFound, File: path, Message: "schema source not found"}
		}
		return nil, &yamlschema.Error{Kind: yamlschema.KindSourceNotFound, File: path, Message: "cannot open schema source", Err: err}
	}
	defer f.Close()
	doc, err := Load(f)
	if err != nil {
		var e *yamlschema.Error
		if errors.As(err, &e) && e.File == "" {
			e.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Load decodes the first YAML document from r. Mappings keep their
// declaration order; duplicate keys are rejected.
func Load(r io.Reader) (yamlschema.Map, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &yamlschema.Error{Kind: yamlschema.KindSchemaStructure, Pointer: "/", Message: "empty schema document"}
		}
		return nil, parseError(err)
	}
	v, err := nodeToValue(&root)
	if err != nil {
		return nil, err
	}
	m, ok := v.(yamlschema.Map)
	if !ok {
		return nil, &yamlschema.Error{Kind: yamlschema.KindSchemaStructure, Pointer: "/", Message: "schema root must be a mapping"}
	}
	return m, nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func parseError(err error) *yamlschema.Error {
	e := &yamlschema.Error{Kind: yamlschema.KindParse, Message: "invalid YAML", Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		e.Line, _ = strconv.Atoi(m[1])
	}
	return e
}

func nodeToValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(n.Content[0])
	case yaml.AliasNode:
		return nodeToValue(n.Alias)
	case yaml.MappingNode:
		return mappingToValue(n)
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarToValue(n), nil
	default:
		return nil, nil
	}
}

func mappingToValue(n *yaml.Node) (yamlschema.Map, error) {
	m := yamlschema.NewMap()
	first := make(map[string][2]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		v := n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			if err := merge(m, v); err != nil {
				return nil, err
			}
			continue
		}
		key := k.Value
		if pos, dup := first[key]; dup {
			return nil, &yamlschema.Error{
				Kind:    yamlschema.KindParse,
				Line:    k.Line,
				Column:  k.Column,
				Message: "duplicate key",
				Err:     &DuplicateKeyError{Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column},
			}
		}
		first[key] = [2]int{k.Line, k.Column}
		val, err := nodeToValue(v)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
	return m, nil
}

// merge applies a "<<" merge key: keys from the merged mapping(s) are added
// unless the target already has them.
func merge(dst yamlschema.Map, v *yaml.Node) error {
	if v.Kind == yaml.AliasNode {
		v = v.Alias
	}
	var sources []*yaml.Node
	switch v.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{v}
	case yaml.SequenceNode:
		for _, c := range v.Content {
			if c.Kind == yaml.AliasNode {
				c = c.Alias
			}
			sources = append(sources, c)
		}
	}
	for _, src := range sources {
		if src.Kind != yaml.MappingNode {
			return &yamlschema.Error{Kind: yamlschema.KindParse, Line: src.Line, Column: src.Column, Message: "merge key value must be a mapping"}
		}
		sm, err := mappingToValue(src)
		if err != nil {
			return err
		}
		for pair := sm.Oldest(); pair != nil; pair = pair.Next() {
			if _, exists := dst.Get(pair.Key); !exists {
				dst.Set(pair.Key, pair.Value)
			}
		}
	}
	return nil
}

func scalarToValue(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
		return n.Value
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
		if num, ok := bigInteger(n.Value); ok {
			return num
		}
		return n.Value
	case "!!float":
		// yaml.v3 tags decimal integers beyond int64 as floats.
		if num, ok := bigInteger(n.Value); ok {
			return num
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
		return n.Value
	default:
		return n.Value
	}
}

var decimalInteger = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// bigInteger keeps a decimal integer literal that does not fit int64 as an
// exact JSON number.
func bigInteger(lit string) (json.Number, bool) {
	lit = strings.TrimPrefix(lit, "+")
	if !decimalInteger.MatchString(lit) {
		return "", false
	}
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return "", false
	}
	return json.Number(lit), true
}
