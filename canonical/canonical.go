// Package canonical renders loaded schema documents as indented JSON that
// keeps the source key order.
package canonical

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-json"

	"github.com/reoring/yamlschema"
	"github.com/reoring/yamlschema/internal/fileutil"
)

// Indent is the indentation unit of canonical output.
const Indent = "    "

// Marshal renders doc as JSON indented with four spaces, followed by a
// newline. Mapping keys appear in declaration order and text is written
// as-is: '&', '<' and '>' are not escaped.
func Marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, doc, 0); err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindWrite, Message: "cannot encode schema as JSON", Err: err}
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v any, depth int) error {
	switch t := v.(type) {
	case yamlschema.Map:
		if t.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		first := true
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			newline(buf, depth+1)
			if err := scalar(buf, pair.Key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := encode(buf, pair.Value, depth+1); err != nil {
				return err
			}
		}
		newline(buf, depth)
		buf.WriteByte('}')
		return nil
	case []any:
		if len(t) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, depth+1)
			if err := encode(buf, item, depth+1); err != nil {
				return err
			}
		}
		newline(buf, depth)
		buf.WriteByte(']')
		return nil
	default:
		return scalar(buf, v)
	}
}

func scalar(buf *bytes.Buffer, v any) error {
	b, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func newline(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(Indent)
	}
}

// Write encodes doc to w.
func Write(w io.Writer, doc any) error {
	b, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile atomically writes the canonical form of doc to path.
func WriteFile(path string, doc any) error {
	b, err := Marshal(doc)
	if err != nil {
		var e *yamlschema.Error
		if errors.As(err, &e) {
			e.File = path
		}
		return err
	}
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

// Decode parses canonical JSON back into plain Go values (map[string]any,
// []any, float64, string, bool, nil).
func Decode(b []byte) (any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindParse, Message: "invalid JSON", Err: err}
	}
	return v, nil
}
