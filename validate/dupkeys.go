package validate

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-json"

	"github.com/reoring/yamlschema"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	at           yamlschema.PathRef
	index        int
}

// DuplicateKeys reports object keys that appear more than once in a JSON
// document. JSON decoders keep the last occurrence silently, so these are
// surfaced as warnings before validation.
func DuplicateKeys(data []byte) (yamlschema.Issues, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var issues yamlschema.Issues
	var stack []dupFrame

	// valuePath returns where the next value in the current container lives
	// and advances the container state.
	valuePath := func() yamlschema.PathRef {
		if len(stack) == 0 {
			return yamlschema.PathRef{}
		}
		top := &stack[len(stack)-1]
		if top.kind == kindArray {
			p := top.at.Index(top.index)
			top.index++
			return p
		}
		return top.at
	}
	endValue := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			top.expectingKey = true
		}
	}

	var pendingKey string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return issues, &yamlschema.Error{Kind: yamlschema.KindParse, Message: "invalid JSON", Err: io.ErrUnexpectedEOF}
			}
			break
		}
		if err != nil {
			return issues, &yamlschema.Error{Kind: yamlschema.KindParse, Message: "invalid JSON", Err: err}
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				at := valuePath()
				if len(stack) > 0 && stack[len(stack)-1].kind == kindObject {
					at = at.Field(pendingKey)
				}
				f := dupFrame{kind: kindArray, at: at}
				if v == '{' {
					f = dupFrame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true, at: at}
				}
				stack = append(stack, f)
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				endValue()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					at := top.at.Field(v)
					if _, ok := top.keys[v]; ok {
						issues = yamlschema.AppendIssues(issues, yamlschema.Issue{
							Path:    at.Pointer(),
							Code:    yamlschema.CodeDuplicateKey,
							Message: "key '" + v + "' duplicated",
						})
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					pendingKey = v
					continue
				}
			}
			valuePath()
			endValue()
		default:
			valuePath()
			endValue()
		}
	}
	return issues, nil
}
