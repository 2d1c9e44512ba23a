package yamlschema

import (
	"strconv"
	"strings"
)

// IsLocalRef reports whether ref points inside the current document.
func IsLocalRef(ref string) bool {
	return ref == "#" || strings.HasPrefix(ref, "#/")
}

// Resolve returns the subtree of root addressed by a local JSON Pointer
// reference such as "#/definitions/Person". Mapping keys are looked up by
// name and numeric segments index into sequences.
func Resolve(root any, ref string) (any, error) {
	if !IsLocalRef(ref) {
		return nil, &Error{Kind: KindReference, Ref: ref, Message: "unsupported non-local reference"}
	}
	if ref == "#" {
		return root, nil
	}
	cur := root
	at := PathRef{}
	for _, raw := range strings.Split(ref[2:], "/") {
		seg := UnescapeToken(raw)
		switch t := cur.(type) {
		case Map:
			v, ok := t.Get(seg)
			if !ok {
				return nil, &Error{Kind: KindReference, Ref: ref, Pointer: at.Pointer(), Message: "unresolvable reference: no key " + strconv.Quote(seg)}
			}
			cur = v
			at = at.Field(seg)
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(t) {
				return nil, &Error{Kind: KindReference, Ref: ref, Pointer: at.Pointer(), Message: "unresolvable reference: no index " + strconv.Quote(seg)}
			}
			cur = t[i]
			at = at.Index(i)
		default:
			return nil, &Error{Kind: KindReference, Ref: ref, Pointer: at.Pointer(), Message: "unresolvable reference: cannot descend into " + describe(cur)}
		}
	}
	return cur, nil
}

// RefName returns the last segment of a reference, used to label rows that
// point at a definition (e.g. "Person" for "#/definitions/Person").
func RefName(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return UnescapeToken(ref[i+1:])
	}
	return strings.TrimPrefix(ref, "#")
}

// refLocation converts a local reference into the PathRef of its target.
func refLocation(ref string) PathRef {
	if ref == "#" {
		return PathRef{}
	}
	p := PathRef{}
	for _, raw := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		p = p.Field(UnescapeToken(raw))
	}
	return p
}
