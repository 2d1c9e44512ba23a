package yamlschema

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way. The zero value is the
// document root.
type PathRef struct {
	parts []string
}

// PointerOf builds a PathRef from already unescaped tokens.
func PointerOf(tokens ...string) PathRef {
	p := PathRef{}
	for _, t := range tokens {
		p = p.Field(t)
	}
	return p
}

func (p PathRef) Field(name string) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), EscapeToken(name))}
}

func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path; the root renders as "/".
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// EscapeToken escapes '~' -> '~0', '/' -> '~1' per RFC6901.
func EscapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
