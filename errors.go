package yamlschema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure so that callers (and the CLI exit code) can tell
// failure categories apart without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindSourceNotFound
	KindParse
	KindSchemaStructure
	KindReference
	KindValidation
	KindWrite
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindSourceNotFound:
		return "SourceNotFound"
	case KindParse:
		return "ParseError"
	case KindSchemaStructure:
		return "SchemaStructureError"
	case KindReference:
		return "ReferenceError"
	case KindValidation:
		return "ValidationError"
	case KindWrite:
		return "WriteError"
	case KindConfig:
		return "ConfigError"
	default:
		return "Error"
	}
}

// Error is the fatal error type returned by every stage of a run.
type Error struct {
	Kind Kind
	// File is the input or output path the error concerns, if any.
	File string
	// Line and Column locate the error inside File when the parser reports it.
	Line   int
	Column int
	// Pointer is the JSON Pointer of the offending schema node (for example
	// /properties/tags/items).
	Pointer string
	// Ref is the $ref value that failed to resolve.
	Ref     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(b, ":%d:%d", e.Line, e.Column)
		}
		b.WriteString(": ")
	}
	if e.Pointer != "" {
		fmt.Fprintf(b, "at %s: ", e.Pointer)
	}
	b.WriteString(e.Message)
	if e.Ref != "" {
		fmt.Fprintf(b, " (%s)", e.Ref)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func structureError(pointer, format string, args ...any) *Error {
	return &Error{Kind: KindSchemaStructure, Pointer: pointer, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the Kind of err. Issues map to KindValidation.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if _, ok := AsIssues(err); ok {
		return KindValidation
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Issue codes reported by validation.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeSchema        = "schema"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer into the instance (for example: /items/2/price).
	Code    string // One of the codes listed above, or the failing keyword.
	Message string
	// Keyword is the JSON Schema keyword location that produced the issue.
	Keyword string
	// Params carries structured parameters (e.g., {"want":"string","got":"number"}).
	Params map[string]any
}

func (it Issue) String() string {
	path := it.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s: %s: %s", path, it.Code, it.Message)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	b.WriteString(KindValidation.String())
	b.WriteString(": ")
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
