// Package validate checks JSON instances against loaded schemas. Validation
// semantics come from santhosh-tekuri/jsonschema with format assertions
// enabled; this package maps its results onto yamlschema.Issues.
package validate

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/reoring/yamlschema"
	"github.com/reoring/yamlschema/canonical"
)

// schemaURL names the in-memory resource the schema is compiled from.
const schemaURL = "mem://yamlschema/schema.json"

// Validator is a compiled schema.
type Validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// Compile prepares doc for validation. Every format checker known to the
// validator is asserted, so "format" keywords reject bad values instead of
// being treated as annotations.
func Compile(doc yamlschema.Map) (*Validator, error) {
	raw, err := canonical.Marshal(doc)
	if err != nil {
		return nil, err
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindParse, Message: "cannot decode schema JSON", Err: err}
	}
	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(schemaURL, v); err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindSchemaStructure, Message: "invalid schema", Err: err}
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindSchemaStructure, Message: "cannot compile schema", Err: err}
	}
	return &Validator{schema: sch, printer: message.NewPrinter(language.English)}, nil
}

// Validate returns nil when instance conforms, otherwise yamlschema.Issues
// listing every violation.
func (v *Validator) Validate(instance any) error {
	err := v.schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return yamlschema.Issues{{Path: "/", Code: yamlschema.CodeSchema, Message: err.Error()}}
	}
	var iss yamlschema.Issues
	v.collect(ve, &iss)
	if len(iss) == 0 {
		iss = yamlschema.AppendIssues(iss, yamlschema.Issue{Path: "/", Code: yamlschema.CodeSchema, Message: ve.Error()})
	}
	return iss
}

// Validate compiles doc and validates instance against it.
func Validate(doc yamlschema.Map, instance any) error {
	v, err := Compile(doc)
	if err != nil {
		return err
	}
	return v.Validate(instance)
}

// ReadInstance reads the raw JSON instance at path.
func ReadInstance(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &yamlschema.Error{Kind: yamlschema.KindSourceNotFound, File: path, Message: "instance not found"}
		}
		return nil, &yamlschema.Error{Kind: yamlschema.KindSourceNotFound, File: path, Message: "cannot read instance", Err: err}
	}
	return b, nil
}

// ParseInstance decodes a JSON instance, keeping numbers exact.
func ParseInstance(b []byte) (any, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindParse, Message: "invalid JSON instance", Err: err}
	}
	return inst, nil
}

// LoadInstance reads and parses the JSON instance at path.
func LoadInstance(path string) (any, error) {
	b, err := ReadInstance(path)
	if err != nil {
		return nil, err
	}
	return ParseInstanceFile(path, b)
}

// ParseInstanceFile is ParseInstance for bytes read from path; errors name
// the file.
func ParseInstanceFile(path string, b []byte) (any, error) {
	inst, err := ParseInstance(b)
	if err != nil {
		var e *yamlschema.Error
		if errors.As(err, &e) {
			e.File = path
		}
		return nil, err
	}
	return inst, nil
}

// ValidateFile validates the JSON instance stored at path.
func ValidateFile(doc yamlschema.Map, path string) error {
	inst, err := LoadInstance(path)
	if err != nil {
		return err
	}
	return Validate(doc, inst)
}

// collect flattens the validator's error tree into one issue per leaf.
func (v *Validator) collect(ve *jsonschema.ValidationError, out *yamlschema.Issues) {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			v.collect(c, out)
		}
		return
	}
	at := yamlschema.PointerOf(ve.InstanceLocation...)
	keyword := strings.Join(ve.ErrorKind.KeywordPath(), "/")
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		missing := append([]string(nil), k.Missing...)
		sort.Strings(missing)
		for _, name := range missing {
			*out = yamlschema.AppendIssues(*out, yamlschema.Issue{
				Path:    at.Field(name).Pointer(),
				Code:    yamlschema.CodeRequired,
				Message: fmt.Sprintf("missing property %q", name),
				Keyword: keyword,
				Params:  map[string]any{"property": name},
			})
		}
		return
	case *kind.AdditionalProperties:
		for _, name := range k.Properties {
			*out = yamlschema.AppendIssues(*out, yamlschema.Issue{
				Path:    at.Field(name).Pointer(),
				Code:    yamlschema.CodeUnknownKey,
				Message: fmt.Sprintf("additional property %q not allowed", name),
				Keyword: keyword,
				Params:  map[string]any{"property": name},
			})
		}
		return
	}
	*out = yamlschema.AppendIssues(*out, yamlschema.Issue{
		Path:    at.Pointer(),
		Code:    codeFor(ve.ErrorKind.KeywordPath()),
		Message: ve.ErrorKind.LocalizedString(v.printer),
		Keyword: keyword,
	})
}

var keywordCodes = map[string]string{
	"required":             yamlschema.CodeRequired,
	"type":                 yamlschema.CodeInvalidType,
	"format":               yamlschema.CodeInvalidFormat,
	"enum":                 yamlschema.CodeInvalidEnum,
	"const":                yamlschema.CodeInvalidEnum,
	"pattern":              yamlschema.CodePattern,
	"minLength":            yamlschema.CodeTooShort,
	"maxLength":            yamlschema.CodeTooLong,
	"minimum":              yamlschema.CodeTooSmall,
	"exclusiveMinimum":     yamlschema.CodeTooSmall,
	"minItems":             yamlschema.CodeTooSmall,
	"minProperties":        yamlschema.CodeTooSmall,
	"maximum":              yamlschema.CodeTooBig,
	"exclusiveMaximum":     yamlschema.CodeTooBig,
	"maxItems":             yamlschema.CodeTooBig,
	"maxProperties":        yamlschema.CodeTooBig,
	"additionalProperties": yamlschema.CodeUnknownKey,
}

func codeFor(keywordPath []string) string {
	if len(keywordPath) == 0 {
		return yamlschema.CodeSchema
	}
	kw := keywordPath[len(keywordPath)-1]
	if code, ok := keywordCodes[kw]; ok {
		return code
	}
	return kw
}
