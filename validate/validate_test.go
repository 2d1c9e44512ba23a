package validate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/yamlschema"
	"github.com/reoring/yamlschema/validate"
	"github.com/reoring/yamlschema/yamlsrc"
)

const personYAML = `
type: object
required: [name]
properties:
  name: {type: string}
  email: {type: string, format: email}
  site: {type: string, format: uri}
  owner: {$ref: '#/definitions/Person'}
definitions:
  Person:
    type: object
    required: [id]
    properties:
      id: {type: string}
`

func compile(t *testing.T, src string) *validate.Validator {
	t.Helper()
	doc, err := yamlsrc.Load(strings.NewReader(src))
	require.NoError(t, err)
	v, err := validate.Compile(doc)
	require.NoError(t, err)
	return v
}

func parse(t *testing.T, js string) any {
	t.Helper()
	inst, err := validate.ParseInstance([]byte(js))
	require.NoError(t, err)
	return inst
}

func TestValidate_OK(t *testing.T) {
	v := compile(t, personYAML)
	assert.NoError(t, v.Validate(parse(t, `{"name":"a","email":"a@example.com","owner":{"id":"1"}}`)))
}

func TestValidate_MissingRequired(t *testing.T) {
	v := compile(t, personYAML)
	err := v.Validate(parse(t, `{}`))
	iss, ok := yamlschema.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	require.Len(t, iss, 1)
	assert.Equal(t, "/name", iss[0].Path)
	assert.Equal(t, yamlschema.CodeRequired, iss[0].Code)
	assert.Contains(t, iss[0].Message, "name")
	assert.Equal(t, yamlschema.KindValidation, yamlschema.KindOf(err))
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	v := compile(t, personYAML)
	err := v.Validate(parse(t, `{"name":5,"email":"not-an-email","site":"::","owner":{}}`))
	iss, ok := yamlschema.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)

	byPath := map[string]string{}
	for _, it := range iss {
		byPath[it.Path] = it.Code
	}
	assert.Equal(t, yamlschema.CodeInvalidType, byPath["/name"])
	assert.Equal(t, yamlschema.CodeInvalidFormat, byPath["/email"])
	assert.Equal(t, yamlschema.CodeInvalidFormat, byPath["/site"])
	assert.Equal(t, yamlschema.CodeRequired, byPath["/owner/id"])
	assert.Len(t, iss, 4)
}

func TestValidate_FormatsAreAsserted(t *testing.T) {
	v := compile(t, `
properties:
  when: {type: string, format: date-time}
  ip: {type: string, format: ipv4}
`)
	assert.NoError(t, v.Validate(parse(t, `{"when":"2024-01-02T03:04:05Z","ip":"10.0.0.1"}`)))
	err := v.Validate(parse(t, `{"when":"yesterday","ip":"999.1.1.1"}`))
	iss, ok := yamlschema.AsIssues(err)
	require.True(t, ok, "expected Issues, got %v", err)
	assert.Len(t, iss, 2)
}

func TestValidateFile(t *testing.T) {
	doc, err := yamlsrc.Load(strings.NewReader(personYAML))
	require.NoError(t, err)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"x"}`), 0o644))
	assert.NoError(t, validate.ValidateFile(doc, good))

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name":`), 0o644))
	err = validate.ValidateFile(doc, broken)
	assert.Equal(t, yamlschema.KindParse, yamlschema.KindOf(err))
	assert.Contains(t, err.Error(), broken)

	err = validate.ValidateFile(doc, filepath.Join(dir, "missing.json"))
	assert.Equal(t, yamlschema.KindSourceNotFound, yamlschema.KindOf(err))
}

func TestCompile_InvalidSchema(t *testing.T) {
	doc, err := yamlsrc.Load(strings.NewReader("type: 12\n"))
	require.NoError(t, err)
	_, err = validate.Compile(doc)
	assert.Equal(t, yamlschema.KindSchemaStructure, yamlschema.KindOf(err))
}

func TestDuplicateKeys(t *testing.T) {
	iss, err := validate.DuplicateKeys([]byte(`{"a":1,"b":{"c":[{"d":1,"d":2}],"c":3},"a":2}`))
	require.NoError(t, err)
	var paths []string
	for _, it := range iss {
		assert.Equal(t, yamlschema.CodeDuplicateKey, it.Code)
		paths = append(paths, it.Path)
	}
	assert.Equal(t, []string{"/b/c/0/d", "/b/c", "/a"}, paths)

	iss, err = validate.DuplicateKeys([]byte(`{"a":1,"b":[1,2]}`))
	require.NoError(t, err)
	assert.Empty(t, iss)

	_, err = validate.DuplicateKeys([]byte(`{"a":`))
	assert.Equal(t, yamlschema.KindParse, yamlschema.KindOf(err))
}

func TestParseInstanceFile(t *testing.T) {
	inst, err := validate.ParseInstanceFile("sample.json", []byte(`{"name":"x"}`))
	require.NoError(t, err)
	assert.NotNil(t, inst)

	_, err = validate.ParseInstanceFile("sample.json", []byte(`{"name":`))
	assert.Equal(t, yamlschema.KindParse, yamlschema.KindOf(err))
	assert.Contains(t, err.Error(), "ParseError: sample.json: ")
}
