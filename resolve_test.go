package yamlschema_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/yamlschema"
)

func TestResolve(t *testing.T) {
	doc := load(t, `
definitions:
  Person:
    type: object
  a/b:
    type: string
  list:
    - {type: integer}
    - {type: boolean}
`)
	cases := []struct {
		ref  string
		want string
	}{
		{"#/definitions/Person", "object"},
		{"#/definitions/a~1b", "string"},
		{"#/definitions/list/1", "boolean"},
	}
	for _, tc := range cases {
		t.Run(tc.ref, func(t *testing.T) {
			v, err := yamlschema.Resolve(doc, tc.ref)
			require.NoError(t, err)
			m, ok := v.(yamlschema.Map)
			require.True(t, ok)
			got, _ := m.Get("type")
			assert.Equal(t, tc.want, got)
		})
	}

	root, err := yamlschema.Resolve(doc, "#")
	require.NoError(t, err)
	assert.Same(t, doc, root)
}

func TestResolve_Failures(t *testing.T) {
	doc := load(t, "definitions:\n  list: [{type: integer}]\n")
	for _, ref := range []string{
		"#/definitions/Missing",
		"#/definitions/list/3",
		"#/definitions/list/x",
		"#/definitions/list/0/type/deeper",
		"other.json#/definitions/list",
		"definitions/list",
	} {
		t.Run(ref, func(t *testing.T) {
			_, err := yamlschema.Resolve(doc, ref)
			require.Error(t, err)
			assert.Equal(t, yamlschema.KindReference, yamlschema.KindOf(err))
			assert.Contains(t, err.Error(), ref)
		})
	}
}

func TestRefName(t *testing.T) {
	assert.Equal(t, "Person", yamlschema.RefName("#/definitions/Person"))
	assert.Equal(t, "a/b", yamlschema.RefName("#/definitions/a~1b"))
	assert.Equal(t, "", yamlschema.RefName("#"))
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "RFC3987", yamlschema.FormatCode("uri"))
	assert.Equal(t, "RFC3339", yamlschema.FormatCode("date-time"))
	assert.Equal(t, "ISO8601", yamlschema.FormatCode("date"))
	for _, other := range []string{"", "email", "ipv4", "URI", "time"} {
		assert.Empty(t, yamlschema.FormatCode(other), other)
	}
}

func TestFormatCode_ArbitraryFormatsAreEmpty(t *testing.T) {
	f := fuzz.New().NilChance(0)
	known := map[string]bool{"uri": true, "date-time": true, "date": true}
	for i := 0; i < 200; i++ {
		var s string
		f.Fuzz(&s)
		if known[s] {
			continue
		}
		assert.Empty(t, yamlschema.FormatCode(s), s)
	}
}

func TestClassify_Precedence(t *testing.T) {
	cases := []struct {
		src  string
		want yamlschema.NodeKind
	}{
		{"{type: object, $ref: '#/x', anyOf: []}", yamlschema.NodeObject},
		{"{type: array, $ref: '#/x'}", yamlschema.NodeArray},
		{"{$ref: '#/x', anyOf: [{$ref: '#/y'}]}", yamlschema.NodeRef},
		{"{anyOf: [{$ref: '#/y'}], type: string}", yamlschema.NodeUnion},
		{"{type: string}", yamlschema.NodePrimitive},
		{"{description: untyped}", yamlschema.NodePrimitive},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			doc := load(t, "node: "+tc.src+"\n")
			v, _ := doc.Get("node")
			n, err := yamlschema.Classify(v, yamlschema.PointerOf("node"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.Kind)
		})
	}
}

func TestClassify_RejectsNonMappings(t *testing.T) {
	for _, v := range []any{nil, "string", int64(1), []any{}} {
		_, err := yamlschema.Classify(v, yamlschema.PointerOf("properties", "x"))
		require.Error(t, err)
		assert.Equal(t, yamlschema.KindSchemaStructure, yamlschema.KindOf(err))
	}
}

func TestPathRef(t *testing.T) {
	assert.Equal(t, "/", yamlschema.PathRef{}.Pointer())
	p := yamlschema.PointerOf("properties", "a/b").Field("items").Index(2)
	assert.Equal(t, "/properties/a~1b/items/2", p.Pointer())
	assert.Equal(t, "x~y/z", yamlschema.UnescapeToken(yamlschema.EscapeToken("x~y/z")))
}
