package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/reoring/yamlschema"
)

func TestResolveSource(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "share")

	if got := ResolveSource(stem); got != stem+".yaml" {
		t.Fatalf("missing source: got %q", got)
	}
	if err := os.WriteFile(stem+".yml", []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveSource(stem); got != stem+".yml" {
		t.Fatalf("yml fallback: got %q", got)
	}
	if err := os.WriteFile(stem+".yaml", []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveSource(stem); got != stem+".yaml" {
		t.Fatalf("yaml preferred: got %q", got)
	}
	if got := ResolveSource("x/share.YML"); got != "x/share.YML" {
		t.Fatalf("explicit extension: got %q", got)
	}
}

func TestWithExt(t *testing.T) {
	cases := map[string]string{
		"schema":      "schema.json",
		"schema.json": "schema.json",
		"schema.JSON": "schema.JSON",
		"out/v1.2":    "out/v1.2.json",
	}
	for in, want := range cases {
		if got := WithExt(in, ".json"); got != want {
			t.Errorf("WithExt(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	// A failing writer keeps the previous content and leaves no temp file.
	boom := errors.New("boom")
	err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if yamlschema.KindOf(err) != yamlschema.KindWrite || !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "first" {
		t.Fatalf("content = %q", b)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the output file, got %d entries", len(entries))
	}
}

func TestWriteAtomic_PassesThroughSchemaErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	want := &yamlschema.Error{Kind: yamlschema.KindReference, Message: "x"}
	err := WriteAtomic(path, func(io.Writer) error { return want })
	if err != want {
		t.Fatalf("got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("destination must not exist")
	}
}
