package fileutil

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/yamlschema"
)

// WriteAtomic writes the output of write to path through a temporary file in
// the same directory, renaming it into place only when everything
// succeeded. On failure the destination is left untouched.
func WriteAtomic(path string, write func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return writeError(path, "cannot create output", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		var e *yamlschema.Error
		if errors.As(err, &e) {
			return err
		}
		return writeError(path, "cannot write output", err)
	}
	if err := bw.Flush(); err != nil {
		return writeError(path, "cannot write output", err)
	}
	if err := tmp.Sync(); err != nil {
		return writeError(path, "cannot sync output", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return writeError(path, "cannot set output permissions", err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(path, "cannot close output", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return writeError(path, "cannot move output into place", err)
	}
	return nil
}

func writeError(path, msg string, err error) *yamlschema.Error {
	return &yamlschema.Error{Kind: yamlschema.KindWrite, File: path, Message: msg, Err: err}
}

// ResolveSource maps a schema path stem to an existing file: "share" becomes
// "share.yaml" (or "share.yml" when only that exists). Paths that already
// carry a YAML extension are returned unchanged.
func ResolveSource(stem string) string {
	switch strings.ToLower(filepath.Ext(stem)) {
	case ".yaml", ".yml":
		return stem
	}
	candidate := stem + ".yaml"
	if _, err := os.Stat(candidate); err != nil {
		if _, err := os.Stat(stem + ".yml"); err == nil {
			return stem + ".yml"
		}
	}
	return candidate
}

// WithExt appends ext to stem unless stem already ends with it.
func WithExt(stem, ext string) string {
	if strings.EqualFold(filepath.Ext(stem), ext) {
		return stem
	}
	return stem + ext
}
