// Package docs renders documentation rows as CSV or Markdown tables.
package docs

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/reoring/yamlschema"
	"github.com/reoring/yamlschema/internal/fileutil"
)

// Format selects a table renderer.
type Format int

const (
	FormatCSV Format = iota
	FormatMarkdown
)

// FormatFor picks the renderer for an output path by its extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatCSV
	}
}

// WriteCSV writes the header row followed by one record per row. Separator
// rows are written as empty records.
func WriteCSV(w io.Writer, rows []yamlschema.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(yamlschema.Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes a GitHub-flavoured table. Each separator row starts a
// new table so definitions are rendered as their own sections.
func WriteMarkdown(w io.Writer, rows []yamlschema.Row) error {
	if err := markdownHeader(w); err != nil {
		return err
	}
	for _, r := range rows {
		if r.Separator {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if err := markdownHeader(w); err != nil {
				return err
			}
			continue
		}
		if err := markdownLine(w, r.Record()); err != nil {
			return err
		}
	}
	return nil
}

func markdownHeader(w io.Writer) error {
	h := yamlschema.Header()
	if err := markdownLine(w, h); err != nil {
		return err
	}
	sep := make([]string, len(h))
	for i := range sep {
		sep[i] = "---"
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))
	return err
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func markdownLine(w io.Writer, cells []string) error {
	esc := make([]string, len(cells))
	for i, c := range cells {
		esc[i] = cellEscaper.Replace(c)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(esc, " | "))
	return err
}

// Write renders rows in the given format.
func Write(w io.Writer, format Format, rows []yamlschema.Row) error {
	if format == FormatMarkdown {
		return WriteMarkdown(w, rows)
	}
	return WriteCSV(w, rows)
}

// WriteFile atomically writes rows to path, choosing the format from the
// path's extension.
func WriteFile(path string, rows []yamlschema.Row) error {
	format := FormatFor(path)
	return fileutil.WriteAtomic(path, func(w io.Writer) error {
		return Write(w, format, rows)
	})
}
