// Package ui is the output surface of the CLI: results go to stdout,
// warnings and violation reports to stderr, debug traces to stderr when
// enabled.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/reoring/yamlschema"
)

type UI interface {
	Printf(format string, args ...any)
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
	// Issues reports a validation failure: header, then one indented line per
	// violation.
	Issues(header string, iss yamlschema.Issues)
}

// Console writes to a pair of streams. Debug lines carry the time elapsed
// since the console was created.
type Console struct {
	out   io.Writer
	err   io.Writer
	debug bool
	start time.Time
}

var _ UI = (*Console)(nil)

func NewConsole(out, errOut io.Writer, debug bool) *Console {
	return &Console{out: out, err: errOut, debug: debug, start: time.Now()}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.err, format, args...)
}

func (c *Console) Debugf(format string, args ...any) {
	if !c.debug {
		return
	}
	fmt.Fprintf(c.err, "debug [%6.3fs] ", time.Since(c.start).Seconds())
	fmt.Fprintf(c.err, format, args...)
}

func (c *Console) Issues(header string, iss yamlschema.Issues) {
	fmt.Fprintln(c.err, header)
	for _, it := range iss {
		fmt.Fprintf(c.err, "  %s\n", it)
	}
}
