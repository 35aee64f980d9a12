// Package printer writes one line (or NUL-terminated record) per merged
// scenario instead of executing a command.
package printer

import (
	"io"
	"strings"
)

const placeholder = "{}"

// Printer formats scenario names through a template. The zero template
// prints the bare name; the zero terminator is a newline.
type Printer struct {
	w          io.Writer
	template   string
	terminator string
}

// New returns a printer writing to w. Empty template and terminator fall
// back to "{}" and "\n".
func New(w io.Writer, template, terminator string) *Printer {
	if template == "" {
		template = placeholder
	}
	if terminator == "" {
		terminator = "\n"
	}
	return &Printer{w: w, template: template, terminator: terminator}
}

// Print writes one record for the given scenario name.
func (p *Printer) Print(name string) error {
	_, err := io.WriteString(p.w, strings.ReplaceAll(p.template, placeholder, name)+p.terminator)
	return err
}
