// Package output provides output formatting utilities for CLI commands.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable outputs data in a formatted table.
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
)

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Printer handles formatted output to a writer.
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter creates a new Printer.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{
		out:    out,
		format: format,
	}
}

// Format returns the printer's output format.
func (p *Printer) Format() Format {
	return p.format
}

// Writer returns the printer's output writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print outputs data in the configured format.
// For table format, data should implement TableRenderer; anything else is
// printed as JSON.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		if renderer, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, renderer)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// Println prints a message followed by a newline.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}
