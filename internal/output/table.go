package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableRenderer is implemented by types that can render themselves as a table.
type TableRenderer interface {
	// Headers returns the column headers for the table.
	Headers() []string
	// Rows returns the data rows for the table.
	Rows() [][]string
}

// PrintTable writes data as a borderless table to the writer.
func PrintTable(w io.Writer, data TableRenderer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	if headers := data.Headers(); len(headers) > 0 {
		t.AppendHeader(toRow(headers))
	}
	for _, row := range data.Rows() {
		t.AppendRow(toRow(row))
	}

	style := table.StyleLight
	style.Options.DrawBorder = false
	style.Options.SeparateColumns = false
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	t.Render()
	return nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}

// TableData is a simple implementation of TableRenderer for ad-hoc tables.
type TableData struct {
	headers []string
	rows    [][]string
}

// NewTableData creates a new TableData with the given headers.
func NewTableData(headers ...string) *TableData {
	return &TableData{
		headers: headers,
		rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *TableData) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

// Headers implements TableRenderer.
func (t *TableData) Headers() []string {
	return t.headers
}

// Rows implements TableRenderer.
func (t *TableData) Rows() [][]string {
	return t.rows
}
