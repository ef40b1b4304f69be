package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders rows under a header, columns padded to their widest cell
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

func NewTable(w io.Writer, headers []string, noColor bool) *Table {
	return &Table{writer: w, headers: headers, noColor: noColor}
}

// AddRow appends a row. Cells beyond the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	if len(cells) > len(t.headers) {
		cells = cells[:len(t.headers)]
	}
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := columnWidths(t.headers, t.rows)
	heading := paint(t.noColor, color.Bold, color.FgCyan)
	rule := paint(t.noColor, color.FgHiBlack)

	head := make([]string, len(t.headers))
	under := make([]string, len(t.headers))
	for i, h := range t.headers {
		head[i] = heading.Sprint(padRight(h, widths[i]))
		under[i] = rule.Sprint(strings.Repeat("─", widths[i]))
	}
	t.line(head)
	fmt.Fprintln(t.writer, strings.Join(under, "  "))

	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = padRight(cell, widths[i])
		}
		t.line(cells)
	}
}

// line writes cells two spaces apart without trailing padding
func (t *Table) line(cells []string) {
	fmt.Fprintln(t.writer, strings.TrimRight(strings.Join(cells, "  "), " "))
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// padRight pads s with spaces to width code points
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// KeyValueTable renders aligned "key: value" lines
type KeyValueTable struct {
	writer  io.Writer
	pairs   [][2]string
	noColor bool
}

// NewKeyValueTable creates an empty key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow appends a pair
func (t *KeyValueTable) AddRow(key, value string) {
	t.pairs = append(t.pairs, [2]string{key, value})
}

// Render writes the pairs
func (t *KeyValueTable) Render() {
	width := 0
	for _, p := range t.pairs {
		width = max(width, utf8.RuneCountInString(p[0]))
	}

	key := paint(t.noColor, color.FgCyan)
	for _, p := range t.pairs {
		key.Fprint(t.writer, padRight(p[0]+":", width+1))
		fmt.Fprintf(t.writer, " %s\n", p[1])
	}
}
