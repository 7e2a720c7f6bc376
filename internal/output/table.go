package output

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visibleWidth returns the printed width of s, ignoring ANSI colour sequences.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// Table is a plain-text table with columns sized to their widest cell.
// Cells may contain ANSI colour sequences.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	rightAlign map[int]bool
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		rightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns a column, for numbers.
func (t *Table) AlignRight(col int) {
	t.rightAlign[col] = true
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats the table. The last column is not padded.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], visibleWidth(cell))
		}
	}

	var b strings.Builder
	sep := strings.Repeat(" ", t.padding)

	writeRow := func(cells []string) {
		last := len(cells) - 1
		for i, cell := range cells {
			pad := strings.Repeat(" ", widths[i]-visibleWidth(cell))
			switch {
			case t.rightAlign[i]:
				b.WriteString(pad + cell)
			case i == last:
				b.WriteString(cell)
			default:
				b.WriteString(cell + pad)
			}
			if i < last {
				b.WriteString(sep)
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	writeRow(rules)

	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}
