package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingCount pairs a column name with its number of missing cells.
type MissingCount struct {
	Column string
	Count  int
}

// MissingCounts returns, in table order, every column that has at least one
// missing cell together with its missing-cell count.
func (t *Table) MissingCounts() []MissingCount {
	var out []MissingCount
	for _, c := range t.cols {
		if n := c.MissingCount(); n > 0 {
			out = append(out, MissingCount{Column: c.Name, Count: n})
		}
	}
	return out
}

// Shape returns "(rows, columns)" in the form the reporting commands print.
func (t *Table) Shape() string {
	return fmt.Sprintf("(%d, %d)", t.rows, len(t.cols))
}

// formatCell renders a single cell for the preview.
func (c *Column) formatCell(i int) string {
	if c.Kind == KindCategorical {
		if c.Strings[i] == "" {
			return "NaN"
		}
		return c.Strings[i]
	}
	v := c.Floats[i]
	if math.IsNaN(v) {
		return "NaN"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Preview renders the first n rows as an aligned plain-text table, the way
// the pipeline-report command shows the head of the training predictors.
func (t *Table) Preview(n int) string {
	if n > t.rows {
		n = t.rows
	}

	widths := make([]int, len(t.cols))
	cells := make([][]string, n)
	for j, c := range t.cols {
		widths[j] = len(c.Name)
	}
	for i := 0; i < n; i++ {
		cells[i] = make([]string, len(t.cols))
		for j := range t.cols {
			s := t.cols[j].formatCell(i)
			cells[i][j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	var b strings.Builder
	for j, c := range t.cols {
		if j > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%*s", widths[j], c.Name)
	}
	b.WriteByte('\n')
	for i := 0; i < n; i++ {
		for j := range t.cols {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%*s", widths[j], cells[i][j])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
