package dataset

import (
	"fmt"
	"math"
)

// Kind classifies a column as numeric or categorical.
type Kind int

const (
	// KindNumeric marks a column parsed as float64 values.
	KindNumeric Kind = iota
	// KindCategorical marks a column kept as raw strings.
	KindCategorical
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named column. Exactly one of Floats/Strings is
// populated, matching Kind. Missing cells are math.NaN() for numeric
// columns and "" for categorical columns.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsMissing reports whether the cell at row i is missing.
func (c *Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Cardinality returns the number of distinct non-missing values in a
// categorical column. Numeric columns report 0.
func (c *Column) Cardinality() int {
	if c.Kind != KindCategorical {
		return 0
	}
	seen := make(map[string]struct{}, 16)
	for _, v := range c.Strings {
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// clone returns a deep copy of the column.
func (c *Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Kind == KindNumeric {
		out.Floats = append([]float64(nil), c.Floats...)
	} else {
		out.Strings = append([]string(nil), c.Strings...)
	}
	return out
}

// Table is a column-oriented data table with uniform row count.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// NewTable builds a table from columns. All columns must share the same
// length and have unique names.
func NewTable(cols ...Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("dataset: column %q not found", name)
	}
	return &t.cols[i], nil
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddColumn appends a column to the table. The first column fixes the row
// count; later columns must match it.
func (t *Table) AddColumn(c Column) error {
	if _, ok := t.index[c.Name]; ok {
		return fmt.Errorf("dataset: duplicate column %q", c.Name)
	}
	if len(t.cols) == 0 {
		t.rows = c.Len()
	} else if c.Len() != t.rows {
		return fmt.Errorf("dataset: column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), rows: t.rows}
	for _, c := range t.cols {
		cc := c.clone()
		out.index[cc.Name] = len(out.cols)
		out.cols = append(out.cols, cc)
	}
	return out
}

// Select returns a new table containing the named columns in the given
// order. Columns are deep-copied.
func (t *Table) Select(names []string) (*Table, error) {
	out := &Table{index: make(map[string]int, len(names))}
	for _, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(c.clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Drop returns a new table without the named columns. Unknown names are an
// error so that a stale column set surfaces immediately.
func (t *Table) Drop(names []string) (*Table, error) {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, fmt.Errorf("dataset: column %q not found", name)
		}
		drop[name] = struct{}{}
	}
	out := &Table{index: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		if _, gone := drop[c.Name]; gone {
			continue
		}
		if err := out.AddColumn(c.clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TakeRows returns a new table containing the rows at the given indices, in
// the given order. The splitter uses this to materialize partitions.
func (t *Table) TakeRows(indices []int) (*Table, error) {
	for _, i := range indices {
		if i < 0 || i >= t.rows {
			return nil, fmt.Errorf("dataset: row index %d out of range [0,%d)", i, t.rows)
		}
	}
	out := &Table{index: make(map[string]int, len(t.cols))}
	for _, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == KindNumeric {
			nc.Floats = make([]float64, len(indices))
			for j, i := range indices {
				nc.Floats[j] = c.Floats[i]
			}
		} else {
			nc.Strings = make([]string, len(indices))
			for j, i := range indices {
				nc.Strings[j] = c.Strings[i]
			}
		}
		if err := out.AddColumn(nc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Matrix returns the table as a row-major [][]float64. Every column must be
// numeric; the model layer consumes this representation.
func (t *Table) Matrix() ([][]float64, error) {
	for _, c := range t.cols {
		if c.Kind != KindNumeric {
			return nil, fmt.Errorf("dataset: column %q is categorical, matrix requires numeric columns", c.Name)
		}
	}
	out := make([][]float64, t.rows)
	for i := 0; i < t.rows; i++ {
		row := make([]float64, len(t.cols))
		for j := range t.cols {
			row[j] = t.cols[j].Floats[i]
		}
		out[i] = row
	}
	return out, nil
}

// SplitTarget removes the target column from the table and returns the
// remaining predictors together with the target values. The target column
// must be numeric and contain no missing values.
func (t *Table) SplitTarget(target string) (*Table, []float64, error) {
	c, err := t.Column(target)
	if err != nil {
		return nil, nil, err
	}
	if c.Kind != KindNumeric {
		return nil, nil, fmt.Errorf("dataset: target column %q is not numeric", target)
	}
	for i, v := range c.Floats {
		if math.IsNaN(v) {
			return nil, nil, fmt.Errorf("dataset: target column %q has missing value at row %d", target, i)
		}
	}
	y := append([]float64(nil), c.Floats...)
	X, err := t.Drop([]string{target})
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}
