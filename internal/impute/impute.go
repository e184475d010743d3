// Package impute implements the missing-value strategies applied ahead of
// model fitting.
//
// Every strategy follows the same fit/transform discipline: Fit learns its
// parameters (affected columns, replacement statistics) from the training
// partition only, and Transform replays exactly those parameters on any
// partition handed to it. Statistics are never recomputed from validation
// data.
package impute

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"housecli/internal/dataset"
)

// IndicatorSuffix is appended to a column name to form its missingness
// indicator column.
const IndicatorSuffix = "_was_missing"

// Strategy is a fit-once, transform-many preprocessing step.
type Strategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string
	// Fit learns strategy parameters from the training partition.
	Fit(train *dataset.Table) error
	// Transform applies the fitted parameters to a partition and returns a
	// new table. Transform before Fit is an error.
	Transform(t *dataset.Table) (*dataset.Table, error)
}

// MissingColumns returns, in table order, the names of columns with at
// least one missing cell.
func MissingColumns(t *dataset.Table) []string {
	var out []string
	for _, mc := range t.MissingCounts() {
		out = append(out, mc.Column)
	}
	return out
}

// trainMean computes the mean of the non-missing values of a numeric
// column. Returns an error when every cell is missing, since there is no
// statistic to replay.
func trainMean(c *dataset.Column) (float64, error) {
	vals := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("impute: column %q has no observed values", c.Name)
	}
	return stat.Mean(vals, nil), nil
}

// Drop removes every column that had any missing value in the training
// partition. The column set is decided at Fit time and replayed verbatim.
type Drop struct {
	columns []string
	fitted  bool
}

// NewDrop returns an unfitted Drop strategy.
func NewDrop() *Drop { return &Drop{} }

// Name implements Strategy.
func (d *Drop) Name() string { return "drop" }

// Columns returns the column names selected for removal during Fit.
func (d *Drop) Columns() []string { return append([]string(nil), d.columns...) }

// Fit records the training columns that contain missing values.
func (d *Drop) Fit(train *dataset.Table) error {
	d.columns = MissingColumns(train)
	d.fitted = true
	return nil
}

// Transform removes the recorded columns from the given partition.
func (d *Drop) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !d.fitted {
		return nil, fmt.Errorf("impute: drop strategy not fitted")
	}
	if len(d.columns) == 0 {
		return t.Clone(), nil
	}
	out, err := t.Drop(d.columns)
	if err != nil {
		return nil, fmt.Errorf("impute: drop columns: %w", err)
	}
	return out, nil
}

// Mean replaces missing numeric cells with the training mean of their
// column.
type Mean struct {
	means  map[string]float64
	fitted bool
}

// NewMean returns an unfitted Mean strategy.
func NewMean() *Mean { return &Mean{} }

// Name implements Strategy.
func (m *Mean) Name() string { return "mean" }

// Fit computes the per-column training means over non-missing values.
func (m *Mean) Fit(train *dataset.Table) error {
	m.means = make(map[string]float64)
	for _, name := range train.Names() {
		c, err := train.Column(name)
		if err != nil {
			return err
		}
		if c.Kind != dataset.KindNumeric {
			continue
		}
		mean, err := trainMean(c)
		if err != nil {
			return err
		}
		m.means[name] = mean
	}
	m.fitted = true
	return nil
}

// Transform fills missing numeric cells with the fitted training means.
// Columns unseen at fit time are an error: the validation schema must match
// the training schema.
func (m *Mean) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !m.fitted {
		return nil, fmt.Errorf("impute: mean strategy not fitted")
	}
	out := t.Clone()
	for _, name := range out.Names() {
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		if c.Kind != dataset.KindNumeric {
			continue
		}
		mean, ok := m.means[name]
		if !ok {
			return nil, fmt.Errorf("impute: column %q was not present during fit", name)
		}
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				c.Floats[i] = mean
			}
		}
	}
	return out, nil
}

// MeanWithIndicator extends Mean: for every column that had missing values
// in the training partition it first appends a 0/1 indicator column named
// "<column>_was_missing" reflecting the transformed partition's own
// missingness, then mean-imputes.
type MeanWithIndicator struct {
	mean    Mean
	flagged []string
	fitted  bool
}

// NewMeanWithIndicator returns an unfitted MeanWithIndicator strategy.
func NewMeanWithIndicator() *MeanWithIndicator { return &MeanWithIndicator{} }

// Name implements Strategy.
func (m *MeanWithIndicator) Name() string { return "mean+indicator" }

// Fit records the training columns with missing values and the training
// means.
func (m *MeanWithIndicator) Fit(train *dataset.Table) error {
	if err := m.mean.Fit(train); err != nil {
		return err
	}
	m.flagged = MissingColumns(train)
	m.fitted = true
	return nil
}

// Transform fills with training means, then appends the indicator columns.
// The flags are read from the partition before imputation, since afterwards
// nothing is missing anymore; imputation runs first because Mean.Transform
// only accepts the schema it was fitted on.
func (m *MeanWithIndicator) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !m.fitted {
		return nil, fmt.Errorf("impute: mean+indicator strategy not fitted")
	}
	out, err := m.mean.Transform(t)
	if err != nil {
		return nil, err
	}
	for _, name := range m.flagged {
		c, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("impute: flagged column missing from partition: %w", err)
		}
		flags := make([]float64, c.Len())
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				flags[i] = 1
			}
		}
		ind := dataset.Column{Name: name + IndicatorSuffix, Kind: dataset.KindNumeric, Floats: flags}
		if err := out.AddColumn(ind); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Constant replaces missing numeric cells with a fixed fill value. Used for
// the numeric half of the composite preprocessor.
type Constant struct {
	Value  float64
	fitted bool
}

// NewConstant returns a Constant strategy with the given fill value.
func NewConstant(value float64) *Constant { return &Constant{Value: value} }

// Name implements Strategy.
func (c *Constant) Name() string { return "constant" }

// Fit is a no-op beyond marking the strategy usable; the fill value is
// configuration, not a learned statistic.
func (c *Constant) Fit(train *dataset.Table) error {
	c.fitted = true
	return nil
}

// Transform fills missing numeric cells with the fixed value.
func (c *Constant) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !c.fitted {
		return nil, fmt.Errorf("impute: constant strategy not fitted")
	}
	out := t.Clone()
	for _, name := range out.Names() {
		col, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		if col.Kind != dataset.KindNumeric {
			continue
		}
		for i, v := range col.Floats {
			if math.IsNaN(v) {
				col.Floats[i] = c.Value
			}
		}
	}
	return out, nil
}

// MostFrequent replaces missing categorical cells with the most frequent
// training value of their column. Ties break toward the value seen first in
// the training data.
type MostFrequent struct {
	modes  map[string]string
	fitted bool
}

// NewMostFrequent returns an unfitted MostFrequent strategy.
func NewMostFrequent() *MostFrequent { return &MostFrequent{} }

// Name implements Strategy.
func (m *MostFrequent) Name() string { return "most_frequent" }

// Fit records the per-column modal value over non-missing training cells.
func (m *MostFrequent) Fit(train *dataset.Table) error {
	m.modes = make(map[string]string)
	for _, name := range train.Names() {
		c, err := train.Column(name)
		if err != nil {
			return err
		}
		if c.Kind != dataset.KindCategorical {
			continue
		}
		counts := make(map[string]int)
		order := make([]string, 0, 8)
		for _, v := range c.Strings {
			if v == "" {
				continue
			}
			if counts[v] == 0 {
				order = append(order, v)
			}
			counts[v]++
		}
		if len(order) == 0 {
			return fmt.Errorf("impute: column %q has no observed values", name)
		}
		best := order[0]
		for _, v := range order {
			if counts[v] > counts[best] {
				best = v
			}
		}
		m.modes[name] = best
	}
	m.fitted = true
	return nil
}

// Transform fills missing categorical cells with the fitted modal values.
func (m *MostFrequent) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !m.fitted {
		return nil, fmt.Errorf("impute: most_frequent strategy not fitted")
	}
	out := t.Clone()
	for _, name := range out.Names() {
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		if c.Kind != dataset.KindCategorical {
			continue
		}
		mode, ok := m.modes[name]
		if !ok {
			return nil, fmt.Errorf("impute: column %q was not present during fit", name)
		}
		for i, v := range c.Strings {
			if v == "" {
				c.Strings[i] = mode
			}
		}
	}
	return out, nil
}
