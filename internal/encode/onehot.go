// Package encode turns categorical columns into numeric indicator columns.
package encode

import (
	"fmt"
	"sort"

	"housecli/internal/dataset"
)

// OneHot expands each categorical column into one 0/1 indicator column per
// category observed in the training partition. The category vocabulary is
// learned once at Fit time; values encountered later that were not in the
// vocabulary encode as all zeros rather than failing, which is the only
// tolerated anomaly in the pipeline. Numeric columns pass through
// unchanged, keeping their position ahead of the expanded columns.
type OneHot struct {
	// vocab maps a categorical column name to its sorted category list.
	vocab  map[string][]string
	fitted bool
}

// NewOneHot returns an unfitted encoder.
func NewOneHot() *OneHot { return &OneHot{} }

// Fit learns the category vocabulary of every categorical column. Missing
// cells do not contribute a category.
func (e *OneHot) Fit(train *dataset.Table) error {
	e.vocab = make(map[string][]string)
	for _, name := range train.Names() {
		c, err := train.Column(name)
		if err != nil {
			return err
		}
		if c.Kind != dataset.KindCategorical {
			continue
		}
		seen := make(map[string]struct{})
		for _, v := range c.Strings {
			if v == "" {
				continue
			}
			seen[v] = struct{}{}
		}
		cats := make([]string, 0, len(seen))
		for v := range seen {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.vocab[name] = cats
	}
	e.fitted = true
	return nil
}

// Categories returns the fitted vocabulary for a column.
func (e *OneHot) Categories(column string) []string {
	return append([]string(nil), e.vocab[column]...)
}

// FeatureName is the output column name for one category of one input
// column.
func FeatureName(column, category string) string {
	return column + "=" + category
}

// Transform encodes a partition against the fitted vocabulary. Every
// categorical column in the input must have been present during Fit; the
// output feature set and order is identical regardless of which values the
// partition happens to contain.
func (e *OneHot) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !e.fitted {
		return nil, fmt.Errorf("encode: one-hot encoder not fitted")
	}
	out, err := dataset.NewTable()
	if err != nil {
		return nil, err
	}
	for _, name := range t.Names() {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if c.Kind == dataset.KindNumeric {
			nc := dataset.Column{Name: c.Name, Kind: dataset.KindNumeric,
				Floats: append([]float64(nil), c.Floats...)}
			if err := out.AddColumn(nc); err != nil {
				return nil, err
			}
			continue
		}
		cats, ok := e.vocab[name]
		if !ok {
			return nil, fmt.Errorf("encode: column %q was not present during fit", name)
		}
		for _, cat := range cats {
			flags := make([]float64, len(c.Strings))
			for i, v := range c.Strings {
				if v == cat {
					flags[i] = 1
				}
			}
			nc := dataset.Column{Name: FeatureName(name, cat), Kind: dataset.KindNumeric, Floats: flags}
			if err := out.AddColumn(nc); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
