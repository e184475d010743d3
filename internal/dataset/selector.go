package dataset

// NumericColumns returns the names of all numeric columns in table order.
func NumericColumns(t *Table) []string {
	var out []string
	for _, name := range t.Names() {
		c, _ := t.Column(name)
		if c.Kind == KindNumeric {
			out = append(out, name)
		}
	}
	return out
}

// SelectFeatures returns the predictor columns used by the composite
// pipeline: every numeric column, then every categorical column whose
// cardinality is strictly below maxCardinality. Within each group the
// original column order is kept.
func SelectFeatures(t *Table, maxCardinality int) []string {
	out := NumericColumns(t)
	for _, name := range t.Names() {
		c, _ := t.Column(name)
		if c.Kind == KindCategorical && c.Cardinality() < maxCardinality {
			out = append(out, name)
		}
	}
	return out
}
