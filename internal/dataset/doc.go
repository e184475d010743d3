// Package dataset provides the column-oriented table that flows through the
// housing-price evaluation pipeline.
//
// A Table holds named, typed columns loaded from a CSV or Excel file. Numeric
// columns store float64 values with math.NaN() marking missing cells;
// categorical columns store strings with "" marking missing cells. The
// package also provides feature selection (numeric plus low-cardinality
// categorical columns), target separation, missing-value accounting, and the
// console preview used by the reporting commands.
//
// # Components
//
//   - table.go: Table and Column types plus row/column operations
//   - loader.go: CSV ingestion with column type inference
//   - xlsx.go: Excel ingestion via excelize
//   - selector.go: predictor-column selection rules
//   - summary.go: shape, missing counts and head preview
//
// Row alignment is the package's core invariant: every operation that
// produces a new Table preserves row order, so row i of any derived
// predictor table still pairs with element i of the target slice.
package dataset
