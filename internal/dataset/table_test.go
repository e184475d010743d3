package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(
		Column{Name: "Rooms", Kind: KindNumeric, Floats: []float64{2, 3, math.NaN(), 4}},
		Column{Name: "Landsize", Kind: KindNumeric, Floats: []float64{150, 210, 340, 90}},
		Column{Name: "Type", Kind: KindCategorical, Strings: []string{"h", "u", "h", ""}},
		Column{Name: "Price", Kind: KindNumeric, Floats: []float64{1050000, 870000, 1465000, 615000}},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewTableRejectsMismatchedRows(t *testing.T) {
	_, err := NewTable(
		Column{Name: "A", Kind: KindNumeric, Floats: []float64{1, 2}},
		Column{Name: "B", Kind: KindNumeric, Floats: []float64{1}},
	)
	require.Error(t, err)
}

func TestNewTableRejectsDuplicateNames(t *testing.T) {
	_, err := NewTable(
		Column{Name: "A", Kind: KindNumeric, Floats: []float64{1}},
		Column{Name: "A", Kind: KindNumeric, Floats: []float64{2}},
	)
	require.Error(t, err)
}

func TestSplitTarget(t *testing.T) {
	tbl := sampleTable(t)

	X, y, err := tbl.SplitTarget("Price")
	require.NoError(t, err)

	assert.Equal(t, []float64{1050000, 870000, 1465000, 615000}, y)
	assert.Equal(t, []string{"Rooms", "Landsize", "Type"}, X.Names())
	assert.False(t, X.HasColumn("Price"))
	// original table is untouched
	assert.True(t, tbl.HasColumn("Price"))
}

func TestSplitTargetRejectsMissingTarget(t *testing.T) {
	tbl, err := NewTable(
		Column{Name: "A", Kind: KindNumeric, Floats: []float64{1, 2}},
		Column{Name: "Price", Kind: KindNumeric, Floats: []float64{100, math.NaN()}},
	)
	require.NoError(t, err)

	_, _, err = tbl.SplitTarget("Price")
	require.Error(t, err)
}

func TestTakeRowsPreservesPairing(t *testing.T) {
	tbl := sampleTable(t)

	sub, err := tbl.TakeRows([]int{3, 1})
	require.NoError(t, err)
	require.Equal(t, 2, sub.NumRows())

	rooms, err := sub.Column("Rooms")
	require.NoError(t, err)
	typ, err := sub.Column("Type")
	require.NoError(t, err)

	assert.Equal(t, []float64{4, 3}, rooms.Floats)
	assert.Equal(t, []string{"", "u"}, typ.Strings)
}

func TestTakeRowsRejectsOutOfRange(t *testing.T) {
	tbl := sampleTable(t)
	_, err := tbl.TakeRows([]int{0, 4})
	require.Error(t, err)
}

func TestDropAndSelect(t *testing.T) {
	tbl := sampleTable(t)

	dropped, err := tbl.Drop([]string{"Type"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rooms", "Landsize", "Price"}, dropped.Names())

	selected, err := tbl.Select([]string{"Price", "Rooms"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Price", "Rooms"}, selected.Names())

	_, err = tbl.Drop([]string{"Nope"})
	assert.Error(t, err)
}

func TestMatrixRequiresNumericColumns(t *testing.T) {
	tbl := sampleTable(t)

	_, err := tbl.Matrix()
	require.Error(t, err)

	numeric, err := tbl.Select([]string{"Rooms", "Landsize"})
	require.NoError(t, err)
	m, err := numeric.Matrix()
	require.NoError(t, err)
	require.Len(t, m, 4)
	assert.Equal(t, []float64{2, 150}, m[0])
	assert.True(t, math.IsNaN(m[2][0]))
}

func TestMissingCountsAndShape(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, "(4, 4)", tbl.Shape())
	counts := tbl.MissingCounts()
	require.Len(t, counts, 2)
	assert.Equal(t, MissingCount{Column: "Rooms", Count: 1}, counts[0])
	assert.Equal(t, MissingCount{Column: "Type", Count: 1}, counts[1])
}

func TestCloneIsDeep(t *testing.T) {
	tbl := sampleTable(t)
	cp := tbl.Clone()

	col, err := cp.Column("Landsize")
	require.NoError(t, err)
	col.Floats[0] = -1

	orig, err := tbl.Column("Landsize")
	require.NoError(t, err)
	assert.Equal(t, 150.0, orig.Floats[0])
}

func TestPreview(t *testing.T) {
	tbl := sampleTable(t)
	out := tbl.Preview(2)

	assert.Contains(t, out, "Rooms")
	assert.Contains(t, out, "Type")
	// two data rows plus header
	assert.Equal(t, 3, len(splitLines(out)))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
