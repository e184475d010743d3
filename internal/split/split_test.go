package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housecli/internal/dataset"
)

func buildTable(t *testing.T, n int) (*dataset.Table, []float64) {
	t.Helper()
	ids := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		ids[i] = float64(i)
		y[i] = float64(i) * 10
	}
	tbl, err := dataset.NewTable(dataset.Column{Name: "ID", Kind: dataset.KindNumeric, Floats: ids})
	require.NoError(t, err)
	return tbl, y
}

func TestTrainValidCountsAddUp(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		fraction  float64
		wantTrain int
	}{
		{name: "eighty_twenty", rows: 100, fraction: 0.8, wantTrain: 80},
		{name: "odd_row_count", rows: 13, fraction: 0.8, wantTrain: 10},
		{name: "tiny", rows: 2, fraction: 0.8, wantTrain: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, y := buildTable(t, tt.rows)
			res, err := TrainValid(tbl, y, tt.fraction, 7)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTrain, res.XTrain.NumRows())
			assert.Equal(t, tt.rows, res.XTrain.NumRows()+res.XValid.NumRows())
			assert.Equal(t, res.XTrain.NumRows(), len(res.YTrain))
			assert.Equal(t, res.XValid.NumRows(), len(res.YValid))
		})
	}
}

func TestTrainValidPreservesPairing(t *testing.T) {
	tbl, y := buildTable(t, 50)
	res, err := TrainValid(tbl, y, 0.8, 42)
	require.NoError(t, err)

	check := func(x *dataset.Table, ys []float64) {
		col, err := x.Column("ID")
		require.NoError(t, err)
		for i, id := range col.Floats {
			assert.Equal(t, id*10, ys[i])
		}
	}
	check(res.XTrain, res.YTrain)
	check(res.XValid, res.YValid)
}

func TestTrainValidPartitionsAreDisjoint(t *testing.T) {
	tbl, y := buildTable(t, 40)
	res, err := TrainValid(tbl, y, 0.8, 1)
	require.NoError(t, err)

	seen := make(map[float64]bool)
	for _, x := range []*dataset.Table{res.XTrain, res.XValid} {
		col, err := x.Column("ID")
		require.NoError(t, err)
		for _, id := range col.Floats {
			assert.False(t, seen[id], "row %v appears twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 40)
}

func TestTrainValidSameSeedSameSplit(t *testing.T) {
	tbl, y := buildTable(t, 30)

	a, err := TrainValid(tbl, y, 0.8, 99)
	require.NoError(t, err)
	b, err := TrainValid(tbl, y, 0.8, 99)
	require.NoError(t, err)

	colA, _ := a.XTrain.Column("ID")
	colB, _ := b.XTrain.Column("ID")
	assert.Equal(t, colA.Floats, colB.Floats)
}

func TestTrainValidInputValidation(t *testing.T) {
	tbl, y := buildTable(t, 10)

	_, err := TrainValid(tbl, y[:5], 0.8, 0)
	assert.Error(t, err)

	_, err = TrainValid(tbl, y, 1.0, 0)
	assert.Error(t, err)

	_, err = TrainValid(tbl, y, 0, 0)
	assert.Error(t, err)

	one, yOne := buildTable(t, 1)
	_, err = TrainValid(one, yOne, 0.8, 0)
	assert.Error(t, err)
}
