package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Rooms,Landsize,Type,Price\n")
	for i := 0; i < 50; i++ {
		rooms := 1 + i%5
		landsize := strconv.Itoa(120 + 7*i)
		if i%8 == 0 {
			landsize = "NA"
		}
		typ := "h"
		if i%3 == 0 {
			typ = "u"
		}
		price := 120000*rooms + 900*i
		b.WriteString(strconv.Itoa(rooms) + "," + landsize + "," + typ + "," + strconv.Itoa(price) + "\n")
	}
	path := filepath.Join(t.TempDir(), "housing.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func baseRequest(path string) RunRequest {
	return RunRequest{
		DatasetPath:    path,
		Approach:       ApproachMean,
		TargetColumn:   "Price",
		TrainFraction:  0.8,
		MaxCardinality: 10,
		SplitSeed:      3,
		Trees:          5,
		ForestSeed:     0,
	}
}

func TestRunScoresImputeApproach(t *testing.T) {
	req := baseRequest(writeDataset(t))

	res, err := Run(context.Background(), req, nil)
	require.NoError(t, err)

	assert.Equal(t, ApproachMean, res.Approach)
	assert.Equal(t, 40, res.Rows)
	// impute approaches use only the numeric predictors
	assert.Equal(t, 2, res.Columns)
	assert.Greater(t, res.MAE, 0.0)
}

func TestRunCompositeUsesCategoricalColumns(t *testing.T) {
	req := baseRequest(writeDataset(t))
	req.Approach = ApproachComposite

	res, err := Run(context.Background(), req, nil)
	require.NoError(t, err)

	// two numeric columns plus one-hot columns for Type
	assert.GreaterOrEqual(t, res.Columns, 4)
}

func TestRunUnknownApproach(t *testing.T) {
	req := baseRequest(writeDataset(t))
	req.Approach = Approach("median")

	_, err := Run(context.Background(), req, nil)
	assert.Error(t, err)
}

func TestRunMissingDataset(t *testing.T) {
	req := baseRequest(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := Run(context.Background(), req, nil)
	assert.Error(t, err)
}

func TestRunMissingTargetColumn(t *testing.T) {
	req := baseRequest(writeDataset(t))
	req.TargetColumn = "SalePrice"

	_, err := Run(context.Background(), req, nil)
	assert.Error(t, err)
}
