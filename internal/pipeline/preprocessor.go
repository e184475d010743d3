package pipeline

import (
	"fmt"

	"housecli/internal/dataset"
	"housecli/internal/encode"
	"housecli/internal/impute"
)

// Preprocessor is the composite per-column-type transform used by the full
// pipeline run: numeric columns get constant-value imputation, categorical
// columns get most-frequent imputation followed by one-hot encoding.
// Everything is fitted once on the training partition and replayed on any
// later partition, so fit-time and predict-time schemas always agree.
type Preprocessor struct {
	constant     *impute.Constant
	mostFrequent *impute.MostFrequent
	encoder      *encode.OneHot
	fitted       bool
}

// NewPreprocessor returns a composite preprocessor whose numeric imputer
// fills with fillValue.
func NewPreprocessor(fillValue float64) *Preprocessor {
	return &Preprocessor{
		constant:     impute.NewConstant(fillValue),
		mostFrequent: impute.NewMostFrequent(),
		encoder:      encode.NewOneHot(),
	}
}

// Fit learns the imputation parameters and the category vocabulary from the
// training partition. The encoder is fitted on the imputed training data so
// the modal fill value is always part of the vocabulary.
func (p *Preprocessor) Fit(train *dataset.Table) error {
	if err := p.constant.Fit(train); err != nil {
		return fmt.Errorf("pipeline: fit constant imputer: %w", err)
	}
	if err := p.mostFrequent.Fit(train); err != nil {
		return fmt.Errorf("pipeline: fit most-frequent imputer: %w", err)
	}
	imputed, err := p.mostFrequent.Transform(train)
	if err != nil {
		return fmt.Errorf("pipeline: impute training categoricals: %w", err)
	}
	if err := p.encoder.Fit(imputed); err != nil {
		return fmt.Errorf("pipeline: fit encoder: %w", err)
	}
	p.fitted = true
	return nil
}

// Transform runs a partition through the fitted imputers and encoder and
// returns an all-numeric table ready for the model.
func (p *Preprocessor) Transform(t *dataset.Table) (*dataset.Table, error) {
	if !p.fitted {
		return nil, fmt.Errorf("pipeline: preprocessor not fitted")
	}
	out, err := p.constant.Transform(t)
	if err != nil {
		return nil, fmt.Errorf("pipeline: constant imputation: %w", err)
	}
	out, err = p.mostFrequent.Transform(out)
	if err != nil {
		return nil, fmt.Errorf("pipeline: most-frequent imputation: %w", err)
	}
	out, err = p.encoder.Transform(out)
	if err != nil {
		return nil, fmt.Errorf("pipeline: one-hot encoding: %w", err)
	}
	return out, nil
}
