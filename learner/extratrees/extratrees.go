/*
 *     Copyright 2024 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package extratrees adapts an extremely randomized trees library to the base
// learner contract of package learner.
package extratrees

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "d7y.io/stacklearn/internal/dflog"
	"d7y.io/stacklearn/learner"
	"d7y.io/stacklearn/metrics"
	"d7y.io/stacklearn/pkg/slices"
)

// Name is the registered name of the learner.
const Name = "SL.extraTrees"

// positiveLevel is the index of the level whose probability is predicted.
const positiveLevel = 1

var (
	// ErrTooFewLevels is returned when a classification outcome has fewer than two levels.
	ErrTooFewLevels = errors.New("classification outcome needs at least two levels")

	// ErrOutputShape is returned when the forest output does not fit the family of model.
	ErrOutputShape = errors.New("unexpected forest output shape")

	// ErrQuantileUnavailable is returned when quantiles are requested from a model fitted without them.
	ErrQuantileUnavailable = errors.New("quantile predictions unavailable")
)

func init() {
	learner.Register(Name, func(raw map[string]any) (learner.Learner, error) {
		options, err := DecodeOptions(raw)
		if err != nil {
			return nil, err
		}

		return NewWithOptions(NewGolearnEngine(), options), nil
	})
}

// ExtraTrees is the base learner delegating to an Engine.
type ExtraTrees struct {
	engine  Engine
	options Options
}

// New returns a learner with default options changed by opts.
func New(engine Engine, opts ...Option) *ExtraTrees {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return NewWithOptions(engine, options)
}

// NewWithOptions returns a learner with the given options.
func NewWithOptions(engine Engine, options Options) *ExtraTrees {
	return &ExtraTrees{
		engine:  engine,
		options: options,
	}
}

// Name returns the registered name of the learner.
func (e *ExtraTrees) Name() string {
	return Name
}

// Options returns the options of the learner.
func (e *ExtraTrees) Options() Options {
	return e.options
}

// Fit grows a forest on input and predicts on its new covariates.
func (e *ExtraTrees) Fit(ctx context.Context, in *learner.Input) (*learner.Output, error) {
	start := time.Now()
	family := in.Family.String()
	log := logger.WithLearner(Name, family)
	metrics.FitCount.WithLabelValues(Name, family).Inc()

	model, err := e.fit(ctx, in)
	if err != nil {
		log.Errorf("fit failed: %s", err.Error())
		metrics.FitFailureCount.WithLabelValues(Name, family).Inc()
		return nil, err
	}

	pred, err := model.predict(in.Predictors())
	if err != nil {
		log.Errorf("predict after fit failed: %s", err.Error())
		metrics.FitFailureCount.WithLabelValues(Name, family).Inc()
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.FitDuration.WithLabelValues(Name, family).Observe(elapsed.Seconds())
	log.Infof("fitted %d rows x %d columns in %s", in.X.NRow(), in.X.NCol(), elapsed)

	return &learner.Output{
		Pred: pred,
		Fit:  model,
	}, nil
}

func (e *ExtraTrees) fit(ctx context.Context, in *learner.Input) (*Model, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	params := e.options.params(in.Family, in.X.NCol())
	params.Weights = in.Weights

	y := in.Y
	var levels []float64
	if in.Family.IsClassification() {
		var err error
		if levels, y, err = encodeLevels(in.Y); err != nil {
			return nil, err
		}

		params.NumClasses = len(levels)
	}

	logger.WithLearner(Name, in.Family.String()).Debugf("train %s with %+v", e.engine.Name(), *params)
	forest, err := e.engine.Train(ctx, params, in.X.Rows, y)
	if err != nil {
		return nil, fmt.Errorf("%s train: %w", e.engine.Name(), err)
	}

	return &Model{
		forest:     forest,
		family:     in.Family,
		numColumns: in.X.NCol(),
		levels:     levels,
		quantile:   params.Quantile,
	}, nil
}

// encodeLevels returns the sorted distinct values of y and y coded by them.
func encodeLevels(y []float64) ([]float64, []float64, error) {
	levels, codes := slices.Encode(y)
	if len(levels) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrTooFewLevels, len(levels))
	}

	coded := make([]float64, len(codes))
	for i, c := range codes {
		coded[i] = float64(c)
	}

	return levels, coded, nil
}

// Model is the fitted handle of ExtraTrees.
type Model struct {
	forest     Forest
	family     learner.Family
	numColumns int
	levels     []float64
	quantile   bool
}

// Family returns the family the model was fitted with.
func (m *Model) Family() learner.Family {
	return m.family
}

// Levels returns the outcome levels of a classification model.
func (m *Model) Levels() []float64 {
	return m.levels
}

// NumColumns returns the number of training covariates.
func (m *Model) NumColumns() int {
	return m.numColumns
}

// Predict returns predicted means for regression and positive level
// probabilities for classification.
func (m *Model) Predict(ctx context.Context, x *learner.Table) ([]float64, error) {
	family := m.family.String()
	metrics.PredictCount.WithLabelValues(Name, family).Inc()

	pred, err := m.predict(x)
	if err != nil {
		metrics.PredictFailureCount.WithLabelValues(Name, family).Inc()
		return nil, err
	}

	return pred, nil
}

func (m *Model) predict(x *learner.Table) ([]float64, error) {
	if err := m.check(x); err != nil {
		return nil, err
	}

	n := x.NRow()
	switch m.family {
	case learner.FamilyGaussian:
		pred, err := m.forest.Predict(x.Rows)
		if err != nil {
			return nil, err
		}

		if len(pred) != n {
			return nil, fmt.Errorf("%w: %d predictions for %d rows", ErrOutputShape, len(pred), n)
		}

		return pred, nil
	case learner.FamilyBinomial:
		prob, err := m.forest.PredictProb(x.Rows)
		if err != nil {
			return nil, err
		}

		if len(prob) != n {
			return nil, fmt.Errorf("%w: %d probability rows for %d rows", ErrOutputShape, len(prob), n)
		}

		pred := make([]float64, n)
		for i, row := range prob {
			if len(row) <= positiveLevel {
				return nil, fmt.Errorf("%w: row %d has %d probability columns", ErrOutputShape, i, len(row))
			}

			pred[i] = row[positiveLevel]
		}

		return pred, nil
	default:
		return nil, m.family.Validate()
	}
}

// PredictQuantile returns q-quantile predictions of a regression model fitted with quantiles.
func (m *Model) PredictQuantile(ctx context.Context, x *learner.Table, q float64) ([]float64, error) {
	if m.family != learner.FamilyGaussian || !m.quantile {
		return nil, fmt.Errorf("%w: family %s, quantile %t", ErrQuantileUnavailable, m.family, m.quantile)
	}

	if q < 0 || q > 1 {
		return nil, fmt.Errorf("quantile must be in [0, 1], got %v", q)
	}

	if err := m.check(x); err != nil {
		return nil, err
	}

	pred, err := m.forest.PredictQuantile(x.Rows, q)
	if err != nil {
		return nil, err
	}

	if len(pred) != x.NRow() {
		return nil, fmt.Errorf("%w: %d predictions for %d rows", ErrOutputShape, len(pred), x.NRow())
	}

	return pred, nil
}

func (m *Model) check(x *learner.Table) error {
	if err := x.Validate(); err != nil {
		return err
	}

	if x.NCol() != m.numColumns {
		return fmt.Errorf("%w: got %d columns, model fitted on %d", learner.ErrColumnMismatch, x.NCol(), m.numColumns)
	}

	return nil
}
