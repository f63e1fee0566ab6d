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

// Package learner defines the base learner contract used by the stacking
// framework: the inputs handed to every learner, the fitted model handle and
// the shape of predictions.
package learner

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrRowMismatch is returned when per-row inputs disagree on the number of rows.
	ErrRowMismatch = errors.New("row count mismatch")

	// ErrColumnMismatch is returned when covariate tables disagree on the number of columns.
	ErrColumnMismatch = errors.New("column count mismatch")

	// ErrFamilyMismatch is returned when a model is used with a family other than the one it was fitted with.
	ErrFamilyMismatch = errors.New("family mismatch")

	// ErrUnknownFamily is returned for unsupported family names.
	ErrUnknownFamily = errors.New("unknown family")

	// ErrEmptyTable is returned for covariate tables without rows or columns.
	ErrEmptyTable = errors.New("covariate table is empty")

	// ErrDuplicateColumn is returned for covariate tables naming a column twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Learner is the interface implemented by base learners.
type Learner interface {
	// Name returns the registered name of learner.
	Name() string

	// Fit fits the learner and predicts on the new covariates of input.
	Fit(context.Context, *Input) (*Output, error)
}

// Model is the fitted model handle, it is immutable once returned by Fit.
type Model interface {
	// Family returns the family the model was fitted with.
	Family() Family

	// Predict returns one prediction per row of covariates.
	Predict(context.Context, *Table) ([]float64, error)
}

// Input is the standardized set of inputs handed to a base learner.
type Input struct {
	// Y is the outcome vector of length n.
	Y []float64

	// X is the covariate table of n rows.
	X *Table

	// NewX are the covariates to predict on, X is used when it is nil.
	NewX *Table

	// Family selects regression or binary classification.
	Family Family

	// Weights are optional observation weights of length n.
	Weights []float64

	// ID are optional grouping ids of length n.
	ID []int
}

// Output is the standardized result of fitting a base learner.
type Output struct {
	// Pred holds the predictions on new covariates.
	Pred []float64

	// Fit is the fitted model handle.
	Fit Model
}

// Predictors returns the covariates to predict on.
func (in *Input) Predictors() *Table {
	if in.NewX != nil {
		return in.NewX
	}

	return in.X
}

// Validate checks the preconditions of fitting, every failed check is reported.
func (in *Input) Validate() error {
	var result *multierror.Error
	if err := in.Family.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	if err := in.X.Validate(); err != nil {
		result = multierror.Append(result, err)
		return result.ErrorOrNil()
	}

	n := in.X.NRow()
	if len(in.Y) != n {
		result = multierror.Append(result, fmt.Errorf("%w: outcome has %d rows, covariates have %d", ErrRowMismatch, len(in.Y), n))
	}

	if in.Weights != nil && len(in.Weights) != n {
		result = multierror.Append(result, fmt.Errorf("%w: weights have %d rows, covariates have %d", ErrRowMismatch, len(in.Weights), n))
	}

	if in.ID != nil && len(in.ID) != n {
		result = multierror.Append(result, fmt.Errorf("%w: id has %d rows, covariates have %d", ErrRowMismatch, len(in.ID), n))
	}

	if in.NewX != nil {
		if err := in.NewX.Validate(); err != nil {
			result = multierror.Append(result, err)
		} else if in.NewX.NCol() != in.X.NCol() {
			result = multierror.Append(result, fmt.Errorf("%w: new covariates have %d columns, covariates have %d", ErrColumnMismatch, in.NewX.NCol(), in.X.NCol()))
		}
	}

	return result.ErrorOrNil()
}

// Subset returns the input restricted to the given rows, NewX is dropped.
func (in *Input) Subset(rows []int) *Input {
	subset := &Input{
		Y:      make([]float64, len(rows)),
		X:      in.X.Subset(rows),
		Family: in.Family,
	}

	if in.Weights != nil {
		subset.Weights = make([]float64, len(rows))
	}

	if in.ID != nil {
		subset.ID = make([]int, len(rows))
	}

	for i, r := range rows {
		subset.Y[i] = in.Y[r]
		if in.Weights != nil {
			subset.Weights[i] = in.Weights[r]
		}

		if in.ID != nil {
			subset.ID[i] = in.ID[r]
		}
	}

	return subset
}

// Predict predicts with a fitted model, the expected family must equal the
// family the model was fitted with.
func Predict(ctx context.Context, m Model, family Family, x *Table) ([]float64, error) {
	if m.Family() != family {
		return nil, fmt.Errorf("%w: model fitted as %s, predicting as %s", ErrFamilyMismatch, m.Family(), family)
	}

	if err := x.Validate(); err != nil {
		return nil, err
	}

	return m.Predict(ctx, x)
}
