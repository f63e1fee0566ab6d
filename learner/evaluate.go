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

package learner

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"d7y.io/stacklearn/pkg/slices"
)

// logLossEpsilon clips probabilities away from 0 and 1.
const logLossEpsilon = 1e-15

type Eval struct {
	// Family of evaluated predictions.
	Family Family `json:"family"`

	// N number of evaluated rows.
	N int `json:"n"`

	// MAE mean absolute error.
	MAE float64 `json:"mae"`

	// MSE mean square error.
	MSE float64 `json:"mse"`

	// RMSE root mean square error.
	RMSE float64 `json:"rmse"`

	// R2 coefficient of determination, gaussian only.
	R2 float64 `json:"r2,omitempty"`

	// LogLoss negative mean binomial log likelihood, binomial only.
	LogLoss float64 `json:"logLoss,omitempty"`

	// Accuracy at threshold 0.5, binomial only.
	Accuracy float64 `json:"accuracy,omitempty"`
}

// Evaluate computes diagnostics of predictions. Binomial outcomes are coded 0/1
// or hold two levels, the second sorted level being the positive class.
func Evaluate(family Family, y, pred []float64) (*Eval, error) {
	if err := family.Validate(); err != nil {
		return nil, err
	}

	if len(y) != len(pred) {
		return nil, fmt.Errorf("%w: outcome has %d rows, predictions have %d", ErrRowMismatch, len(y), len(pred))
	}

	if len(y) == 0 {
		return nil, errors.New("nothing to evaluate")
	}

	if family == FamilyBinomial {
		indicator, err := positiveIndicator(y)
		if err != nil {
			return nil, err
		}
		y = indicator
	}

	absErr := make(stats.Float64Data, len(y))
	sqErr := make(stats.Float64Data, len(y))
	for i := range y {
		absErr[i] = math.Abs(y[i] - pred[i])
		sqErr[i] = math.Pow(y[i]-pred[i], 2)
	}

	e := &Eval{Family: family, N: len(y)}
	e.MAE, _ = stats.Mean(absErr)
	e.MSE, _ = stats.Mean(sqErr)
	e.RMSE = math.Sqrt(e.MSE)

	switch family {
	case FamilyGaussian:
		tss, err := stats.PopulationVariance(y)
		if err != nil {
			return nil, err
		}

		// Constant outcome has no variance to explain.
		if tss == 0 {
			e.R2 = 0
		} else {
			e.R2 = 1 - e.MSE/tss
		}
	case FamilyBinomial:
		loss := make(stats.Float64Data, len(y))
		correct := make(stats.Float64Data, len(y))
		for i := range y {
			p := math.Min(math.Max(pred[i], logLossEpsilon), 1-logLossEpsilon)
			loss[i] = -(y[i]*math.Log(p) + (1-y[i])*math.Log(1-p))
			if (pred[i] >= 0.5) == (y[i] == 1) {
				correct[i] = 1
			}
		}

		e.LogLoss, _ = stats.Mean(loss)
		e.Accuracy, _ = stats.Mean(correct)
	}

	if err := e.CheckEval(); err != nil {
		return nil, err
	}

	return e, nil
}

// positiveIndicator codes a binomial outcome 1 for the positive level and 0 otherwise.
func positiveIndicator(y []float64) ([]float64, error) {
	levels := slices.Levels(y)
	coded := true
	for _, v := range levels {
		if v != 0 && v != 1 {
			coded = false
			break
		}
	}

	if coded {
		return y, nil
	}

	if len(levels) != 2 {
		return nil, fmt.Errorf("binomial outcome must be coded 0/1 or hold two levels, got %d levels", len(levels))
	}

	indicator := make([]float64, len(y))
	for i, v := range y {
		if v == levels[1] {
			indicator[i] = 1
		}
	}

	return indicator, nil
}

// Risk returns the loss minimized by the stacking framework for the family.
func (e *Eval) Risk() float64 {
	if e.Family == FamilyBinomial {
		return e.LogLoss
	}

	return e.MSE
}

func (e *Eval) CheckEval() error {
	if math.IsNaN(e.MAE) || math.IsNaN(e.MSE) || math.IsNaN(e.RMSE) || math.IsNaN(e.R2) || math.IsNaN(e.LogLoss) {
		return errors.New("model NAN")
	}

	return nil
}
