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
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"d7y.io/stacklearn/pkg/slices"
)

// CVResult holds cross-validated predictions of a learner.
type CVResult struct {
	// Pred holds for each row the prediction of the model which did not see it.
	Pred []float64

	// Folds holds the fold of each row.
	Folds []int

	// Eval evaluates cross-validated predictions.
	Eval *Eval
}

// CrossValidate fits the learner once per fold and predicts on the held out
// rows. Rows sharing a grouping id are always held out together.
func CrossValidate(ctx context.Context, l Learner, in *Input, folds int, seed int64) (*CVResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	assignment, err := assignFolds(in, folds, seed)
	if err != nil {
		return nil, err
	}

	valid := make([][]int, folds)
	train := make([][]int, folds)
	for row, fold := range assignment {
		for k := 0; k < folds; k++ {
			if k == fold {
				valid[k] = append(valid[k], row)
			} else {
				train[k] = append(train[k], row)
			}
		}
	}

	pred := make([]float64, len(in.Y))
	eg, ctx := errgroup.WithContext(ctx)
	for k := 0; k < folds; k++ {
		k := k
		eg.Go(func() error {
			sub := in.Subset(train[k])
			sub.NewX = in.X.Subset(valid[k])

			out, err := l.Fit(ctx, sub)
			if err != nil {
				return fmt.Errorf("fold %d: %w", k, err)
			}

			if len(out.Pred) != len(valid[k]) {
				return fmt.Errorf("fold %d: %w: %d predictions for %d rows", k, ErrRowMismatch, len(out.Pred), len(valid[k]))
			}

			// Folds are disjoint, each goroutine writes its own rows.
			for i, row := range valid[k] {
				pred[row] = out.Pred[i]
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	eval, err := Evaluate(in.Family, in.Y, pred)
	if err != nil {
		return nil, err
	}

	return &CVResult{
		Pred:  pred,
		Folds: assignment,
		Eval:  eval,
	}, nil
}

// assignFolds permutes sampling units, rows or groups, and deals them to folds in turn.
func assignFolds(in *Input, folds int, seed int64) ([]int, error) {
	n := len(in.Y)
	units := make([]int, n)
	numUnits := n
	if in.ID != nil {
		var ids []int
		ids, units = slices.Encode(in.ID)
		numUnits = len(ids)
	} else {
		for row := range units {
			units[row] = row
		}
	}

	if folds < 2 || folds > numUnits {
		return nil, fmt.Errorf("folds must be in [2, %d], got %d", numUnits, folds)
	}

	unitFold := make([]int, numUnits)
	for i, u := range rand.New(rand.NewSource(seed)).Perm(numUnits) {
		unitFold[u] = i % folds
	}

	assignment := make([]int, n)
	for row, u := range units {
		assignment[row] = unitFold[u]
	}

	return assignment, nil
}
