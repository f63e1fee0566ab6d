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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// meanLearner predicts the training outcome mean.
type meanLearner struct {
	err error
}

func (l *meanLearner) Name() string {
	return "test.mean"
}

func (l *meanLearner) Fit(ctx context.Context, in *Input) (*Output, error) {
	if l.err != nil {
		return nil, l.err
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var sum float64
	for _, v := range in.Y {
		sum += v
	}

	model := &constantModel{family: in.Family, value: sum / float64(len(in.Y))}
	pred, err := model.Predict(ctx, in.Predictors())
	if err != nil {
		return nil, err
	}

	return &Output{Pred: pred, Fit: model}, nil
}

func TestCrossValidate(t *testing.T) {
	rows := make([][]float64, 10)
	y := make([]float64, 10)
	for i := range rows {
		rows[i] = []float64{float64(i)}
		y[i] = float64(i)
	}

	tests := []struct {
		name    string
		learner Learner
		input   *Input
		folds   int
		expect  func(t *testing.T, in *Input, res *CVResult, err error)
	}{
		{
			name:    "predictions come from models which did not see the row",
			learner: &meanLearner{},
			input: &Input{
				Y:      y,
				X:      NewTable(nil, rows),
				Family: FamilyGaussian,
			},
			folds: 5,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(res.Pred, 10)
				assert.Len(res.Folds, 10)

				sizes := make(map[int]int)
				for row, fold := range res.Folds {
					sizes[fold]++

					var sum, n float64
					for other, otherFold := range res.Folds {
						if otherFold != fold {
							sum += in.Y[other]
							n++
						}
					}
					assert.InDelta(sum/n, res.Pred[row], 1e-9)
				}

				assert.Len(sizes, 5)
				for _, size := range sizes {
					assert.Equal(2, size)
				}
				assert.Equal(10, res.Eval.N)
			},
		},
		{
			name:    "rows sharing an id are held out together",
			learner: &meanLearner{},
			input: &Input{
				Y:      []float64{0, 1, 0, 1, 0, 1},
				X:      NewTable(nil, [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}),
				Family: FamilyBinomial,
				ID:     []int{3, 3, 1, 1, 2, 2},
			},
			folds: 3,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(res.Folds[0], res.Folds[1])
				assert.Equal(res.Folds[2], res.Folds[3])
				assert.Equal(res.Folds[4], res.Folds[5])
				assert.ElementsMatch([]int{0, 1, 2}, []int{res.Folds[0], res.Folds[2], res.Folds[4]})
				for _, p := range res.Pred {
					assert.InDelta(0.5, p, 1e-9)
				}
			},
		},
		{
			name:    "binomial outcome coded with two levels other than 0/1",
			learner: &meanLearner{},
			input: &Input{
				Y:      []float64{1, 2, 1, 2, 1, 2},
				X:      NewTable(nil, [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}),
				Family: FamilyBinomial,
				ID:     []int{3, 3, 1, 1, 2, 2},
			},
			folds: 3,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(res.Pred, 6)
				assert.Equal(6, res.Eval.N)
				assert.Equal(FamilyBinomial, res.Eval.Family)
				assert.InDelta(0.5, res.Eval.Accuracy, 1e-9)
			},
		},
		{
			name:    "too many folds for the groups",
			learner: &meanLearner{},
			input: &Input{
				Y:      []float64{0, 1, 0, 1},
				X:      NewTable(nil, [][]float64{{1}, {2}, {3}, {4}}),
				Family: FamilyGaussian,
				ID:     []int{1, 1, 2, 2},
			},
			folds: 3,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "folds must be in [2, 2], got 3")
			},
		},
		{
			name:    "single fold",
			learner: &meanLearner{},
			input: &Input{
				Y:      y,
				X:      NewTable(nil, rows),
				Family: FamilyGaussian,
			},
			folds: 1,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "folds must be in [2, 10], got 1")
			},
		},
		{
			name:    "learner failure",
			learner: &meanLearner{err: errors.New("foo")},
			input: &Input{
				Y:      y,
				X:      NewTable(nil, rows),
				Family: FamilyGaussian,
			},
			folds: 2,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Contains(err.Error(), "foo")
				assert.Nil(res)
			},
		},
		{
			name:    "invalid input",
			learner: &meanLearner{},
			input: &Input{
				Y:      y[:3],
				X:      NewTable(nil, rows),
				Family: FamilyGaussian,
			},
			folds: 2,
			expect: func(t *testing.T, in *Input, res *CVResult, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, ErrRowMismatch)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := CrossValidate(context.Background(), tc.learner, tc.input, tc.folds, 42)
			tc.expect(t, tc.input, res, err)
		})
	}
}

func TestCrossValidate_Seed(t *testing.T) {
	assert := assert.New(t)
	in := &Input{
		Y:      []float64{1, 2, 3, 4, 5, 6, 7, 8},
		X:      NewTable(nil, [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}}),
		Family: FamilyGaussian,
	}

	first, err := CrossValidate(context.Background(), &meanLearner{}, in, 4, 7)
	assert.NoError(err)
	second, err := CrossValidate(context.Background(), &meanLearner{}, in, 4, 7)
	assert.NoError(err)
	assert.Equal(first.Folds, second.Folds)
	assert.Equal(first.Pred, second.Pred)
}
