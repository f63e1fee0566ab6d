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

package extratrees

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"d7y.io/stacklearn/learner"
)

func mockRegressionData(n int) ([][]float64, []float64) {
	r := rand.New(rand.NewSource(1))
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = []float64{r.Float64(), r.Float64(), float64(i % 3)}
		y[i] = 2*x[i][0] + x[i][2]
	}

	return x, y
}

func mockClassificationData(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = []float64{float64(i), float64(i % 5)}
		if i >= n/2 {
			y[i] = 1
		}
	}

	return x, y
}

func TestGolearnEngine_Train(t *testing.T) {
	x, y := mockRegressionData(30)
	tests := []struct {
		name   string
		params *Params
		x      [][]float64
		y      []float64
		expect func(t *testing.T, forest Forest, err error)
	}{
		{
			name:   "regression forest",
			params: &Params{NTree: 10, MTry: 2, NumThreads: 4, Seed: 3},
			x:      x,
			y:      y,
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				pred, err := forest.Predict(x)
				assert.NoError(err)
				assert.Len(pred, len(x))
				for _, v := range pred {
					assert.False(math.IsNaN(v) || math.IsInf(v, 0))
				}

				_, err = forest.PredictProb(x)
				assert.EqualError(err, "forest was grown for regression")

				_, err = forest.PredictQuantile(x, 0.5)
				assert.EqualError(err, "forest was grown without quantile")

				_, err = forest.Predict([][]float64{{1}})
				assert.EqualError(err, "row 0 has 1 columns, forest grown on 3")
			},
		},
		{
			name:   "quantile regression forest",
			params: &Params{NTree: 9, MTry: 3, Quantile: true, Seed: 5},
			x:      x,
			y:      y,
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				low, err := forest.PredictQuantile(x, 0)
				assert.NoError(err)
				high, err := forest.PredictQuantile(x, 1)
				assert.NoError(err)
				assert.Len(low, len(x))
				for i := range low {
					assert.LessOrEqual(low[i], high[i])
				}
			},
		},
		{
			name:   "classification forest",
			params: &Params{NTree: 15, MTry: 1, NumClasses: 2, Seed: 9},
			x:      func() [][]float64 { x, _ := mockClassificationData(20); return x }(),
			y:      func() []float64 { _, y := mockClassificationData(20); return y }(),
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				x, _ := mockClassificationData(20)
				prob, err := forest.PredictProb(x)
				assert.NoError(err)
				assert.Len(prob, 20)
				for _, row := range prob {
					assert.Len(row, 2)
					assert.InDelta(1, row[0]+row[1], 1e-9)
					assert.GreaterOrEqual(row[1], float64(0))
					assert.LessOrEqual(row[1], float64(1))
				}

				// Rows i and i+15 share the second column and fall on either side of the first.
				var low, high float64
				for i := 0; i < 5; i++ {
					assert.GreaterOrEqual(prob[i+15][1], prob[i][1])
					low += prob[i][1]
					high += prob[i+15][1]
				}
				assert.Greater(high, low)

				_, err = forest.Predict(x)
				assert.EqualError(err, "forest was grown for classification")
			},
		},
		{
			name:   "empty covariates",
			params: &Params{NTree: 1, MTry: 1},
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "empty covariates")
			},
		},
		{
			name:   "outcome length mismatch",
			params: &Params{NTree: 1, MTry: 1},
			x:      x,
			y:      y[:3],
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "covariates have 30 rows, outcome has 3")
			},
		},
		{
			name:   "no trees",
			params: &Params{NTree: 0, MTry: 1},
			x:      x,
			y:      y,
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "ntree must be positive, got 0")
			},
		},
		{
			name:   "mtry exceeds columns",
			params: &Params{NTree: 1, MTry: 4},
			x:      x,
			y:      y,
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "mtry must be in [1, 3], got 4")
			},
		},
		{
			name:   "subset larger than data",
			params: &Params{NTree: 1, MTry: 1, SubsetSizes: []int{31}},
			x:      x,
			y:      y,
			expect: func(t *testing.T, forest Forest, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "subsetSizes must be in [1, 30], got 31")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			forest, err := NewGolearnEngine().Train(context.Background(), tc.params, tc.x, tc.y)
			tc.expect(t, forest, err)
		})
	}
}

func TestGolearnEngine_Seed(t *testing.T) {
	assert := assert.New(t)
	x, y := mockRegressionData(25)
	params := &Params{NTree: 5, MTry: 2, NumThreads: 2, Seed: 17}

	engine := NewGolearnEngine()
	assert.Equal(GolearnEngineName, engine.Name())

	first, err := engine.Train(context.Background(), params, x, y)
	assert.NoError(err)
	second, err := engine.Train(context.Background(), params, x, y)
	assert.NoError(err)

	firstPred, err := first.Predict(x)
	assert.NoError(err)
	secondPred, err := second.Predict(x)
	assert.NoError(err)
	assert.Equal(firstPred, secondPred)
}

func TestGolearnEngine_Canceled(t *testing.T) {
	assert := assert.New(t)
	x, y := mockRegressionData(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGolearnEngine().Train(ctx, &Params{NTree: 3, MTry: 1, Seed: 1}, x, y)
	assert.ErrorIs(err, context.Canceled)
}

func TestSampleRows(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		params *Params
		expect func(t *testing.T, rows []int, err error)
	}{
		{
			name:   "bootstrap",
			n:      8,
			params: &Params{},
			expect: func(t *testing.T, rows []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 8)
				for _, r := range rows {
					assert.True(r >= 0 && r < 8)
				}
			},
		},
		{
			name: "weighted bootstrap skips rows of zero weight",
			n:    4,
			params: &Params{
				Weights: []float64{0, 1, 0, 3},
			},
			expect: func(t *testing.T, rows []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 4)
				for _, r := range rows {
					assert.Contains([]int{1, 3}, r)
				}
			},
		},
		{
			name: "negative weight",
			n:    2,
			params: &Params{
				Weights: []float64{1, -1},
			},
			expect: func(t *testing.T, rows []int, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "weights must be non-negative, got -1 at row 1")
			},
		},
		{
			name: "zero weights",
			n:    2,
			params: &Params{
				Weights: []float64{0, 0},
			},
			expect: func(t *testing.T, rows []int, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "weights sum to zero")
			},
		},
		{
			name: "subset without replacement",
			n:    10,
			params: &Params{
				SubsetSizes: []int{4},
			},
			expect: func(t *testing.T, rows []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(rows, 4)
				seen := make(map[int]bool)
				for i, r := range rows {
					assert.False(seen[r])
					seen[r] = true
					if i > 0 {
						assert.Less(rows[i-1], r)
					}
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := sampleRows(rand.New(rand.NewSource(1)), tc.n, tc.params)
			tc.expect(t, rows, err)
		})
	}
}

func TestSampleColumns(t *testing.T) {
	assert := assert.New(t)
	cols := sampleColumns(rand.New(rand.NewSource(1)), 10, 4)
	assert.Len(cols, 4)
	for i := 1; i < len(cols); i++ {
		assert.Less(cols[i-1], cols[i])
	}
}

func TestExtraTrees_FitWithGolearn(t *testing.T) {
	assert := assert.New(t)
	x, y := mockClassificationData(24)
	table := learner.NewTable([]string{"a", "b"}, x)

	l := New(NewGolearnEngine(), WithNTree(15), WithSeed(2), WithNumThreads(3))
	out, err := l.Fit(context.Background(), &learner.Input{
		Y:      y,
		X:      table,
		Family: learner.FamilyBinomial,
	})
	assert.NoError(err)
	assert.Len(out.Pred, 24)
	for _, p := range out.Pred {
		assert.GreaterOrEqual(p, float64(0))
		assert.LessOrEqual(p, float64(1))
	}

	pred, err := learner.Predict(context.Background(), out.Fit, learner.FamilyBinomial, learner.NewTable(nil, [][]float64{{0, 0}, {23, 3}}))
	assert.NoError(err)
	assert.Len(pred, 2)

	eval, err := learner.Evaluate(learner.FamilyBinomial, y, out.Pred)
	assert.NoError(err)
	assert.NoError(eval.CheckEval())
}

// mockConstantColumnData returns rows whose first column is constant and
// whose second column is the row index.
func mockConstantColumnData(n int) [][]float64 {
	x := make([][]float64, n)
	for i := range x {
		x[i] = []float64{1, float64(i)}
	}

	return x
}

func TestGolearnEngine_DegenerateSamples(t *testing.T) {
	x := mockConstantColumnData(30)
	tests := []struct {
		name   string
		params *Params
		y      func(i int) float64
		expect func(t *testing.T, forest Forest)
	}{
		{
			name:   "constant outcome",
			params: &Params{NTree: 10, MTry: 2, Quantile: true, Seed: 4},
			y:      func(i int) float64 { return 5 },
			expect: func(t *testing.T, forest Forest) {
				assert := assert.New(t)
				pred, err := forest.Predict(x)
				assert.NoError(err)
				for _, v := range pred {
					assert.InDelta(5, v, 1e-9)
				}

				median, err := forest.PredictQuantile(x, 0.5)
				assert.NoError(err)
				for _, v := range median {
					assert.InDelta(5, v, 1e-9)
				}
			},
		},
		{
			name:   "trees drawing only the constant column",
			params: &Params{NTree: 20, MTry: 1, Seed: 6},
			y:      func(i int) float64 { return 10 + float64(i) },
			expect: func(t *testing.T, forest Forest) {
				assert := assert.New(t)
				pred, err := forest.Predict(x)
				assert.NoError(err)
				for _, v := range pred {
					assert.GreaterOrEqual(v, float64(10))
					assert.LessOrEqual(v, float64(39))
				}
				assert.Greater(pred[29], pred[0])
			},
		},
		{
			name:   "classification trees drawing only the constant column",
			params: &Params{NTree: 20, MTry: 1, NumClasses: 2, Seed: 6},
			y: func(i int) float64 {
				if i >= 15 {
					return 1
				}
				return 0
			},
			expect: func(t *testing.T, forest Forest) {
				assert := assert.New(t)
				prob, err := forest.PredictProb(x)
				assert.NoError(err)
				for high := 25; high < 30; high++ {
					for low := 0; low < 5; low++ {
						assert.Greater(prob[high][1], prob[low][1])
					}
				}
			},
		},
		{
			name:   "constant classification outcome",
			params: &Params{NTree: 5, MTry: 2, NumClasses: 2, Seed: 8},
			y:      func(i int) float64 { return 1 },
			expect: func(t *testing.T, forest Forest) {
				assert := assert.New(t)
				prob, err := forest.PredictProb(x)
				assert.NoError(err)
				for _, row := range prob {
					assert.Equal([]float64{0, 1}, row)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			y := make([]float64, len(x))
			for i := range y {
				y[i] = tc.y(i)
			}

			forest, err := NewGolearnEngine().Train(context.Background(), tc.params, x, y)
			require.NoError(t, err)
			tc.expect(t, forest)
		})
	}
}

func TestGrowTree(t *testing.T) {
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	tests := []struct {
		name       string
		y          []float64
		spec       treeSpec
		numClasses int
		expect     func(t *testing.T, tree *golearnTree, err error)
	}{
		{
			name: "constant outcome grows a leaf",
			y:    []float64{7, 7, 7, 7},
			spec: treeSpec{rows: []int{0, 1, 2, 3}, cols: []int{0, 1}},
			expect: func(t *testing.T, tree *golearnTree, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(tree.leaf)
				assert.Nil(tree.regressor)

				pred, err := tree.predict(x, []int{0, 3})
				assert.NoError(err)
				assert.Equal([]float64{7, 7}, pred)
			},
		},
		{
			name: "constant columns grow a leaf of the sample mean",
			y:    []float64{1, 2, 3, 4},
			spec: treeSpec{rows: []int{0, 3, 3}, cols: []int{0}},
			expect: func(t *testing.T, tree *golearnTree, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(tree.leaf)
				assert.InDelta(3, tree.value, 1e-9)
			},
		},
		{
			name: "constant columns are not split on",
			y:    []float64{1, 2, 3, 4},
			spec: treeSpec{rows: []int{0, 1, 2, 3}, cols: []int{0, 1}},
			expect: func(t *testing.T, tree *golearnTree, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(tree.leaf)
				assert.Equal([]int{1}, tree.cols)
				assert.NotNil(tree.regressor)
			},
		},
		{
			name:       "constant columns grow a leaf of the majority level",
			y:          []float64{1, 0, 1, 1},
			spec:       treeSpec{rows: []int{0, 1, 2, 3}, cols: []int{0}},
			numClasses: 2,
			expect: func(t *testing.T, tree *golearnTree, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(tree.leaf)
				assert.Equal(float64(1), tree.value)
			},
		},
		{
			name:       "tied levels go to the lowest level",
			y:          []float64{1, 0, 1, 0},
			spec:       treeSpec{rows: []int{0, 1, 2, 3}, cols: []int{0}},
			numClasses: 2,
			expect: func(t *testing.T, tree *golearnTree, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(float64(0), tree.value)
			},
		},
		{
			name: "empty sample",
			y:    []float64{1, 2, 3, 4},
			spec: treeSpec{cols: []int{0}},
			expect: func(t *testing.T, tree *golearnTree, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "tree sample has no rows")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := growTree(x, tc.y, tc.spec, tc.numClasses)
			tc.expect(t, tree, err)
		})
	}
}

func TestExtraTrees_CrossValidateWithGolearn(t *testing.T) {
	assert := assert.New(t)
	rows := make([][]float64, 30)
	y := make([]float64, 30)
	for i := range rows {
		rows[i] = []float64{float64(i)}
		y[i] = 1
		if i >= 15 {
			y[i] = 2
		}
	}

	l := New(NewGolearnEngine(), WithNTree(15), WithSeed(5))
	res, err := learner.CrossValidate(context.Background(), l, &learner.Input{
		Y:      y,
		X:      learner.NewTable([]string{"a"}, rows),
		Family: learner.FamilyBinomial,
	}, 3, 11)
	require.NoError(t, err)
	assert.Len(res.Pred, 30)
	assert.Equal(30, res.Eval.N)
	assert.Equal(learner.FamilyBinomial, res.Eval.Family)

	for _, p := range res.Pred {
		assert.GreaterOrEqual(p, float64(0))
		assert.LessOrEqual(p, float64(1))
	}

	var low, high float64
	for i := 0; i < 10; i++ {
		low += res.Pred[i]
		high += res.Pred[i+20]
	}
	assert.Greater(high, low)
}
