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
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"
	"golang.org/x/sync/errgroup"

	logger "d7y.io/stacklearn/internal/dflog"
)

const (
	// GolearnEngineName is the name of the golearn engine.
	GolearnEngineName = "golearn"

	// regressionCriterion is the split criterion of golearn regression trees.
	regressionCriterion = "mse"

	// classificationCriterion is the split criterion of golearn classification trees.
	classificationCriterion = "gini"

	// maxTreeDepth is the depth golearn trees are grown to at most.
	maxTreeDepth = 32

	// labelAttributeName is the name of the class attribute.
	labelAttributeName = "label"
)

// golearnEngine grows bagged random subspace CART forests with golearn.
type golearnEngine struct{}

// NewGolearnEngine returns the engine backed by github.com/sjwhitworth/golearn.
func NewGolearnEngine() Engine {
	return &golearnEngine{}
}

// Name returns the name of the library.
func (g *golearnEngine) Name() string {
	return GolearnEngineName
}

// treeSpec is the sample a tree is grown on.
type treeSpec struct {
	rows []int
	cols []int
}

// Train grows params.NTree golearn CART trees, each on its own row sample and
// random subspace of params.MTry columns.
func (g *golearnEngine) Train(ctx context.Context, params *Params, x [][]float64, y []float64) (Forest, error) {
	n := len(x)
	if n == 0 {
		return nil, errors.New("empty covariates")
	}

	if len(y) != n {
		return nil, fmt.Errorf("covariates have %d rows, outcome has %d", n, len(y))
	}

	p := len(x[0])
	if params.NTree <= 0 {
		return nil, fmt.Errorf("ntree must be positive, got %d", params.NTree)
	}

	if params.MTry < 1 || params.MTry > p {
		return nil, fmt.Errorf("mtry must be in [1, %d], got %d", p, params.MTry)
	}

	g.logIgnored(params)

	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	specs := make([]treeSpec, params.NTree)
	for i := range specs {
		r := rand.New(rand.NewSource(seed + int64(i)))
		rows, err := sampleRows(r, n, params)
		if err != nil {
			return nil, err
		}

		specs[i] = treeSpec{
			rows: rows,
			cols: sampleColumns(r, p, params.MTry),
		}
	}

	f := &golearnForest{
		numClasses: params.NumClasses,
		numColumns: p,
		quantile:   params.Quantile,
		trees:      make([]*golearnTree, params.NTree),
	}

	numThreads := params.NumThreads
	if numThreads < 1 {
		numThreads = 1
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(numThreads)
	for i := range specs {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tree, err := growTree(x, y, specs[i], params.NumClasses)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}

			f.trees[i] = tree
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return f, nil
}

// logIgnored reports parameters without a golearn counterpart.
func (g *golearnEngine) logIgnored(params *Params) {
	if !logger.IsDebug() {
		return
	}

	logger.With("engine", GolearnEngineName).Debugf(
		"ignored parameters nodesize=%d numRandomCuts=%d evenCuts=%t subsetGroups=%d tasks=%d probOfTaskCuts=%v numRandomTaskCuts=%d",
		params.NodeSize, params.NumRandomCuts, params.EvenCuts, len(params.SubsetGroups), len(params.Tasks), params.ProbOfTaskCuts, params.NumRandomTaskCuts)
}

// sampleRows draws the rows of a tree: a subset without replacement of
// subsetSizes[0] rows when given, otherwise a bootstrap of n rows weighted by
// params.Weights.
func sampleRows(r *rand.Rand, n int, params *Params) ([]int, error) {
	if len(params.SubsetSizes) > 0 {
		size := params.SubsetSizes[0]
		if size < 1 || size > n {
			return nil, fmt.Errorf("subsetSizes must be in [1, %d], got %d", n, size)
		}

		rows := r.Perm(n)[:size]
		sort.Ints(rows)
		return rows, nil
	}

	rows := make([]int, n)
	if params.Weights == nil {
		for i := range rows {
			rows[i] = r.Intn(n)
		}

		return rows, nil
	}

	cumulative := make([]float64, n)
	total := 0.0
	for i, w := range params.Weights {
		if w < 0 {
			return nil, fmt.Errorf("weights must be non-negative, got %v at row %d", w, i)
		}

		total += w
		cumulative[i] = total
	}

	if total <= 0 {
		return nil, errors.New("weights sum to zero")
	}

	for i := range rows {
		u := r.Float64() * total
		rows[i] = sort.Search(n, func(j int) bool {
			return cumulative[j] > u
		})
	}

	return rows, nil
}

// sampleColumns draws mtry of p columns without replacement.
func sampleColumns(r *rand.Rand, p, mtry int) []int {
	cols := r.Perm(p)[:mtry]
	sort.Ints(cols)
	return cols
}

// newInstances converts the given rows and columns of x to golearn instances,
// the outcome is the class attribute and is left zero when y is nil.
func newInstances(x [][]float64, y []float64, rows, cols []int) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	attrs := make([]base.Attribute, len(cols))
	for j, c := range cols {
		attrs[j] = base.NewFloatAttribute("x" + strconv.Itoa(c))
		inst.AddAttribute(attrs[j])
	}

	label := base.NewFloatAttribute(labelAttributeName)
	inst.AddAttribute(label)
	if err := inst.AddClassAttribute(label); err != nil {
		return nil, err
	}

	if err := inst.Extend(len(rows)); err != nil {
		return nil, err
	}

	specs := make([]base.AttributeSpec, len(attrs))
	for j, attr := range attrs {
		spec, err := inst.GetAttribute(attr)
		if err != nil {
			return nil, err
		}

		specs[j] = spec
	}

	labelSpec, err := inst.GetAttribute(label)
	if err != nil {
		return nil, err
	}

	for i, r := range rows {
		for j, c := range cols {
			inst.Set(specs[j], i, base.PackFloatToBytes(x[r][c]))
		}

		var v float64
		if y != nil {
			v = y[r]
		}
		inst.Set(labelSpec, i, base.PackFloatToBytes(v))
	}

	return inst, nil
}

// golearnTree is a CART tree grown on a column subspace, or a single leaf
// when the sample leaves nothing to split on.
type golearnTree struct {
	cols       []int
	regressor  *trees.CARTDecisionTreeRegressor
	classifier *trees.CARTDecisionTreeClassifier

	// leaf is set when the tree is a single leaf predicting value, a level
	// code for classification.
	leaf  bool
	value float64
}

// growTree fits golearn on the sampled columns which vary over the sampled rows.
// golearn leaves the root unsplit with a zero prediction when the outcome or
// every column is constant, those samples grow a leaf instead.
func growTree(x [][]float64, y []float64, spec treeSpec, numClasses int) (*golearnTree, error) {
	if len(spec.rows) == 0 {
		return nil, errors.New("tree sample has no rows")
	}

	t := &golearnTree{cols: varyingColumns(x, spec.rows, spec.cols)}
	if len(t.cols) == 0 || isConstant(y, spec.rows) {
		t.cols = nil
		t.leaf = true
		if numClasses > 0 {
			t.value = majorityLevel(y, spec.rows, numClasses)
		} else {
			t.value = sampleMean(y, spec.rows)
		}

		return t, nil
	}

	inst, err := newInstances(x, y, spec.rows, t.cols)
	if err != nil {
		return nil, err
	}

	if numClasses > 0 {
		labels := make([]int64, numClasses)
		for i := range labels {
			labels[i] = int64(i)
		}

		t.classifier = trees.NewDecisionTreeClassifier(classificationCriterion, maxTreeDepth, labels)
		if err := t.classifier.Fit(inst); err != nil {
			return nil, err
		}

		return t, nil
	}

	t.regressor = trees.NewDecisionTreeRegressor(regressionCriterion, maxTreeDepth)
	if err := t.regressor.Fit(inst); err != nil {
		return nil, err
	}

	return t, nil
}

// predict returns the tree predictions of rows of x, level codes for classification.
func (t *golearnTree) predict(x [][]float64, rows []int) ([]float64, error) {
	if t.leaf {
		out := make([]float64, len(rows))
		for i := range out {
			out[i] = t.value
		}

		return out, nil
	}

	inst, err := newInstances(x, nil, rows, t.cols)
	if err != nil {
		return nil, err
	}

	if t.classifier != nil {
		votes := t.classifier.Predict(inst)
		out := make([]float64, len(votes))
		for i, level := range votes {
			out[i] = float64(level)
		}

		return out, nil
	}

	return t.regressor.Predict(inst), nil
}

// varyingColumns returns the columns of cols taking more than one value over rows.
func varyingColumns(x [][]float64, rows, cols []int) []int {
	var varying []int
	for _, c := range cols {
		first := x[rows[0]][c]
		for _, r := range rows[1:] {
			if x[r][c] != first {
				varying = append(varying, c)
				break
			}
		}
	}

	return varying
}

func isConstant(y []float64, rows []int) bool {
	for _, r := range rows[1:] {
		if y[r] != y[rows[0]] {
			return false
		}
	}

	return true
}

// sampleMean returns the mean outcome of rows, repeated rows counted each time.
func sampleMean(y []float64, rows []int) float64 {
	var sum float64
	for _, r := range rows {
		sum += y[r]
	}

	return sum / float64(len(rows))
}

// majorityLevel returns the most frequent level code of rows, ties going to the lowest code.
func majorityLevel(y []float64, rows []int, numClasses int) float64 {
	counts := make([]int, numClasses)
	for _, r := range rows {
		if level := int(y[r]); level >= 0 && level < numClasses {
			counts[level]++
		}
	}

	best := 0
	for level, count := range counts {
		if count > counts[best] {
			best = level
		}
	}

	return float64(best)
}

// golearnForest implements Forest.
type golearnForest struct {
	numClasses int
	numColumns int
	quantile   bool
	trees      []*golearnTree
}

// rows returns indices of all rows of x.
func (f *golearnForest) rows(x [][]float64) ([]int, error) {
	for i, row := range x {
		if len(row) != f.numColumns {
			return nil, fmt.Errorf("row %d has %d columns, forest grown on %d", i, len(row), f.numColumns)
		}
	}

	rows := make([]int, len(x))
	for i := range rows {
		rows[i] = i
	}

	return rows, nil
}

// treePredictions returns predictions of every regression tree, indexed by tree then row.
func (f *golearnForest) treePredictions(x [][]float64) ([][]float64, error) {
	if f.numClasses > 0 {
		return nil, errors.New("forest was grown for classification")
	}

	rows, err := f.rows(x)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(f.trees))
	for i, t := range f.trees {
		out[i], err = t.predict(x, rows)
		if err != nil {
			return nil, err
		}

		if len(out[i]) != len(x) {
			return nil, fmt.Errorf("tree %d returned %d predictions for %d rows", i, len(out[i]), len(x))
		}
	}

	return out, nil
}

// Predict returns the mean of tree predictions.
func (f *golearnForest) Predict(x [][]float64) ([]float64, error) {
	out, err := f.treePredictions(x)
	if err != nil {
		return nil, err
	}

	pred := make([]float64, len(x))
	for _, treePred := range out {
		for j, v := range treePred {
			pred[j] += v
		}
	}

	for j := range pred {
		pred[j] /= float64(len(out))
	}

	return pred, nil
}

// PredictProb returns the fraction of trees voting for each level.
func (f *golearnForest) PredictProb(x [][]float64) ([][]float64, error) {
	if f.numClasses == 0 {
		return nil, errors.New("forest was grown for regression")
	}

	rows, err := f.rows(x)
	if err != nil {
		return nil, err
	}

	prob := make([][]float64, len(x))
	for j := range prob {
		prob[j] = make([]float64, f.numClasses)
	}

	share := 1 / float64(len(f.trees))
	for i, t := range f.trees {
		votes, err := t.predict(x, rows)
		if err != nil {
			return nil, err
		}

		if len(votes) != len(x) {
			return nil, fmt.Errorf("tree %d returned %d votes for %d rows", i, len(votes), len(x))
		}

		for j, v := range votes {
			level := int(v)
			if level < 0 || level >= f.numClasses {
				return nil, fmt.Errorf("tree %d voted unknown level %d", i, level)
			}

			prob[j][level] += share
		}
	}

	return prob, nil
}

// PredictQuantile returns the q-quantile of tree predictions.
func (f *golearnForest) PredictQuantile(x [][]float64, q float64) ([]float64, error) {
	if !f.quantile {
		return nil, errors.New("forest was grown without quantile")
	}

	out, err := f.treePredictions(x)
	if err != nil {
		return nil, err
	}

	pred := make([]float64, len(x))
	for j := range pred {
		data := make(stats.Float64Data, len(out))
		for i, treePred := range out {
			data[i] = treePred[j]
		}

		v, err := stats.PercentileNearestRank(data, q*100)
		if err != nil {
			return nil, err
		}
		pred[j] = v
	}

	return pred, nil
}
