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
	"math"

	"github.com/mitchellh/mapstructure"

	"d7y.io/stacklearn/learner"
)

const (
	// DefaultNTree is default number of trees.
	DefaultNTree = 500

	// DefaultNumRandomCuts is default number of random cuts per candidate feature.
	DefaultNumRandomCuts = 1

	// DefaultNumThreads is default number of threads growing trees.
	DefaultNumThreads = 1

	// DefaultNumRandomTaskCuts is default number of random cuts of the task feature.
	DefaultNumRandomTaskCuts = 1

	// DefaultRegressionNodeSize is default leaf size of regression trees.
	DefaultRegressionNodeSize = 5

	// DefaultClassificationNodeSize is default leaf size of classification trees.
	DefaultClassificationNodeSize = 1
)

// Options are the hyperparameters accepted by the base learner. Zero values
// of family dependent fields are resolved at fit time.
type Options struct {
	// NTree is the number of trees.
	NTree int `yaml:"ntree" mapstructure:"ntree"`

	// MTry is the number of candidate features, 0 means max(floor(p/3), 1)
	// for regression and floor(sqrt(p)) for classification. The golearn
	// engine draws the mtry features once per tree, not per split.
	MTry int `yaml:"mtry" mapstructure:"mtry"`

	// NodeSize is the minimum leaf size, 0 means 5 for regression and 1 for
	// classification. The golearn engine ignores it.
	NodeSize int `yaml:"nodesize" mapstructure:"nodesize"`

	// NumRandomCuts is the number of random cuts per candidate feature.
	NumRandomCuts int `yaml:"numRandomCuts" mapstructure:"numRandomCuts"`

	// EvenCuts samples cuts evenly instead of uniformly.
	EvenCuts bool `yaml:"evenCuts" mapstructure:"evenCuts"`

	// NumThreads is the number of threads growing trees.
	NumThreads int `yaml:"numThreads" mapstructure:"numThreads"`

	// Quantile keeps what is needed for quantile regression.
	Quantile bool `yaml:"quantile" mapstructure:"quantile"`

	// SubsetSizes are the sizes of the row subsets each tree is grown on.
	SubsetSizes []int `yaml:"subsetSizes" mapstructure:"subsetSizes"`

	// SubsetGroups are the row groups subsets are drawn from.
	SubsetGroups [][]int `yaml:"subsetGroups" mapstructure:"subsetGroups"`

	// Tasks are the task ids of multi-task learning, accepted and inert.
	Tasks []int `yaml:"tasks" mapstructure:"tasks"`

	// ProbOfTaskCuts is the probability of cutting on the task feature, 0 means mtry/p.
	ProbOfTaskCuts float64 `yaml:"probOfTaskCuts" mapstructure:"probOfTaskCuts"`

	// NumRandomTaskCuts is the number of random cuts of the task feature.
	NumRandomTaskCuts int `yaml:"numRandomTaskCuts" mapstructure:"numRandomTaskCuts"`

	// Seed seeds the random source of the engine, 0 lets the engine choose.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

// Option is a functional option of the learner.
type Option func(*Options)

// DefaultOptions returns options holding the family independent defaults.
func DefaultOptions() Options {
	return Options{
		NTree:             DefaultNTree,
		NumRandomCuts:     DefaultNumRandomCuts,
		NumThreads:        DefaultNumThreads,
		NumRandomTaskCuts: DefaultNumRandomTaskCuts,
	}
}

// DecodeOptions decodes loosely typed options, unknown keys are rejected.
func DecodeOptions(raw map[string]any) (Options, error) {
	options := DefaultOptions()
	if len(raw) == 0 {
		return options, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &options,
	})
	if err != nil {
		return Options{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return Options{}, err
	}

	return options, nil
}

// WithNTree sets the number of trees.
func WithNTree(ntree int) Option {
	return func(o *Options) {
		o.NTree = ntree
	}
}

// WithMTry sets the number of candidate features.
func WithMTry(mtry int) Option {
	return func(o *Options) {
		o.MTry = mtry
	}
}

// WithNodeSize sets the minimum leaf size.
func WithNodeSize(nodeSize int) Option {
	return func(o *Options) {
		o.NodeSize = nodeSize
	}
}

// WithNumRandomCuts sets the number of random cuts per candidate feature.
func WithNumRandomCuts(numRandomCuts int) Option {
	return func(o *Options) {
		o.NumRandomCuts = numRandomCuts
	}
}

// WithEvenCuts samples cuts evenly.
func WithEvenCuts(evenCuts bool) Option {
	return func(o *Options) {
		o.EvenCuts = evenCuts
	}
}

// WithNumThreads sets the number of threads growing trees.
func WithNumThreads(numThreads int) Option {
	return func(o *Options) {
		o.NumThreads = numThreads
	}
}

// WithQuantile enables quantile regression.
func WithQuantile(quantile bool) Option {
	return func(o *Options) {
		o.Quantile = quantile
	}
}

// WithSubsetSizes sets the row subset sizes.
func WithSubsetSizes(subsetSizes []int) Option {
	return func(o *Options) {
		o.SubsetSizes = subsetSizes
	}
}

// WithSubsetGroups sets the row groups of subsets.
func WithSubsetGroups(subsetGroups [][]int) Option {
	return func(o *Options) {
		o.SubsetGroups = subsetGroups
	}
}

// WithTasks sets the task ids of multi-task learning.
func WithTasks(tasks []int, probOfTaskCuts float64, numRandomTaskCuts int) Option {
	return func(o *Options) {
		o.Tasks = tasks
		o.ProbOfTaskCuts = probOfTaskCuts
		o.NumRandomTaskCuts = numRandomTaskCuts
	}
}

// WithSeed seeds the engine.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// defaultMTry returns candidate features per split of family with p features.
func defaultMTry(family learner.Family, p int) int {
	if family.IsClassification() {
		return int(math.Floor(math.Sqrt(float64(p))))
	}

	return int(math.Max(math.Floor(float64(p)/3), 1))
}

// defaultNodeSize returns minimum leaf size of family.
func defaultNodeSize(family learner.Family) int {
	if family.IsClassification() {
		return DefaultClassificationNodeSize
	}

	return DefaultRegressionNodeSize
}

// params translates options into the engine parameters of a fit of family on p features.
func (o Options) params(family learner.Family, p int) *Params {
	params := &Params{
		NTree:             o.NTree,
		MTry:              o.MTry,
		NodeSize:          o.NodeSize,
		NumRandomCuts:     o.NumRandomCuts,
		EvenCuts:          o.EvenCuts,
		NumThreads:        o.NumThreads,
		Quantile:          o.Quantile,
		SubsetSizes:       o.SubsetSizes,
		SubsetGroups:      o.SubsetGroups,
		Tasks:             o.Tasks,
		ProbOfTaskCuts:    o.ProbOfTaskCuts,
		NumRandomTaskCuts: o.NumRandomTaskCuts,
		Seed:              o.Seed,
	}

	if params.MTry == 0 {
		params.MTry = defaultMTry(family, p)
	}

	if params.NodeSize == 0 {
		params.NodeSize = defaultNodeSize(family)
	}

	if params.ProbOfTaskCuts == 0 && p > 0 {
		params.ProbOfTaskCuts = float64(params.MTry) / float64(p)
	}

	return params
}

// Map encodes options under their library names, DecodeOptions reverses it.
func (o Options) Map() (map[string]any, error) {
	raw := make(map[string]any)
	if err := mapstructure.Decode(o, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}
