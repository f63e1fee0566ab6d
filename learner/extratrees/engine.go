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

//go:generate mockgen -destination mocks/engine_mock.go -source engine.go -package mocks

package extratrees

import (
	"context"
)

// Params are the training parameters under the names of the tree library.
// MTry counts the candidate features of a split in extremely randomized
// trees, the golearn engine draws them once per tree as the subspace it
// grows on and ignores NodeSize.
type Params struct {
	NTree             int       `json:"ntree" mapstructure:"ntree"`
	MTry              int       `json:"mtry" mapstructure:"mtry"`
	NodeSize          int       `json:"nodesize" mapstructure:"nodesize"`
	NumRandomCuts     int       `json:"numRandomCuts" mapstructure:"numRandomCuts"`
	EvenCuts          bool      `json:"evenCuts" mapstructure:"evenCuts"`
	NumThreads        int       `json:"numThreads" mapstructure:"numThreads"`
	Quantile          bool      `json:"quantile" mapstructure:"quantile"`
	Weights           []float64 `json:"weights,omitempty" mapstructure:"weights"`
	SubsetSizes       []int     `json:"subsetSizes,omitempty" mapstructure:"subsetSizes"`
	SubsetGroups      [][]int   `json:"subsetGroups,omitempty" mapstructure:"subsetGroups"`
	Tasks             []int     `json:"tasks,omitempty" mapstructure:"tasks"`
	ProbOfTaskCuts    float64   `json:"probOfTaskCuts" mapstructure:"probOfTaskCuts"`
	NumRandomTaskCuts int       `json:"numRandomTaskCuts" mapstructure:"numRandomTaskCuts"`
	Seed              int64     `json:"seed" mapstructure:"seed"`

	// NumClasses is the number of outcome levels, outcome values are level
	// codes in [0, NumClasses) when it is positive. Zero means regression.
	NumClasses int `json:"numClasses" mapstructure:"numClasses"`
}

// Engine is the tree library the learner delegates to.
type Engine interface {
	// Name returns the name of the library.
	Name() string

	// Train grows a forest on rows of x and outcome y.
	Train(ctx context.Context, params *Params, x [][]float64, y []float64) (Forest, error)
}

// Forest is a forest grown by an Engine.
type Forest interface {
	// Predict returns point predictions of a regression forest.
	Predict(x [][]float64) ([]float64, error)

	// PredictProb returns per level probabilities of a classification forest,
	// one column per level code.
	PredictProb(x [][]float64) ([][]float64, error)

	// PredictQuantile returns the q-quantile predictions of a quantile regression forest.
	PredictQuantile(x [][]float64, q float64) ([]float64, error)
}
