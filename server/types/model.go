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

package types

import (
	"time"

	"d7y.io/stacklearn/learner"
)

type ModelParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type CreateModelRequest struct {
	Learner string         `json:"learner" binding:"omitempty"`
	Family  string         `json:"family" binding:"required,family"`
	Y       []float64      `json:"y" binding:"required"`
	X       *learner.Table `json:"x" binding:"required"`
	NewX    *learner.Table `json:"newX" binding:"omitempty"`
	Weights []float64      `json:"weights" binding:"omitempty"`
	ID      []int          `json:"id" binding:"omitempty"`
	Options map[string]any `json:"options" binding:"omitempty"`
}

type PredictRequest struct {
	Family   string         `json:"family" binding:"required,family"`
	X        *learner.Table `json:"x" binding:"required"`
	Quantile *float64       `json:"quantile" binding:"omitempty,gte=0,lte=1"`
}

type CrossValidateRequest struct {
	Learner string         `json:"learner" binding:"omitempty"`
	Family  string         `json:"family" binding:"required,family"`
	Y       []float64      `json:"y" binding:"required"`
	X       *learner.Table `json:"x" binding:"required"`
	Weights []float64      `json:"weights" binding:"omitempty"`
	ID      []int          `json:"id" binding:"omitempty"`
	Options map[string]any `json:"options" binding:"omitempty"`
	Folds   int            `json:"folds" binding:"required,gte=2"`
	Seed    int64          `json:"seed" binding:"omitempty"`
}

type Model struct {
	ID         string    `json:"id"`
	Learner    string    `json:"learner"`
	Family     string    `json:"family"`
	NumRows    int       `json:"numRows"`
	NumColumns int       `json:"numColumns"`
	CreatedAt  time.Time `json:"createdAt"`
	Pred       []float64 `json:"pred,omitempty"`
}

type PredictResponse struct {
	Pred []float64 `json:"pred"`
}

type CrossValidateResponse struct {
	Pred  []float64     `json:"pred"`
	Folds []int         `json:"folds"`
	Eval  *learner.Eval `json:"eval"`
}
