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

// Package dataset reads covariate tables from csv and writes predictions.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/sjwhitworth/golearn/base"

	"d7y.io/stacklearn/learner"
)

// ErrOutcomeNotFound is returned when the outcome column is missing.
var ErrOutcomeNotFound = errors.New("outcome column not found")

// Prediction is a row of the predictions file.
type Prediction struct {
	// Row is the index of the predicted row.
	Row int `csv:"row"`

	// Value is the prediction of the row.
	Value float64 `csv:"prediction"`
}

// Load parses a csv with header, the outcome column is split from covariates.
// An empty outcome loads covariates only.
func Load(r io.ReadSeeker, outcome string) (*learner.Table, []float64, error) {
	inst, err := base.ParseCSVToInstancesFromReader(r, true)
	if err != nil {
		return nil, nil, err
	}

	_, n := inst.Size()
	if n == 0 {
		return nil, nil, errors.New("csv has no rows")
	}

	var (
		columns []string
		specs   []base.AttributeSpec
		y       []float64
		ySpec   *base.AttributeSpec
	)
	for _, attr := range inst.AllAttributes() {
		if _, ok := attr.(*base.FloatAttribute); !ok {
			return nil, nil, fmt.Errorf("column %q is not numeric", attr.GetName())
		}

		spec, err := inst.GetAttribute(attr)
		if err != nil {
			return nil, nil, err
		}

		if outcome != "" && attr.GetName() == outcome {
			ySpec = &spec
			continue
		}

		columns = append(columns, attr.GetName())
		specs = append(specs, spec)
	}

	if outcome != "" {
		if ySpec == nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrOutcomeNotFound, outcome)
		}

		y = make([]float64, n)
		for i := range y {
			y[i] = base.UnpackBytesToFloat(inst.Get(*ySpec, i))
		}
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, len(specs))
		for j, spec := range specs {
			rows[i][j] = base.UnpackBytesToFloat(inst.Get(spec, i))
		}
	}

	table := learner.NewTable(columns, rows)
	if err := table.Validate(); err != nil {
		return nil, nil, err
	}

	return table, y, nil
}

// LoadFile loads the csv file at path.
func LoadFile(path, outcome string) (*learner.Table, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return Load(f, outcome)
}

// WritePredictions writes predictions as csv with header.
func WritePredictions(w io.Writer, pred []float64) error {
	predictions := make([]*Prediction, len(pred))
	for i, v := range pred {
		predictions[i] = &Prediction{
			Row:   i,
			Value: v,
		}
	}

	return gocsv.Marshal(predictions, w)
}

// WritePredictionsFile writes predictions to the file at path.
func WritePredictionsFile(path string, pred []float64) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return WritePredictions(f, pred)
}
