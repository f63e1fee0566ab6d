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
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"d7y.io/stacklearn/learner"
)

func TestValidateFamily(t *testing.T) {
	tests := []struct {
		name   string
		req    PredictRequest
		expect func(t *testing.T, err error)
	}{
		{
			name: "gaussian",
			req:  PredictRequest{Family: "gaussian", X: learner.NewTable(nil, [][]float64{{1}})},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name: "classification alias",
			req:  PredictRequest{Family: "classification", X: learner.NewTable(nil, [][]float64{{1}})},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name: "unknown family",
			req:  PredictRequest{Family: "poisson", X: learner.NewTable(nil, [][]float64{{1}})},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.ErrorContains(err, "'family' tag")
			},
		},
		{
			name: "quantile out of range",
			req: PredictRequest{
				Family:   "gaussian",
				X:        learner.NewTable(nil, [][]float64{{1}}),
				Quantile: func() *float64 { q := 1.5; return &q }(),
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.ErrorContains(err, "'lte' tag")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, binding.Validator.ValidateStruct(&tc.req))
		})
	}
}

func TestRegisterValidations(t *testing.T) {
	assert := assert.New(t)
	v := validator.New()
	assert.NoError(RegisterValidations(v))

	type request struct {
		Family string `validate:"required,family"`
	}

	assert.NoError(v.Struct(&request{Family: "binomial"}))
	assert.ErrorContains(v.Struct(&request{Family: "poisson"}), "'family' tag")
}
