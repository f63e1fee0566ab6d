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
	"fmt"
	"strings"
)

// Family describes the response type of a base learner and selects how raw
// learner output is post-processed.
type Family string

const (
	// FamilyGaussian is the regression family, predictions are means.
	FamilyGaussian Family = "gaussian"

	// FamilyBinomial is the binary classification family, predictions are
	// probabilities of the positive class.
	FamilyBinomial Family = "binomial"
)

// ParseFamily parses family name, regression and classification are accepted
// as aliases.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(FamilyGaussian), "regression":
		return FamilyGaussian, nil
	case string(FamilyBinomial), "classification":
		return FamilyBinomial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// Validate returns an error if the family is not supported.
func (f Family) Validate() error {
	switch f {
	case FamilyGaussian, FamilyBinomial:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFamily, string(f))
	}
}

// IsClassification returns whether predictions are class probabilities.
func (f Family) IsClassification() bool {
	return f == FamilyBinomial
}

func (f Family) String() string {
	return string(f)
}
