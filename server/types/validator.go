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
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"d7y.io/stacklearn/learner"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}

// RegisterValidations registers the custom validation tags on v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("family", ValidateFamily)
}

// ValidateFamily reports whether the field holds a supported family name.
func ValidateFamily(fl validator.FieldLevel) bool {
	_, err := learner.ParseFamily(fl.Field().String())
	return err == nil
}
