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

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"d7y.io/stacklearn/server/types"
)

// @Summary Cross Validate
// @Description Cross-validate a base learner
// @Tags CrossValidation
// @Accept json
// @Produce json
// @Param CrossValidation body types.CrossValidateRequest true "CrossValidation"
// @Success 200 {object} types.CrossValidateResponse
// @Failure 400
// @Failure 422
// @Failure 500
// @Router /crossvalidations [post]
func (h *Handlers) CrossValidate(ctx *gin.Context) {
	var json types.CrossValidateRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.CrossValidate(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
