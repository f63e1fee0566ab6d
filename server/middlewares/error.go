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

package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"d7y.io/stacklearn/learner"
	"d7y.io/stacklearn/learner/extratrees"
	"d7y.io/stacklearn/server/service"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"errors,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Gin error handler
		if err.Type == gin.ErrorTypeBind {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		switch {
		case errors.Is(err.Err, service.ErrModelNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{
				Message: http.StatusText(http.StatusNotFound),
				Error:   err.Error(),
			})
		case errors.Is(err.Err, learner.ErrFamilyMismatch):
			c.JSON(http.StatusConflict, ErrorResponse{
				Message: http.StatusText(http.StatusConflict),
				Error:   err.Error(),
			})
		case errors.Is(err.Err, learner.ErrRowMismatch),
			errors.Is(err.Err, learner.ErrColumnMismatch),
			errors.Is(err.Err, learner.ErrEmptyTable),
			errors.Is(err.Err, learner.ErrDuplicateColumn),
			errors.Is(err.Err, learner.ErrUnknownFamily),
			errors.Is(err.Err, extratrees.ErrTooFewLevels),
			errors.Is(err.Err, extratrees.ErrQuantileUnavailable),
			errors.Is(err.Err, service.ErrInvalidLearner):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: http.StatusText(http.StatusBadRequest),
				Error:   err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: http.StatusText(http.StatusInternalServerError),
				Error:   err.Error(),
			})
		}
	}
}
