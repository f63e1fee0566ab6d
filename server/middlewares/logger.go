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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"

	logger "d7y.io/stacklearn/internal/dflog"
)

// Logger writes one http log entry per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.HTTPLogger.Infow(c.Request.URL.Path,
			"method", c.Request.Method,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"userAgent", c.GetHeader(headers.UserAgent),
			"size", c.Writer.Size(),
			"latency", time.Since(start),
			"errors", c.Errors.ByType(gin.ErrorTypePrivate).String(),
		)
	}
}
