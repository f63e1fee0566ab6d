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

package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"

	"d7y.io/stacklearn/config"
	"d7y.io/stacklearn/server/handlers"
	"d7y.io/stacklearn/server/middlewares"
	"d7y.io/stacklearn/server/service"
)

const (
	PrometheusSubsystemName = "stacklearn_server"
)

func Init(cfg *config.Config, service service.Service) *gin.Engine {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes model ids.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	p.Use(r)

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.Logger())
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Router
	apiv1 := r.Group("/api/v1")

	// Model
	m := apiv1.Group("/models")
	m.POST("", h.CreateModel)
	m.DELETE(":id", h.DestroyModel)
	m.GET(":id", h.GetModel)
	m.POST(":id/predict", h.Predict)

	// Cross validation
	cv := apiv1.Group("/crossvalidations")
	cv.POST("", h.CrossValidate)

	// Health Check
	r.GET("/healthy", h.GetHealth)

	return r
}
