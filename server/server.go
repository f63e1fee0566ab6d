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

package server

import (
	"context"
	"net/http"
	"time"

	"d7y.io/stacklearn/config"
	logger "d7y.io/stacklearn/internal/dflog"
	"d7y.io/stacklearn/metrics"
	"d7y.io/stacklearn/server/router"
	"d7y.io/stacklearn/server/service"
)

// shutdownTimeout is the time given to in-flight requests on stop.
const shutdownTimeout = 10 * time.Second

type Server struct {
	// Server configuration.
	config *config.Config

	// HTTP server.
	httpServer *http.Server

	// Metrics server.
	metricsServer *http.Server
}

func New(cfg *config.Config) (*Server, error) {
	s := &Server{config: cfg}

	// Initialize default learner options.
	options, err := cfg.Learner.Options.Map()
	if err != nil {
		return nil, err
	}

	// Initialize service.
	svc, err := service.New(cfg.ModelCache.Size, options)
	if err != nil {
		return nil, err
	}

	// Initialize http server.
	s.httpServer = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.Init(cfg, svc),
	}

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(cfg.Metrics.Addr)
	}

	return s, nil
}

func (s *Server) Serve() error {
	// Started metrics server.
	if s.metricsServer != nil {
		go func() {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil {
				if err == http.ErrServerClosed {
					return
				}

				logger.Fatalf("metrics server closed unexpect: %s", err.Error())
			}
		}()
	}

	// Started http server.
	logger.Infof("started http server at %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			return nil
		}

		logger.Errorf("http server closed unexpect: %s", err.Error())
		return err
	}

	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		} else {
			logger.Info("metrics server closed under request")
		}
	}

	// Stop http server.
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("http server failed to stop: %s", err.Error())
	} else {
		logger.Info("http server closed under request")
	}
}
