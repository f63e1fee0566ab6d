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

package config

import (
	"errors"
	"fmt"

	"d7y.io/stacklearn/learner"
	"d7y.io/stacklearn/learner/extratrees"
)

type Config struct {
	// Console prints logs to stdout instead of log files.
	Console bool `yaml:"console" mapstructure:"console"`

	// Verbose enables debug logs.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// PProfPort is the port of pprof and statsview in verbose mode, 0 picks a free port.
	PProfPort int `yaml:"pprofPort" mapstructure:"pprofPort"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// Learner configuration.
	Learner LearnerConfig `yaml:"learner" mapstructure:"learner"`

	// ModelCache configuration.
	ModelCache ModelCacheConfig `yaml:"modelCache" mapstructure:"modelCache"`
}

type ServerConfig struct {
	// Addr is the listen address of the http server.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Server work home directory.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type LearnerConfig struct {
	// Family is the default family of fits, gaussian or binomial.
	Family string `yaml:"family" mapstructure:"family"`

	// Folds is the number of cross-validation folds, 0 disables cross-validation.
	Folds int `yaml:"folds" mapstructure:"folds"`

	// Options are the hyperparameters of the learner.
	Options extratrees.Options `yaml:"options" mapstructure:"options"`
}

type ModelCacheConfig struct {
	// Size is the maximum number of fitted models held by the server.
	Size int `yaml:"size" mapstructure:"size"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          DefaultServerAddr,
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
		Learner: LearnerConfig{
			Family:  DefaultLearnerFamily,
			Options: extratrees.DefaultOptions(),
		},
		ModelCache: ModelCacheConfig{
			Size: DefaultModelCacheSize,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.Addr == "" {
		return errors.New("server requires parameter addr")
	}

	if cfg.PProfPort < 0 {
		return errors.New("pprofPort must be non-negative")
	}

	if cfg.Server.LogMaxSize <= 0 {
		return errors.New("server requires parameter logMaxSize")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics requires parameter addr")
		}
	}

	family, err := learner.ParseFamily(cfg.Learner.Family)
	if err != nil {
		return fmt.Errorf("learner requires parameter family: %w", err)
	}

	if cfg.Learner.Folds < 0 || cfg.Learner.Folds == 1 {
		return errors.New("learner requires parameter folds to be 0 or at least 2")
	}

	options := cfg.Learner.Options
	if options.NTree <= 0 {
		return errors.New("learner requires parameter ntree")
	}

	if options.MTry < 0 {
		return errors.New("learner requires parameter mtry to be non-negative")
	}

	if options.NodeSize < 0 {
		return errors.New("learner requires parameter nodesize to be non-negative")
	}

	if options.NumRandomCuts <= 0 {
		return errors.New("learner requires parameter numRandomCuts")
	}

	if options.NumThreads <= 0 {
		return errors.New("learner requires parameter numThreads")
	}

	if options.Quantile && family.IsClassification() {
		return errors.New("learner parameter quantile requires family gaussian")
	}

	if options.ProbOfTaskCuts < 0 || options.ProbOfTaskCuts > 1 {
		return errors.New("learner requires parameter probOfTaskCuts in [0, 1]")
	}

	if cfg.ModelCache.Size <= 0 {
		return errors.New("modelCache requires parameter size")
	}

	return nil
}

// Family returns the parsed default family.
func (cfg *Config) Family() (learner.Family, error) {
	return learner.ParseFamily(cfg.Learner.Family)
}
