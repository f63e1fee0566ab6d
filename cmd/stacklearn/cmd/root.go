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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"d7y.io/stacklearn/cmd/dependency"
	"d7y.io/stacklearn/config"
	logger "d7y.io/stacklearn/internal/dflog"
	"d7y.io/stacklearn/pkg/dfpath"
	"d7y.io/stacklearn/server"
	"d7y.io/stacklearn/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stacklearn",
	Short: "the extremely randomized trees base learner of stacking ensembles",
	Long: `Stacklearn is a long-running process exposing the extremely randomized trees base learner over http,
it fits models on outcome and covariates, keeps fitted models and predicts on new covariates for the stacking framework.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Initialize dfpath and logger.
		if err := initDfpathAndLogger(cfg); err != nil {
			return err
		}

		return runStacklearn()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default stacklearn config.
	cfg = config.New()

	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)
	rootCmd.AddCommand(fitCmd)
}

func initDfpath(cfg *config.ServerConfig) (dfpath.Dfpath, error) {
	var options []dfpath.Option
	if cfg.WorkHome != "" {
		options = append(options, dfpath.WithWorkHome(cfg.WorkHome))
	}

	if cfg.LogDir != "" {
		options = append(options, dfpath.WithLogDir(cfg.LogDir))
	}

	return dfpath.New(options...)
}

func initDfpathAndLogger(cfg *config.Config) error {
	d, err := initDfpath(&cfg.Server)
	if err != nil {
		return err
	}

	rotateConfig := logger.LogRotateConfig{
		MaxSize:    cfg.Server.LogMaxSize,
		MaxAge:     cfg.Server.LogMaxAge,
		MaxBackups: cfg.Server.LogMaxBackups,
	}

	if err := logger.InitStacklearn(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
		return fmt.Errorf("init stacklearn logger: %w", err)
	}

	return nil
}

func runStacklearn() error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.Verbose, cfg.PProfPort)
	defer ff()

	svr, err := server.New(cfg)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}
