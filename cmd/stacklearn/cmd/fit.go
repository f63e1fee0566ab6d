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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	logger "d7y.io/stacklearn/internal/dflog"
	"d7y.io/stacklearn/learner"
	"d7y.io/stacklearn/learner/extratrees"
	"d7y.io/stacklearn/pkg/dataset"
)

var fitFlags struct {
	train   string
	outcome string
	predict string
	output  string
	family  string
	folds   int
	seed    int64
}

// fitExample shows examples in fit command.
var fitExample = `
$ stacklearn fit --train train.csv --outcome y --family binomial --folds 10
$ stacklearn fit --train train.csv --outcome y --predict new.csv --output pred.csv`

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "fit the learner on a csv dataset and write predictions",
	Long: `fit reads outcome and covariates from a csv file with header, optionally cross-validates the learner,
fits it on every row and writes predictions on the training rows or on the covariates of another csv file.`,
	Example:           fitExample,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("family") {
			cfg.Learner.Family = fitFlags.family
		}

		if cmd.Flags().Changed("folds") {
			cfg.Learner.Folds = fitFlags.folds
		}

		if cmd.Flags().Changed("seed") {
			cfg.Learner.Options.Seed = fitFlags.seed
		}

		// Fit logs to the console on stderr, stdout carries predictions.
		cfg.Console = true

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := initDfpathAndLogger(cfg); err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runFit(ctx)
	},
}

func init() {
	flags := fitCmd.Flags()
	flags.StringVar(&fitFlags.train, "train", "", "csv file with header holding outcome and covariates")
	flags.StringVar(&fitFlags.outcome, "outcome", "", "outcome column of the train file")
	flags.StringVar(&fitFlags.predict, "predict", "", "csv file with header holding covariates to predict on, default is the train file")
	flags.StringVar(&fitFlags.output, "output", "", "csv file predictions are written to, default is stdout")
	flags.StringVar(&fitFlags.family, "family", "", "family of the fit, gaussian or binomial")
	flags.IntVar(&fitFlags.folds, "folds", 0, "number of cross-validation folds, 0 disables cross-validation")
	flags.Int64Var(&fitFlags.seed, "seed", 0, "seed of folds and trees, 0 seeds by time")

	if err := fitCmd.MarkFlagRequired("train"); err != nil {
		panic(err)
	}

	if err := fitCmd.MarkFlagRequired("outcome"); err != nil {
		panic(err)
	}
}

func runFit(ctx context.Context) error {
	family, err := cfg.Family()
	if err != nil {
		return err
	}

	x, y, err := dataset.LoadFile(fitFlags.train, fitFlags.outcome)
	if err != nil {
		return err
	}

	in := &learner.Input{
		Y:      y,
		X:      x,
		Family: family,
	}

	l := extratrees.NewWithOptions(extratrees.NewGolearnEngine(), cfg.Learner.Options)
	log := logger.WithLearner(l.Name(), family.String())

	// Cross-validate on training rows.
	if cfg.Learner.Folds >= 2 {
		cv, err := learner.CrossValidate(ctx, l, in, cfg.Learner.Folds, cfg.Learner.Options.Seed)
		if err != nil {
			return fmt.Errorf("cross-validate: %w", err)
		}

		log.Infof("%d-fold cross-validated risk %.6f: %+v", cfg.Learner.Folds, cv.Eval.Risk(), *cv.Eval)
	}

	if fitFlags.predict != "" {
		newX, _, err := dataset.LoadFile(fitFlags.predict, "")
		if err != nil {
			return err
		}

		in.NewX = newX
	}

	out, err := l.Fit(ctx, in)
	if err != nil {
		return err
	}

	// Evaluate on training rows when predicting on them.
	if in.NewX == nil {
		eval, err := learner.Evaluate(family, y, out.Pred)
		switch {
		case err != nil:
			log.Warnf("evaluate training predictions: %s", err.Error())
		case eval.CheckEval() != nil:
			log.Warnf("training predictions: %s", eval.CheckEval().Error())
		default:
			log.Infof("training risk %.6f: %+v", eval.Risk(), *eval)
		}
	}

	if fitFlags.output == "" {
		return dataset.WritePredictions(os.Stdout, out.Pred)
	}

	if err := dataset.WritePredictionsFile(fitFlags.output, out.Pred); err != nil {
		return err
	}

	log.Infof("wrote %d predictions to %s", len(out.Pred), fitFlags.output)
	return nil
}
