package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopcat/pkg/config"
	"shopcat/pkg/data"
	"shopcat/pkg/logging"
	"shopcat/pkg/pipeline"
)

func newRootCmd(out io.Writer) *cobra.Command {
	var configFile string
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "shopcat",
		Short: "Train a random forest that predicts the product category of shopping transactions",
		Example: `  shopcat
  shopcat --input shopping.csv --trees 200 --plot importance.png
  SHOPCAT_SEED=7 shopcat --log-level info`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load(config.New(), configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			p, err := pipeline.New(cfg, logger, out)
			if err != nil {
				return err
			}
			if _, err := p.Run(cmd.Context()); err != nil {
				// the pipeline already printed the handled message
				if errors.Is(err, data.ErrFileNotFound) {
					logger.Debug("Input file missing", zap.Error(err))
					return nil
				}
				logger.Error("Pipeline failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.SetOut(out)

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "Optional config file (yaml, json, toml)")
	f.String("input", d.Input, "Path to input CSV file")
	f.String("id-column", d.IDColumn, "Identifier column dropped before training")
	f.String("target", d.Target, "Column to predict")
	f.StringSlice("categorical", d.Categorical, "Text columns to label-encode")
	f.Float64("test-size", d.TestSize, "Fraction of rows held out for evaluation")
	f.Int64("seed", d.Seed, "Random seed for the split and the forest")
	f.Int("trees", d.Trees, "Number of trees in the forest")
	f.Int("max-depth", d.MaxDepth, "Maximum tree depth (0 = unlimited)")
	f.Int("min-samples-split", d.MinSamplesSplit, "Minimum samples needed to split a node")
	f.Int("min-samples-leaf", d.MinSamplesLeaf, "Minimum samples in each leaf")
	f.Int("max-features", d.MaxFeatures, "Features tried per split (0 = sqrt of feature count)")
	f.String("criterion", d.Criterion, "Split criterion: gini or entropy")
	f.Int("workers", d.Workers, "Trees fitted concurrently (0 = number of CPUs)")
	f.Int("top", d.Top, "Number of feature importances to print")
	f.String("plot", d.Plot, "Save a feature importance chart to this path")
	f.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")
	f.String("log-format", d.LogFormat, "Log format: console or json")
	return cmd
}
