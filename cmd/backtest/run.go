package main

import (
	"context"
	"fmt"

	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/writer"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func runCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "data",
			Aliases:  []string{"d"},
			Usage:    "Path to the OHLCV `FILE` (CSV or Parquet)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "results",
			Usage: "Root `DIR` for run outputs",
			Value: "results",
		},
		&cli.BoolFlag{
			Name:  "parquet",
			Usage: "Also export trades and equity as Parquet",
		},
		&cli.StringFlag{
			Name:  "baseline",
			Usage: "Stats `FILE` of an earlier run to compare against",
		},
	}

	return &cli.Command{
		Name:   "run",
		Usage:  "Import a dataset, run one backtest and write its outputs",
		Flags:  append(flags, strategyFlags()...),
		Action: runAction,
	}
}

func runAction(_ context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Read the baseline up front so an incompatible one fails before any work is done.
	var baseline []types.RunStats

	if path := cmd.String("baseline"); path != "" {
		baseline, err = types.ReadRunStats(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read baseline", err)
		}

		if len(baseline) == 0 {
			return errors.Newf(errors.ErrCodeDataNotFound, "baseline %s has no runs", path)
		}

		if err := version.CheckBaselineCompatibility(version.Version, baseline[0].Version); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "baseline is not comparable", err)
		}
	}

	out := cmd.Root().Writer
	dataPath := cmd.String("data")

	imported, err := loadSeries(out, dataPath, config.DateFormat, log)
	if err != nil {
		return err
	}

	series := imported.Series.Between(config.Window())

	result := enginev1.NewSmaCrossoverEngine(log).Run(series, config.Strategy, config.Settings)

	for _, warning := range result.Warnings {
		fmt.Fprintln(out, WarningStyle.Render(warning))
	}

	runDir := enginev1.GetResultFolder(cmd.String("results"), dataPath, config)

	fileWriter, err := writer.NewFileWriter(runDir)
	if err != nil {
		return err
	}

	stats, err := fileWriter.Write(writer.RunOutput{
		DataPath:       dataPath,
		Series:         series,
		Params:         config.Strategy,
		Settings:       config.Settings,
		Result:         result,
		ImportWarnings: issueMessages(imported.Warnings),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("parquet") {
		if err := exportParquet(stats.ID, runDir, series, result, log); err != nil {
			return err
		}
	}

	log.Info("Backtest finished",
		zap.String("id", stats.ID),
		zap.String("results", runDir),
		zap.Int("trades", result.Metrics.Trades),
	)

	fmt.Fprintln(out, renderRunSummary(stats, runDir))

	if len(baseline) > 0 {
		fmt.Fprintln(out, renderBaselineComparison(stats, baseline[0]))
	}

	return nil
}
