package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/writer"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/urfave/cli/v3"
)

// goldenParams is the short crossover the golden files are recorded with.
var goldenParams = types.SmaParams{FastWindow: 2, SlowWindow: 3}

func goldensCommand() *cli.Command {
	return &cli.Command{
		Name:  "goldens",
		Usage: "Rewrite the golden equity, trades and metrics files from the sample dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sample",
				Usage: "Sample OHLCV CSV `FILE`",
				Value: filepath.Join("testdata", "sample.csv"),
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Golden output `DIR`",
				Value: filepath.Join("testdata", "golden"),
			},
		},
		Action: goldensAction,
	}
}

func goldensAction(_ context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	out := cmd.Root().Writer

	imported, err := loadSeries(out, cmd.String("sample"), types.DateFormatISO, log)
	if err != nil {
		return err
	}

	settings := types.DefaultBacktestSettings()
	result := enginev1.NewSmaCrossoverEngine(log).Run(imported.Series, goldenParams, settings)

	dir := cmd.String("out")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to create golden directory %s", dir)
	}

	equityPath := filepath.Join(dir, writer.EquityFileName)
	if err := writer.WriteEquityCSVFile(equityPath, imported.Series, result); err != nil {
		return err
	}

	tradesPath := filepath.Join(dir, writer.TradesFileName)
	if err := writer.WriteTradesCSVFile(tradesPath, result); err != nil {
		return err
	}

	metricsPath := filepath.Join(dir, writer.MetricsFileName)
	if err := writer.WriteMetricsJSONFile(metricsPath, imported.Series.Metadata(), goldenParams, settings, result.Metrics); err != nil {
		return err
	}

	fmt.Fprintf(out, "Regenerated %s, %s and %s\n", equityPath, tradesPath, metricsPath)

	return nil
}
