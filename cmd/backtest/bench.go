package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/importer"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/urfave/cli/v3"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Time the import and a 20/50 backtest over a synthetic dataset",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "rows",
				Usage: "Number of synthetic daily bars",
				Value: 200000,
			},
		},
		Action: benchAction,
	}
}

func benchAction(_ context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	dir, err := os.MkdirTemp("", "argo-backtest-bench")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileOpenFailed, "failed to create temp directory", err)
	}
	defer os.RemoveAll(dir)

	csvPath := filepath.Join(dir, "benchmark_ohlcv.csv")

	file, err := os.Create(csvPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileOpenFailed, "failed to create benchmark csv", err)
	}

	if err := mocks.WriteSyntheticCSV(file, cmd.Int("rows")); err != nil {
		file.Close()

		return errors.Wrap(errors.ErrCodeExportFailed, "failed to write benchmark csv", err)
	}

	if err := file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to close benchmark csv", err)
	}

	importStart := time.Now()
	imported := importer.NewImporter(log).ImportFile(csvPath, types.DateFormatISO)
	importElapsed := time.Since(importStart)

	if !imported.Success {
		return errors.New(errors.ErrCodeImportFailed, "Import failed in benchmark")
	}

	params := types.SmaParams{FastWindow: 20, SlowWindow: 50}
	settings := types.DefaultBacktestSettings()

	backtestStart := time.Now()
	result := enginev1.NewSmaCrossoverEngine(log).Run(imported.Series, params, settings)
	backtestElapsed := time.Since(backtestStart)

	out := cmd.Root().Writer
	fmt.Fprintln(out, renderBlock("Benchmark", []summaryLine{
		{label: "Rows", value: fmt.Sprintf("%d", len(imported.Series))},
		{label: "Import", value: fmt.Sprintf("%d ms", importElapsed.Milliseconds())},
		{label: "Backtest", value: fmt.Sprintf("%d ms", backtestElapsed.Milliseconds())},
		{label: "Trades", value: fmt.Sprintf("%d", result.Metrics.Trades)},
	}))

	return nil
}
