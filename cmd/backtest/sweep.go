package main

import (
	"context"
	"fmt"

	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/sweep"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func sweepCommand() *cli.Command {
	defaults := sweep.DefaultConfig()

	return &cli.Command{
		Name:  "sweep",
		Usage: "Rank fast/slow pairs on a train split and report them on the held out split",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the OHLCV `FILE` (CSV or Parquet)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Path of the report `FILE` (CSV)",
				Required: true,
			},
			&cli.StringFlag{Name: "date-format", Usage: "How textual dates are read: iso, mdy or dmy", Value: string(types.DateFormatISO)},
			&cli.FloatFlag{Name: "train-ratio", Usage: "Share of rows used for ranking", Value: defaults.TrainRatio},
			&cli.IntFlag{Name: "fast-min", Value: defaults.FastMin},
			&cli.IntFlag{Name: "fast-max", Value: defaults.FastMax},
			&cli.IntFlag{Name: "slow-min", Value: defaults.SlowMin},
			&cli.IntFlag{Name: "slow-max", Value: defaults.SlowMax},
			&cli.IntFlag{Name: "step", Value: defaults.Step},
			&cli.IntFlag{Name: "workers", Usage: "Backtests running at once", Value: defaults.Workers},
			&cli.FloatFlag{Name: "position-size", Value: defaults.Settings.PositionSizePct},
			&cli.FloatFlag{Name: "stop-loss", Value: defaults.Settings.StopLossPct},
			&cli.FloatFlag{Name: "take-profit", Value: defaults.Settings.TakeProfitPct},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Hide the progress bar"},
		},
		Action: sweepAction,
	}
}

func sweepAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	config := sweep.DefaultConfig()
	config.TrainRatio = cmd.Float("train-ratio")
	config.FastMin = cmd.Int("fast-min")
	config.FastMax = cmd.Int("fast-max")
	config.SlowMin = cmd.Int("slow-min")
	config.SlowMax = cmd.Int("slow-max")
	config.Step = cmd.Int("step")
	config.Workers = cmd.Int("workers")
	config.Settings.PositionSizePct = cmd.Float("position-size")
	config.Settings.StopLossPct = cmd.Float("stop-loss")
	config.Settings.TakeProfitPct = cmd.Float("take-profit")

	out := cmd.Root().Writer

	imported, err := loadSeries(out, cmd.String("data"), types.ParseDateFormat(cmd.String("date-format")), log)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar

	onProgress := func(done int, total int) error {
		if cmd.Bool("quiet") {
			return nil
		}

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Sweeping"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWriter(cmd.Root().ErrWriter),
			)
		}

		return bar.Set(done)
	}

	report, err := sweep.Run(ctx, imported.Series, config, enginev1.NewSmaCrossoverEngine(log), onProgress, log)
	if err != nil {
		return err
	}

	if bar != nil {
		_ = bar.Finish()
	}

	outPath := cmd.String("out")
	if err := report.WriteCSVFile(outPath); err != nil {
		return err
	}

	fmt.Fprintln(out, renderSweepSummary(report, outPath))

	return nil
}
