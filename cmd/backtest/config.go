package main

import (
	"time"

	"github.com/moznion/go-optional"
	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/urfave/cli/v3"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// strategyFlags mirror the keys of the backtest config file.
func strategyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a backtest config `FILE` (YAML). Flags override its values",
		},
		&cli.StringFlag{
			Name:  "date-format",
			Usage: "How textual dates are read: iso, mdy or dmy",
		},
		&cli.IntFlag{
			Name:  "fast",
			Usage: "Fast moving average window",
		},
		&cli.IntFlag{
			Name:  "slow",
			Usage: "Slow moving average window",
		},
		&cli.FloatFlag{
			Name:  "starting-cash",
			Usage: "Cash available before the first bar",
		},
		&cli.FloatFlag{
			Name:  "commission",
			Usage: "Commission rate charged on each leg, e.g. 0.001",
		},
		&cli.FloatFlag{
			Name:  "position-size",
			Usage: "Fraction of cash committed per entry",
		},
		&cli.FloatFlag{
			Name:  "stop-loss",
			Usage: "Loss from entry that triggers an exit, 0 disables",
		},
		&cli.FloatFlag{
			Name:  "take-profit",
			Usage: "Gain from entry that triggers an exit, 0 disables",
		},
		&cli.TimestampFlag{
			Name:   "start",
			Usage:  "First instant of the backtest window in `YYYY-MM-DD` or RFC3339",
			Config: cli.TimestampConfig{Layouts: dateLayouts},
		},
		&cli.TimestampFlag{
			Name:   "end",
			Usage:  "Last instant of the backtest window in `YYYY-MM-DD` or RFC3339",
			Config: cli.TimestampConfig{Layouts: dateLayouts},
		},
	}
}

// loadConfig reads the optional config file, applies the flags that were set and validates
// the result.
func loadConfig(cmd *cli.Command) (enginev1.BacktestConfig, error) {
	config := enginev1.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := enginev1.LoadConfig(path)
		if err != nil {
			return enginev1.BacktestConfig{}, err
		}

		config = loaded
	}

	if cmd.IsSet("date-format") {
		config.DateFormat = types.ParseDateFormat(cmd.String("date-format"))
	}

	if cmd.IsSet("fast") {
		config.Strategy.FastWindow = cmd.Int("fast")
	}

	if cmd.IsSet("slow") {
		config.Strategy.SlowWindow = cmd.Int("slow")
	}

	if cmd.IsSet("starting-cash") {
		config.Settings.StartingCash = cmd.Float("starting-cash")
	}

	if cmd.IsSet("commission") {
		config.Settings.CommissionPct = cmd.Float("commission")
	}

	if cmd.IsSet("position-size") {
		config.Settings.PositionSizePct = cmd.Float("position-size")
	}

	if cmd.IsSet("stop-loss") {
		config.Settings.StopLossPct = cmd.Float("stop-loss")
	}

	if cmd.IsSet("take-profit") {
		config.Settings.TakeProfitPct = cmd.Float("take-profit")
	}

	if cmd.IsSet("start") {
		config.StartTime = optional.Some(cmd.Timestamp("start").UTC())
	}

	if cmd.IsSet("end") {
		config.EndTime = optional.Some(cmd.Timestamp("end").UTC())
	}

	if err := config.Validate(); err != nil {
		return enginev1.BacktestConfig{}, err
	}

	return config, nil
}
