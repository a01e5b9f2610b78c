package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Run SMA crossover backtests over historical OHLCV data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			sweepCommand(),
			convertCommand(),
			benchCommand(),
			goldensCommand(),
			schemaCommand(),
			versionCommand(),
		},
	}
}

// newLogger builds the logger selected by the root --log-level flag.
func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	return logger.NewLoggerWithLevel(cmd.Root().String("log-level"))
}

// exitCode is 2 for rejected input and configuration, 1 for every other failure.
func exitCode(err error) int {
	code := errors.GetCode(err)
	if code >= errors.ErrCodeInvalidParameter && code < errors.ErrCodeDataNotFound {
		return 2
	}

	return 1
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
