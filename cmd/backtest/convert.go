package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/urfave/cli/v3"
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Import a CSV and store the normalized series as Parquet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the OHLCV CSV `FILE`",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Path of the Parquet `FILE`. Defaults to the input path with a .parquet extension",
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Symbol stored alongside each row. Defaults to the input file name",
			},
			&cli.StringFlag{
				Name:  "date-format",
				Usage: "How textual dates are read: iso, mdy or dmy",
				Value: string(types.DateFormatISO),
			},
		},
		Action: convertAction,
	}
}

func convertAction(_ context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	dataPath := cmd.String("data")
	base := strings.TrimSuffix(dataPath, filepath.Ext(dataPath))

	outPath := cmd.String("out")
	if outPath == "" {
		outPath = base + ".parquet"
	}

	symbol := cmd.String("symbol")
	if symbol == "" {
		symbol = filepath.Base(base)
	}

	out := cmd.Root().Writer

	imported, err := loadSeries(out, dataPath, types.ParseDateFormat(cmd.String("date-format")), log)
	if err != nil {
		return err
	}

	if err := datasource.WriteParquet(outPath, symbol, imported.Series); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d rows (%d dropped) to %s\n", len(imported.Series), imported.DroppedRows, outPath)

	return nil
}
