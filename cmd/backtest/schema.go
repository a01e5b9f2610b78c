package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/urfave/cli/v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON schema of the backtest config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write the schema to `FILE` instead of stdout",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			config := enginev1.DefaultConfig()

			schemaJSON, err := config.GenerateSchemaJSON()
			if err != nil {
				return errors.Wrap(errors.ErrCodeUnknown, "failed to generate schema", err)
			}

			schemaPath := cmd.String("out")
			if schemaPath == "" {
				fmt.Fprintln(cmd.Root().Writer, schemaJSON)

				return nil
			}

			if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
				return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to create directory for %s", schemaPath)
			}

			if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
				return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to write schema to %s", schemaPath)
			}

			fmt.Fprintf(cmd.Root().Writer, "Schema successfully generated at %s\n", schemaPath)

			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the engine version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Root().Writer, version.GetVersion())

			return nil
		},
	}
}
