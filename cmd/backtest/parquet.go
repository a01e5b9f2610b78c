package main

import (
	"github.com/rxtech-lab/argo-backtest/internal/backtest/writer"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// exportParquet stores the run in an in-memory result store and exports it next to the
// other outputs.
func exportParquet(runID string, runDir string, series types.Series, result types.BacktestResult, log *logger.Logger) error {
	store, err := writer.NewResultStore(log)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveRun(runID, series, result); err != nil {
		return err
	}

	return store.Write(runDir)
}
