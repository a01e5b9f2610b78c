package engine

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// StrategyName identifies the single strategy family the engine implements.
const StrategyName = "SMA_CROSS"

// Engine runs one strategy over one series. Implementations must not mutate the series
// and must be safe to call concurrently with distinct inputs.
type Engine interface {
	// Run executes the strategy bar by bar. It never fails; problems with the inputs are
	// reported through the result's warnings.
	Run(series types.Series, params types.SmaParams, settings types.BacktestSettings) types.BacktestResult
}

// OnProcessDataCallback is called after each unit of batch work completes.
// Returning an error aborts the batch.
type OnProcessDataCallback func(current int, total int) error
