package engine

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// ComputeDrawdown returns the fractional drawdown of every equity point from its running
// peak, together with the minimum (most negative) value, which is 0 when there is none.
// Points whose peak is not positive have no meaningful drawdown and report 0.
func ComputeDrawdown(equity []float64) ([]float64, float64) {
	drawdown := make([]float64, len(equity))
	peak := math.Inf(-1)
	minDrawdown := 0.0

	for i, value := range equity {
		peak = math.Max(peak, value)

		dd := 0.0
		if peak > 0 {
			dd = (value - peak) / peak
		}

		drawdown[i] = dd
		minDrawdown = math.Min(minDrawdown, dd)
	}

	return drawdown, minDrawdown
}

// ComputeMetrics derives the run summary from the equity curve and the closed trades.
// An empty curve is treated as ending at startingCash.
func ComputeMetrics(equity []float64, trades []types.Trade, startingCash float64) types.Metrics {
	finalEquity := startingCash
	if len(equity) > 0 {
		finalEquity = equity[len(equity)-1]
	}

	metrics := types.Metrics{
		TotalReturnPct:    0,
		TotalPnL:          finalEquity - startingCash,
		Trades:            len(trades),
		WinRatePct:        0,
		AvgTradeReturnPct: 0,
		MaxDrawdownPct:    0,
	}

	if startingCash != 0 {
		metrics.TotalReturnPct = metrics.TotalPnL / startingCash * 100.0
	}

	if len(trades) > 0 {
		wins := 0
		sumReturns := 0.0

		for _, trade := range trades {
			if trade.IsWin() {
				wins++
			}

			sumReturns += trade.ReturnPct
		}

		metrics.WinRatePct = float64(wins) / float64(len(trades)) * 100.0
		metrics.AvgTradeReturnPct = sumReturns / float64(len(trades)) * 100.0
	}

	_, minDrawdown := ComputeDrawdown(equity)
	metrics.MaxDrawdownPct = minDrawdown * 100.0

	return metrics
}
