package types

// ImportIssue is a diagnostic produced while importing. Line is the 1-based source line,
// or 0 when the issue concerns the whole dataset.
type ImportIssue struct {
	Line    int    `yaml:"line" json:"line"`
	Message string `yaml:"message" json:"message"`
}

// ImportResult is the outcome of normalizing raw rows into a Series.
type ImportResult struct {
	// Success is false when no usable row remains. Series is empty in that case.
	Success bool
	// PartialSuccess is true when rows were dropped but the output is usable.
	PartialSuccess bool
	DroppedRows    int
	Series         Series
	Warnings       []ImportIssue
	Errors         []ImportIssue
}

// Metrics summarizes a backtest. Every field is derived from the equity curve and trades.
type Metrics struct {
	TotalReturnPct    float64 `yaml:"total_return_pct" json:"total_return_pct"`
	TotalPnL          float64 `yaml:"total_pnl" json:"total_pnl"`
	Trades            int     `yaml:"trades" json:"trades"`
	WinRatePct        float64 `yaml:"win_rate_pct" json:"win_rate_pct"`
	AvgTradeReturnPct float64 `yaml:"avg_trade_return_pct" json:"avg_trade_return_pct"`
	MaxDrawdownPct    float64 `yaml:"max_drawdown_pct" json:"max_drawdown_pct"`
}

// BacktestResult holds everything a run produces. Equity and Drawdown are aligned
// one to one with the input series.
type BacktestResult struct {
	Equity   []float64
	Drawdown []float64
	Trades   []Trade
	Metrics  Metrics
	Warnings []string
}

// FinalEquity returns the last equity value, or fallback when the curve is empty.
func (r BacktestResult) FinalEquity(fallback float64) float64 {
	if len(r.Equity) == 0 {
		return fallback
	}

	return r.Equity[len(r.Equity)-1]
}
