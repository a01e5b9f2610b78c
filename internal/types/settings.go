package types

// SmaParams configures the fast/slow moving average crossover.
type SmaParams struct {
	FastWindow int `yaml:"fast_window" json:"fast_window" jsonschema:"title=Fast Window,description=Bars in the fast moving average,minimum=1" validate:"gt=0,ltfield=SlowWindow"`
	SlowWindow int `yaml:"slow_window" json:"slow_window" jsonschema:"title=Slow Window,description=Bars in the slow moving average,minimum=2" validate:"gt=1"`
}

// IsValid reports whether both windows are positive and fast is shorter than slow.
func (p SmaParams) IsValid() bool {
	return p.FastWindow > 0 && p.SlowWindow > 0 && p.FastWindow < p.SlowWindow
}

// DefaultSmaParams returns the 20/50 crossover.
func DefaultSmaParams() SmaParams {
	return SmaParams{
		FastWindow: 20,
		SlowWindow: 50,
	}
}

// BacktestSettings holds the execution and risk settings of a run.
type BacktestSettings struct {
	StartingCash float64 `yaml:"starting_cash" json:"starting_cash" jsonschema:"title=Starting Cash,description=Cash available before the first bar,minimum=0" validate:"gte=0"`
	// CommissionPct is charged on the notional of each leg, e.g. 0.001 = 0.1%.
	CommissionPct float64 `yaml:"commission_pct" json:"commission_pct" jsonschema:"title=Commission,description=Commission rate charged on each leg,minimum=0" validate:"gte=0,lt=1"`
	// PositionSizePct is the fraction of available cash used per entry. Clamped to [0,1].
	PositionSizePct float64 `yaml:"position_size_pct" json:"position_size_pct" jsonschema:"title=Position Size,description=Fraction of cash committed per entry,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	// StopLossPct e.g. 0.02 = 2% stop from entry, 0 disables.
	StopLossPct float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" jsonschema:"title=Stop Loss,description=Loss from entry that triggers an exit. 0 disables,minimum=0" validate:"gte=0"`
	// TakeProfitPct e.g. 0.03 = 3% target from entry, 0 disables.
	TakeProfitPct float64 `yaml:"take_profit_pct" json:"take_profit_pct" jsonschema:"title=Take Profit,description=Gain from entry that triggers an exit. 0 disables,minimum=0" validate:"gte=0"`
}

// DefaultBacktestSettings returns 10k starting cash, 0.1% commission, full sizing and no risk controls.
func DefaultBacktestSettings() BacktestSettings {
	return BacktestSettings{
		StartingCash:    10000,
		CommissionPct:   0.001,
		PositionSizePct: 1.0,
		StopLossPct:     0,
		TakeProfitPct:   0,
	}
}
