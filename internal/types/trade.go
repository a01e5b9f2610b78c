package types

// Trade is a closed long round trip.
type Trade struct {
	EntryTime  int64   `csv:"entry_time" yaml:"entry_time" json:"entry_time"`
	EntryPrice float64 `csv:"entry_price" yaml:"entry_price" json:"entry_price"`
	ExitTime   int64   `csv:"exit_time" yaml:"exit_time" json:"exit_time"`
	ExitPrice  float64 `csv:"exit_price" yaml:"exit_price" json:"exit_price"`
	Quantity   int     `csv:"qty" yaml:"qty" json:"qty"`
	// PnL is the realized profit net of the commission on both legs.
	// For example, 10 shares bought at 100 and sold at 110 with 0.1% commission
	// gives (110-100)*10 - 100*10*0.001 - 110*10*0.001 = 97.9.
	PnL float64 `csv:"pnl" yaml:"pnl" json:"pnl"`
	// ReturnPct is the gross price return as a fraction: (exit-entry)/entry.
	ReturnPct float64 `csv:"return_pct" yaml:"return_pct" json:"return_pct"`
}

// IsWin reports whether the trade made money after commission.
func (t Trade) IsWin() bool {
	return t.PnL > 0
}

// HoldingSeconds returns the time between entry and exit.
func (t Trade) HoldingSeconds() int64 {
	return t.ExitTime - t.EntryTime
}
