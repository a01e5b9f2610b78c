package writer

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/timestamp"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MetricsSchemaVersion is bumped whenever the layout of the summary changes.
const MetricsSchemaVersion = 2

// Disclaimer is embedded in every metrics summary.
const Disclaimer = "Educational tool. Not investment advice. No live trading."

// Field order below is the key order of the emitted document.
type metricsDocument struct {
	SchemaVersion int             `json:"schema_version"`
	Dataset       datasetSection  `json:"dataset"`
	Strategy      strategySection `json:"strategy"`
	Settings      settingsSection `json:"settings"`
	Results       resultsSection  `json:"results"`
	Disclaimer    string          `json:"disclaimer"`
}

type datasetSection struct {
	Rows  int    `json:"rows"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type strategySection struct {
	Name string `json:"name"`
	Fast int    `json:"fast"`
	Slow int    `json:"slow"`
}

type settingsSection struct {
	StartingCash    json.Number `json:"starting_cash"`
	CommissionPct   json.Number `json:"commission_pct"`
	PositionSizePct json.Number `json:"position_size_pct"`
	StopLossPct     json.Number `json:"stop_loss_pct"`
	TakeProfitPct   json.Number `json:"take_profit_pct"`
}

type resultsSection struct {
	TotalReturnPct    json.Number `json:"total_return_pct"`
	TotalPnL          json.Number `json:"total_pnl"`
	MaxDrawdownPct    json.Number `json:"max_drawdown_pct"`
	Trades            int         `json:"trades"`
	WinRatePct        json.Number `json:"win_rate_pct"`
	AvgTradeReturnPct json.Number `json:"avg_trade_return_pct"`
}

// fixed renders v with ten fractional digits as a JSON number.
func fixed(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', 10, 64))
}

// WriteMetricsJSON writes the run summary document.
func WriteMetricsJSON(
	w io.Writer,
	dataset types.DatasetMetadata,
	params types.SmaParams,
	settings types.BacktestSettings,
	metrics types.Metrics,
) error {
	document := metricsDocument{
		SchemaVersion: MetricsSchemaVersion,
		Dataset: datasetSection{
			Rows:  dataset.Rows,
			Start: timestamp.Format(dataset.StartTime),
			End:   timestamp.Format(dataset.EndTime),
		},
		Strategy: strategySection{
			Name: engine.StrategyName,
			Fast: params.FastWindow,
			Slow: params.SlowWindow,
		},
		Settings: settingsSection{
			StartingCash:    fixed(settings.StartingCash),
			CommissionPct:   fixed(settings.CommissionPct),
			PositionSizePct: fixed(settings.PositionSizePct),
			StopLossPct:     fixed(settings.StopLossPct),
			TakeProfitPct:   fixed(settings.TakeProfitPct),
		},
		Results: resultsSection{
			TotalReturnPct:    fixed(metrics.TotalReturnPct),
			TotalPnL:          fixed(metrics.TotalPnL),
			MaxDrawdownPct:    fixed(metrics.MaxDrawdownPct),
			Trades:            metrics.Trades,
			WinRatePct:        fixed(metrics.WinRatePct),
			AvgTradeReturnPct: fixed(metrics.AvgTradeReturnPct),
		},
		Disclaimer: Disclaimer,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(document); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to write metrics json", err)
	}

	return nil
}

func WriteMetricsJSONFile(
	path string,
	dataset types.DatasetMetadata,
	params types.SmaParams,
	settings types.BacktestSettings,
	metrics types.Metrics,
) error {
	return WriteFile(path, "metrics", func(w io.Writer) error {
		return WriteMetricsJSON(w, dataset, params, settings, metrics)
	})
}
