package sweep

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/writer"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type reportRow struct {
	Fast                int             `csv:"fast"`
	Slow                int             `csv:"slow"`
	TrainReturnPct      writer.Decimal6 `csv:"train_return_pct"`
	TrainMaxDrawdownPct writer.Decimal6 `csv:"train_max_drawdown_pct"`
	TrainTrades         int             `csv:"train_trades"`
	TestReturnPct       writer.Decimal6 `csv:"test_return_pct"`
	TestMaxDrawdownPct  writer.Decimal6 `csv:"test_max_drawdown_pct"`
	TestTrades          int             `csv:"test_trades"`
}

// WriteCSV writes the ranked rows with six fractional digits.
func (r Report) WriteCSV(w io.Writer) error {
	rows := make([]reportRow, len(r.Rows))

	for i, row := range r.Rows {
		rows[i] = reportRow{
			Fast:                row.Fast,
			Slow:                row.Slow,
			TrainReturnPct:      writer.Decimal6(row.Train.TotalReturnPct),
			TrainMaxDrawdownPct: writer.Decimal6(row.Train.MaxDrawdownPct),
			TrainTrades:         row.Train.Trades,
			TestReturnPct:       writer.Decimal6(row.Test.TotalReturnPct),
			TestMaxDrawdownPct:  writer.Decimal6(row.Test.MaxDrawdownPct),
			TestTrades:          row.Test.Trades,
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to write sweep report", err)
	}

	return nil
}

// WriteCSVFile writes the report to path.
func (r Report) WriteCSVFile(path string) error {
	return writer.WriteFile(path, "report", r.WriteCSV)
}
