package writer

import (
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type equityRow struct {
	Timestamp ISOTime   `csv:"timestamp"`
	Equity    Decimal10 `csv:"equity"`
}

type tradeRow struct {
	EntryTime  ISOTime   `csv:"entry_time"`
	EntryPrice Decimal10 `csv:"entry_price"`
	ExitTime   ISOTime   `csv:"exit_time"`
	ExitPrice  Decimal10 `csv:"exit_price"`
	Quantity   int       `csv:"qty"`
	PnL        Decimal10 `csv:"pnl"`
	ReturnPct  Decimal10 `csv:"return_pct"`
}

// WriteEquityCSV writes one timestamp,equity row per candle. Rows beyond the shorter of
// the series and the equity curve are not written.
func WriteEquityCSV(w io.Writer, series types.Series, result types.BacktestResult) error {
	count := min(len(series), len(result.Equity))
	rows := make([]equityRow, count)

	for i := range count {
		rows[i] = equityRow{
			Timestamp: ISOTime(series[i].Time),
			Equity:    Decimal10(result.Equity[i]),
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to write equity csv", err)
	}

	return nil
}

// WriteTradesCSV writes one row per closed trade in execution order.
func WriteTradesCSV(w io.Writer, result types.BacktestResult) error {
	rows := make([]tradeRow, len(result.Trades))

	for i, trade := range result.Trades {
		rows[i] = tradeRow{
			EntryTime:  ISOTime(trade.EntryTime),
			EntryPrice: Decimal10(trade.EntryPrice),
			ExitTime:   ISOTime(trade.ExitTime),
			ExitPrice:  Decimal10(trade.ExitPrice),
			Quantity:   trade.Quantity,
			PnL:        Decimal10(trade.PnL),
			ReturnPct:  Decimal10(trade.ReturnPct),
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to write trades csv", err)
	}

	return nil
}

func WriteEquityCSVFile(path string, series types.Series, result types.BacktestResult) error {
	return WriteFile(path, "equity", func(w io.Writer) error {
		return WriteEquityCSV(w, series, result)
	})
}

func WriteTradesCSVFile(path string, result types.BacktestResult) error {
	return WriteFile(path, "trades", func(w io.Writer) error {
		return WriteTradesCSV(w, result)
	})
}

// WriteFile creates path and hands it to write, reporting the first error from either
// the write or the close.
func WriteFile(path string, kind string, write func(w io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to open %s output path: %s", kind, path)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(errors.ErrCodeExportFailed, closeErr, "failed to close %s output path: %s", kind, path)
		}
	}()

	return write(file)
}
