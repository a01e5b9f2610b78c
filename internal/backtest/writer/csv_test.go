package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CSVWriterTestSuite struct {
	suite.Suite
}

func TestCSVWriterSuite(t *testing.T) {
	suite.Run(t, new(CSVWriterTestSuite))
}

func sampleSeries() types.Series {
	return types.Series{
		{Time: 1704067200, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Time: 1704153600, Open: 10.5, High: 12, Low: 10, Close: 11.25, Volume: 120},
		{Time: 1704240000, Open: 11.25, High: 11.5, Low: 9.5, Close: 9.75, Volume: 90},
	}
}

func sampleResult() types.BacktestResult {
	return types.BacktestResult{
		Equity:   []float64{10000, 10000, 9750.123456789012},
		Drawdown: []float64{0, 0, -0.0249876543},
		Trades: []types.Trade{{
			EntryTime:  1704153600,
			EntryPrice: 10.5,
			ExitTime:   1704240000,
			ExitPrice:  9.75,
			Quantity:   950,
			PnL:        -731.8875,
			ReturnPct:  -0.07142857142857142,
		}},
		Metrics: types.Metrics{
			TotalReturnPct:    -2.4987654321,
			TotalPnL:          -249.876543211,
			Trades:            1,
			WinRatePct:        0,
			AvgTradeReturnPct: -7.142857142857142,
			MaxDrawdownPct:    -2.49876543,
		},
		Warnings: []string{"Open position force-closed at last bar close."},
	}
}

func (suite *CSVWriterTestSuite) TestWriteEquityCSV() {
	var buf bytes.Buffer
	suite.Require().NoError(WriteEquityCSV(&buf, sampleSeries(), sampleResult()))

	suite.Equal("timestamp,equity\n"+
		"2024-01-01T00:00:00Z,10000.0000000000\n"+
		"2024-01-02T00:00:00Z,10000.0000000000\n"+
		"2024-01-03T00:00:00Z,9750.1234567890\n", buf.String())
}

func (suite *CSVWriterTestSuite) TestWriteEquityCSVTruncatesToShorter() {
	result := sampleResult()
	result.Equity = result.Equity[:1]

	var buf bytes.Buffer
	suite.Require().NoError(WriteEquityCSV(&buf, sampleSeries(), result))

	suite.Equal("timestamp,equity\n2024-01-01T00:00:00Z,10000.0000000000\n", buf.String())
}

func (suite *CSVWriterTestSuite) TestWriteTradesCSV() {
	var buf bytes.Buffer
	suite.Require().NoError(WriteTradesCSV(&buf, sampleResult()))

	suite.Equal("entry_time,entry_price,exit_time,exit_price,qty,pnl,return_pct\n"+
		"2024-01-02T00:00:00Z,10.5000000000,2024-01-03T00:00:00Z,9.7500000000,950,-731.8875000000,-0.0714285714\n",
		buf.String())
}

func (suite *CSVWriterTestSuite) TestWriteTradesCSVEmpty() {
	var buf bytes.Buffer
	suite.Require().NoError(WriteTradesCSV(&buf, types.BacktestResult{}))

	suite.Equal("entry_time,entry_price,exit_time,exit_price,qty,pnl,return_pct\n", buf.String())
}

func (suite *CSVWriterTestSuite) TestFileVariants() {
	dir := suite.T().TempDir()
	equityPath := filepath.Join(dir, "equity.csv")
	tradesPath := filepath.Join(dir, "trades.csv")

	suite.Require().NoError(WriteEquityCSVFile(equityPath, sampleSeries(), sampleResult()))
	suite.Require().NoError(WriteTradesCSVFile(tradesPath, sampleResult()))

	equity, err := os.ReadFile(equityPath)
	suite.Require().NoError(err)
	suite.Contains(string(equity), "2024-01-03T00:00:00Z,9750.1234567890")

	trades, err := os.ReadFile(tradesPath)
	suite.Require().NoError(err)
	suite.Contains(string(trades), ",950,")
}

func (suite *CSVWriterTestSuite) TestUnwritablePath() {
	path := filepath.Join(suite.T().TempDir(), "missing", "equity.csv")

	err := WriteEquityCSVFile(path, sampleSeries(), sampleResult())
	suite.Require().Error(err)
	suite.Equal(errors.ErrCodeExportFailed, errors.GetCode(err))
	suite.Contains(err.Error(), "failed to open equity output path")
}

func (suite *CSVWriterTestSuite) TestDecimalFormats() {
	ten, err := Decimal10(-0.5).MarshalCSV()
	suite.NoError(err)
	suite.Equal("-0.5000000000", ten)

	six, err := Decimal6(1.23456789).MarshalCSV()
	suite.NoError(err)
	suite.Equal("1.234568", six)

	iso, err := ISOTime(0).MarshalCSV()
	suite.NoError(err)
	suite.Equal("1970-01-01T00:00:00Z", iso)
}
