package types

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
	series Series
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) SetupTest() {
	suite.series = Series{
		{Time: 100, Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
		{Time: 200, Open: 2, High: 2, Low: 2, Close: 2, Volume: 1},
		{Time: 300, Open: 3, High: 3, Low: 3, Close: 3, Volume: 1},
		{Time: 400, Open: 4, High: 4, Low: 4, Close: 4, Volume: 1},
	}
}

func (suite *SeriesTestSuite) TestMetadata() {
	suite.Equal(DatasetMetadata{Rows: 4, StartTime: 100, EndTime: 400}, suite.series.Metadata())
	suite.Equal(DatasetMetadata{}, Series(nil).Metadata())
}

func (suite *SeriesTestSuite) TestBetween() {
	tests := []struct {
		name     string
		start    optional.Option[int64]
		end      optional.Option[int64]
		expected []int64
	}{
		{"open bounds", optional.None[int64](), optional.None[int64](), []int64{100, 200, 300, 400}},
		{"inclusive bounds", optional.Some[int64](200), optional.Some[int64](300), []int64{200, 300}},
		{"start between candles", optional.Some[int64](150), optional.None[int64](), []int64{200, 300, 400}},
		{"end before first", optional.None[int64](), optional.Some[int64](50), []int64{}},
		{"start after last", optional.Some[int64](500), optional.None[int64](), []int64{}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			window := suite.series.Between(tc.start, tc.end)
			times := make([]int64, 0, len(window))
			for _, c := range window {
				times = append(times, c.Time)
			}
			suite.Equal(tc.expected, times)
		})
	}
}

func (suite *SeriesTestSuite) TestCloses() {
	suite.Equal([]float64{1, 2, 3, 4}, suite.series.Closes())
}

func (suite *SeriesTestSuite) TestParseDateFormat() {
	suite.Equal(DateFormatMDY, ParseDateFormat("mdy"))
	suite.Equal(DateFormatDMY, ParseDateFormat(" DMY "))
	suite.Equal(DateFormatISO, ParseDateFormat("iso"))
	suite.Equal(DateFormatISO, ParseDateFormat("unknown"))
}

func (suite *SeriesTestSuite) TestSmaParamsIsValid() {
	suite.True(SmaParams{FastWindow: 2, SlowWindow: 3}.IsValid())
	suite.False(SmaParams{FastWindow: 3, SlowWindow: 3}.IsValid())
	suite.False(SmaParams{FastWindow: 0, SlowWindow: 3}.IsValid())
	suite.False(SmaParams{FastWindow: 5, SlowWindow: 3}.IsValid())
	suite.True(DefaultSmaParams().IsValid())
}

func (suite *SeriesTestSuite) TestTradeHelpers() {
	trade := Trade{EntryTime: 100, ExitTime: 400, PnL: 0.01}
	suite.True(trade.IsWin())
	suite.Equal(int64(300), trade.HoldingSeconds())
	suite.False(Trade{PnL: 0}.IsWin())
}

func (suite *SeriesTestSuite) TestFinalEquity() {
	suite.Equal(42.0, BacktestResult{}.FinalEquity(42))
	suite.Equal(7.0, BacktestResult{Equity: []float64{1, 7}}.FinalEquity(42))
}
