package datasource

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	dataSource DataSource
	baseTime   time.Time
	series     types.Series
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

// createTestSeries returns ten one-minute candles. The candle at index 5 has a zero low.
func createTestSeries(baseTime time.Time) types.Series {
	series := make(types.Series, 10)
	for i := range series {
		series[i] = types.Candle{
			Time:   baseTime.Add(time.Duration(i) * time.Minute).Unix(),
			Open:   100.0 + float64(i),
			High:   101.0 + float64(i),
			Low:    99.0 + float64(i),
			Close:  100.5 + float64(i),
			Volume: 1000.0 + float64(i*100),
		}
	}

	series[5].Low = 0

	return series
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	suite.baseTime = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	suite.series = createTestSeries(suite.baseTime)

	path := filepath.Join(suite.T().TempDir(), "test.parquet")
	suite.Require().NoError(WriteParquet(path, "AAPL", suite.series))

	ds, err := NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(ds.Initialize(path))

	suite.dataSource = ds
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.dataSource.Close())
}

func (suite *DuckDBDataSourceTestSuite) at(minute int) optional.Option[time.Time] {
	return optional.Some(suite.baseTime.Add(time.Duration(minute) * time.Minute))
}

func (suite *DuckDBDataSourceTestSuite) TestCount() {
	tests := []struct {
		name     string
		start    optional.Option[time.Time]
		end      optional.Option[time.Time]
		expected int
	}{
		{name: "unbounded", start: optional.None[time.Time](), end: optional.None[time.Time](), expected: 10},
		{name: "inclusive window", start: suite.at(3), end: suite.at(6), expected: 4},
		{name: "start only", start: suite.at(8), end: optional.None[time.Time](), expected: 2},
		{name: "end only", start: optional.None[time.Time](), end: suite.at(0), expected: 1},
		{name: "empty window", start: suite.at(20), end: suite.at(30), expected: 0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			count, err := suite.dataSource.Count(tc.start, tc.end)
			suite.NoError(err)
			suite.Equal(tc.expected, count)
		})
	}
}

func (suite *DuckDBDataSourceTestSuite) TestReadAllRoundTrip() {
	var candles []types.Candle

	for candle, err := range suite.dataSource.ReadAll(optional.None[time.Time](), optional.None[time.Time]()) {
		suite.Require().NoError(err)
		candles = append(candles, candle)
	}

	suite.Equal([]types.Candle(suite.series), candles)
}

func (suite *DuckDBDataSourceTestSuite) TestReadAllStopsEarly() {
	read := 0

	for _, err := range suite.dataSource.ReadAll(optional.None[time.Time](), optional.None[time.Time]()) {
		suite.Require().NoError(err)

		read++
		if read == 3 {
			break
		}
	}

	suite.Equal(3, read)
}

func (suite *DuckDBDataSourceTestSuite) TestLoadDropsInvalidRows() {
	result := suite.dataSource.Load(optional.None[time.Time](), optional.None[time.Time]())

	suite.True(result.Success)
	suite.True(result.PartialSuccess)
	suite.Equal(1, result.DroppedRows)
	suite.Len(result.Series, 9)
	suite.Empty(result.Errors)
	suite.Equal([]types.ImportIssue{{Line: 6, Message: "Dropped row: prices must be > 0"}}, result.Warnings)

	for _, c := range result.Series {
		suite.NotEqual(suite.series[5].Time, c.Time)
	}
}

func (suite *DuckDBDataSourceTestSuite) TestLoadWindow() {
	result := suite.dataSource.Load(suite.at(1), suite.at(4))

	suite.True(result.Success)
	suite.False(result.PartialSuccess)
	suite.Equal(suite.series[1:5], result.Series)
}

func (suite *DuckDBDataSourceTestSuite) TestLoadEmptyWindowFails() {
	result := suite.dataSource.Load(suite.at(20), optional.None[time.Time]())

	suite.False(result.Success)
	suite.Nil(result.Series)
	suite.Equal([]types.ImportIssue{{Line: 0, Message: "Import failed: zero valid rows remain after filtering"}}, result.Errors)
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeMissingFile() {
	ds, err := NewDataSource(":memory:", nil)
	suite.Require().NoError(err)
	defer ds.Close()

	err = ds.Initialize(filepath.Join(suite.T().TempDir(), "missing.parquet"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

func (suite *DuckDBDataSourceTestSuite) TestLoadRepairsFileOrder() {
	at := func(minute int) int64 {
		return suite.baseTime.Add(time.Duration(minute) * time.Minute).Unix()
	}

	unordered := types.Series{
		{Time: at(2), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 1},
		{Time: at(1), Open: 20, High: 21, Low: 19, Close: 20.5, Volume: 2},
		{Time: at(2), Open: 30, High: 31, Low: 29, Close: 30.5, Volume: 3},
		{Time: at(3), Open: 40, High: 41, Low: 0, Close: 40.5, Volume: 4},
		{Time: at(2), Open: 50, High: 51, Low: 49, Close: 50.5, Volume: 5},
	}

	path := filepath.Join(suite.T().TempDir(), "unordered.parquet")
	suite.Require().NoError(WriteParquet(path, "AAPL", unordered))

	ds, err := NewDataSource(":memory:", nil)
	suite.Require().NoError(err)
	defer ds.Close()
	suite.Require().NoError(ds.Initialize(path))

	result := ds.Load(optional.None[time.Time](), optional.None[time.Time]())

	suite.True(result.Success)
	suite.True(result.PartialSuccess)
	suite.Equal(types.Series{unordered[1], unordered[4]}, result.Series)
	suite.Equal([]types.ImportIssue{
		{Line: 0, Message: "Timestamps were unsorted. Data was sorted ascending."},
		{Line: 0, Message: "Duplicate timestamps detected. Kept last occurrence for 2 row(s)."},
		{Line: 4, Message: "Dropped row: prices must be > 0"},
	}, result.Warnings)

	var ordered []types.Candle
	for candle, err := range ds.ReadAll(optional.None[time.Time](), optional.None[time.Time]()) {
		suite.Require().NoError(err)
		ordered = append(ordered, candle)
	}

	suite.Equal([]types.Candle{unordered[1], unordered[0], unordered[2], unordered[4], unordered[3]}, ordered)
}
