package engine

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite is a test suite for utils package
type UtilsTestSuite struct {
	suite.Suite
}

// TestUtilsSuite runs the test suite
func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestGetResultFolder() {
	tests := []struct {
		name         string
		dataPath     string
		params       types.SmaParams
		startTime    optional.Option[time.Time]
		endTime      optional.Option[time.Time]
		expectedPath string
	}{
		{
			name:         "Basic case without time range",
			dataPath:     "/path/to/data.csv",
			params:       types.SmaParams{FastWindow: 20, SlowWindow: 50},
			startTime:    optional.None[time.Time](),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/SMA_CROSS/20_50/data",
		},
		{
			name:         "Case with time range",
			dataPath:     "/path/to/data.parquet",
			params:       types.SmaParams{FastWindow: 2, SlowWindow: 3},
			startTime:    optional.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			endTime:      optional.Some(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
			expectedPath: "/results/SMA_CROSS/2_3/20230101_20231231/data",
		},
		{
			name:         "Case with only start time",
			dataPath:     "/path/to/AAPL.csv",
			params:       types.SmaParams{FastWindow: 5, SlowWindow: 10},
			startTime:    optional.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/SMA_CROSS/5_10/20230101_all/AAPL",
		},
		{
			name:         "Case with only end time",
			dataPath:     "relative/data.csv",
			params:       types.SmaParams{FastWindow: 5, SlowWindow: 10},
			startTime:    optional.None[time.Time](),
			endTime:      optional.Some(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
			expectedPath: "/results/SMA_CROSS/5_10/all_20231231/data",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := DefaultConfig()
			config.Strategy = tc.params
			config.StartTime = tc.startTime
			config.EndTime = tc.endTime

			suite.Equal(tc.expectedPath, GetResultFolder("/results", tc.dataPath, config))
		})
	}
}
