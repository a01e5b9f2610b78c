package writer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

type MetricsJSONTestSuite struct {
	suite.Suite
}

func TestMetricsJSONSuite(t *testing.T) {
	suite.Run(t, new(MetricsJSONTestSuite))
}

const expectedMetricsJSON = `{
  "schema_version": 2,
  "dataset": {
    "rows": 3,
    "start": "2024-01-01T00:00:00Z",
    "end": "2024-01-03T00:00:00Z"
  },
  "strategy": {
    "name": "SMA_CROSS",
    "fast": 2,
    "slow": 3
  },
  "settings": {
    "starting_cash": 10000.0000000000,
    "commission_pct": 0.0010000000,
    "position_size_pct": 1.0000000000,
    "stop_loss_pct": 0.0000000000,
    "take_profit_pct": 0.0000000000
  },
  "results": {
    "total_return_pct": -2.4987654321,
    "total_pnl": -249.8765432110,
    "max_drawdown_pct": -2.4987654300,
    "trades": 1,
    "win_rate_pct": 0.0000000000,
    "avg_trade_return_pct": -7.1428571429
  },
  "disclaimer": "Educational tool. Not investment advice. No live trading."
}
`

func (suite *MetricsJSONTestSuite) TestWriteMetricsJSON() {
	var buf bytes.Buffer

	err := WriteMetricsJSON(&buf,
		sampleSeries().Metadata(),
		types.SmaParams{FastWindow: 2, SlowWindow: 3},
		types.DefaultBacktestSettings(),
		sampleResult().Metrics,
	)
	suite.Require().NoError(err)
	suite.Equal(expectedMetricsJSON, buf.String())

	var decoded map[string]any
	suite.Require().NoError(json.Unmarshal(buf.Bytes(), &decoded))
	suite.Equal(float64(MetricsSchemaVersion), decoded["schema_version"])
}

func (suite *MetricsJSONTestSuite) TestWriteMetricsJSONFile() {
	path := filepath.Join(suite.T().TempDir(), "metrics.json")

	err := WriteMetricsJSONFile(path,
		sampleSeries().Metadata(),
		types.SmaParams{FastWindow: 2, SlowWindow: 3},
		types.DefaultBacktestSettings(),
		sampleResult().Metrics,
	)
	suite.Require().NoError(err)

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Equal(expectedMetricsJSON, string(content))
}

func (suite *MetricsJSONTestSuite) TestEmptyDataset() {
	var buf bytes.Buffer

	err := WriteMetricsJSON(&buf, types.Series{}.Metadata(), types.DefaultSmaParams(), types.DefaultBacktestSettings(), types.Metrics{})
	suite.Require().NoError(err)
	suite.Contains(buf.String(), `"start": "1970-01-01T00:00:00Z"`)
	suite.Contains(buf.String(), `"rows": 0`)
}
