package importer

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

type NormalizeTestSuite struct {
	suite.Suite
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}

func candleAt(ts int64, price float64) types.Candle {
	return types.Candle{Time: ts, Open: price, High: price, Low: price, Close: price, Volume: 1}
}

func (suite *NormalizeTestSuite) TestAlreadyNormalized() {
	series, warnings := Normalize([]types.Candle{candleAt(1, 1), candleAt(2, 2), candleAt(3, 3)})

	suite.Len(series, 3)
	suite.Empty(warnings)
}

func (suite *NormalizeTestSuite) TestEmpty() {
	series, warnings := Normalize(nil)

	suite.Empty(series)
	suite.Empty(warnings)
}

func (suite *NormalizeTestSuite) TestSortsAndKeepsLastDuplicate() {
	series, warnings := Normalize([]types.Candle{
		candleAt(3, 30),
		candleAt(1, 10),
		candleAt(3, 31),
		candleAt(2, 20),
		candleAt(3, 32),
	})

	suite.Equal(types.Series{candleAt(1, 10), candleAt(2, 20), candleAt(3, 32)}, series)
	suite.Equal([]types.ImportIssue{
		{Line: 0, Message: "Timestamps were unsorted. Data was sorted ascending."},
		{Line: 0, Message: "Duplicate timestamps detected. Kept last occurrence for 2 row(s)."},
	}, warnings)
}

func (suite *NormalizeTestSuite) TestSortedDuplicatesOnly() {
	series, warnings := Normalize([]types.Candle{candleAt(1, 1), candleAt(1, 2), candleAt(2, 3)})

	suite.Equal(types.Series{candleAt(1, 2), candleAt(2, 3)}, series)
	suite.Equal([]types.ImportIssue{
		{Line: 0, Message: "Duplicate timestamps detected. Kept last occurrence for 1 row(s)."},
	}, warnings)
}
