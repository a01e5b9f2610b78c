package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type FileWriterTestSuite struct {
	suite.Suite
}

func TestFileWriterSuite(t *testing.T) {
	suite.Run(t, new(FileWriterTestSuite))
}

func (suite *FileWriterTestSuite) TestWrite() {
	runDir := filepath.Join(suite.T().TempDir(), "SMA_CROSS", "2_3", "sample")

	w, err := NewFileWriter(runDir)
	suite.Require().NoError(err)
	suite.Equal(runDir, w.RunDir())

	stats, err := w.Write(RunOutput{
		DataPath:       "data/sample.csv",
		Series:         sampleSeries(),
		Params:         types.SmaParams{FastWindow: 2, SlowWindow: 3},
		Settings:       types.DefaultBacktestSettings(),
		Result:         sampleResult(),
		ImportWarnings: []string{"Timestamps were unsorted. Data was sorted ascending."},
	})
	suite.Require().NoError(err)

	for _, name := range []string{EquityFileName, TradesFileName, MetricsFileName, StatsFileName} {
		suite.FileExists(filepath.Join(runDir, name))
	}

	_, err = uuid.Parse(stats.ID)
	suite.NoError(err)
	suite.Equal(version.Version, stats.Version)
	suite.Equal(3, stats.Dataset.Rows)
	suite.Equal([]string{
		"Timestamps were unsorted. Data was sorted ascending.",
		"Open position force-closed at last bar close.",
	}, stats.Warnings)

	stored, err := types.ReadRunStats(filepath.Join(runDir, StatsFileName))
	suite.Require().NoError(err)
	suite.Require().Len(stored, 1)
	suite.Equal(stats.ID, stored[0].ID)
	suite.Equal(stats.Metrics, stored[0].Metrics)
	suite.Equal(filepath.Join(runDir, EquityFileName), stored[0].EquityFilePath)
}

func (suite *FileWriterTestSuite) TestNewFileWriterFailure() {
	blocker := filepath.Join(suite.T().TempDir(), "file")
	suite.Require().NoError(os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewFileWriter(filepath.Join(blocker, "run"))
	suite.Require().Error(err)
	suite.Equal(errors.ErrCodeBacktestNoResultsDir, errors.GetCode(err))
}
