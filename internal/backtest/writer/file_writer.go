package writer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const (
	EquityFileName  = "equity.csv"
	TradesFileName  = "trades.csv"
	MetricsFileName = "metrics.json"
	StatsFileName   = "stats.yaml"
)

// RunOutput is everything needed to persist one backtest run.
type RunOutput struct {
	DataPath string
	Series   types.Series
	Params   types.SmaParams
	Settings types.BacktestSettings
	Result   types.BacktestResult
	// Warnings from the import that produced Series. Engine warnings are taken from Result.
	ImportWarnings []string
}

// FileWriter writes run outputs into a results directory.
type FileWriter struct {
	runDir string
}

// NewFileWriter creates runDir if needed.
func NewFileWriter(runDir string) (*FileWriter, error) {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeBacktestNoResultsDir, err, "failed to create results directory %s", runDir)
	}

	return &FileWriter{
		runDir: runDir,
	}, nil
}

// RunDir returns the directory outputs are written to.
func (w *FileWriter) RunDir() string {
	return w.runDir
}

// Write stores the equity curve, trades, metrics summary and run stats, and returns the stats.
func (w *FileWriter) Write(output RunOutput) (types.RunStats, error) {
	equityPath := filepath.Join(w.runDir, EquityFileName)
	tradesPath := filepath.Join(w.runDir, TradesFileName)
	metricsPath := filepath.Join(w.runDir, MetricsFileName)

	if err := WriteEquityCSVFile(equityPath, output.Series, output.Result); err != nil {
		return types.RunStats{}, err
	}

	if err := WriteTradesCSVFile(tradesPath, output.Result); err != nil {
		return types.RunStats{}, err
	}

	dataset := output.Series.Metadata()
	if err := WriteMetricsJSONFile(metricsPath, dataset, output.Params, output.Settings, output.Result.Metrics); err != nil {
		return types.RunStats{}, err
	}

	warnings := make([]string, 0, len(output.ImportWarnings)+len(output.Result.Warnings))
	warnings = append(warnings, output.ImportWarnings...)
	warnings = append(warnings, output.Result.Warnings...)

	stats := types.RunStats{
		ID:              uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		Version:         version.Version,
		DataPath:        output.DataPath,
		Dataset:         dataset,
		Params:          output.Params,
		Settings:        output.Settings,
		Metrics:         output.Result.Metrics,
		Warnings:        warnings,
		EquityFilePath:  equityPath,
		TradesFilePath:  tradesPath,
		MetricsFilePath: metricsPath,
	}

	if err := types.WriteRunStats(filepath.Join(w.runDir, StatsFileName), []types.RunStats{stats}); err != nil {
		return types.RunStats{}, errors.Wrap(errors.ErrCodeExportFailed, "failed to write run stats", err)
	}

	return stats, nil
}
