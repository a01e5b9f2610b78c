package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunStats is the human readable summary of one backtest run.
type RunStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Version of the engine that produced the run.
	Version string `yaml:"version" json:"version"`
	// DataPath is the path to the market data file used for this backtest.
	DataPath string           `yaml:"data_path" json:"data_path"`
	Dataset  DatasetMetadata  `yaml:"dataset" json:"dataset"`
	Params   SmaParams        `yaml:"params" json:"params"`
	Settings BacktestSettings `yaml:"settings" json:"settings"`
	Metrics  Metrics          `yaml:"metrics" json:"metrics"`
	// Warnings emitted by the importer and the engine, in order.
	Warnings []string `yaml:"warnings" json:"warnings"`
	// Paths of the files written next to the stats.
	EquityFilePath  string `yaml:"equity_file_path" json:"equity_file_path"`
	TradesFilePath  string `yaml:"trades_file_path" json:"trades_file_path"`
	MetricsFilePath string `yaml:"metrics_file_path" json:"metrics_file_path"`
}

func WriteRunStats(path string, stats []RunStats) error {
	// Marshal the struct to YAML
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal run stats to YAML: %w", err)
	}

	// Write the YAML data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run stats to file: %w", err)
	}

	return nil
}

// ReadRunStats loads stats previously written by WriteRunStats.
func ReadRunStats(path string) ([]RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run stats: %w", err)
	}

	var stats []RunStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run stats: %w", err)
	}

	return stats, nil
}
