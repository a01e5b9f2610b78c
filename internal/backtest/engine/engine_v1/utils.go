package engine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
)

// GetResultFolder lays results out as <root>/SMA_CROSS/<fast>_<slow>[/<start>_<end>]/<data file>.
func GetResultFolder(resultsRoot string, dataPath string, config BacktestConfig) string {
	strategyFolder := filepath.Join(resultsRoot, engine.StrategyName)
	paramsFolder := filepath.Join(strategyFolder, fmt.Sprintf("%d_%d", config.Strategy.FastWindow, config.Strategy.SlowWindow))

	var dataFolder string

	if config.StartTime.IsSome() || config.EndTime.IsSome() {
		startTimeStr := "all"
		endTimeStr := "all"

		if config.StartTime.IsSome() {
			startTimeStr = config.StartTime.Unwrap().Format("20060102")
		}

		if config.EndTime.IsSome() {
			endTimeStr = config.EndTime.Unwrap().Format("20060102")
		}

		timeRange := fmt.Sprintf("%s_%s", startTimeStr, endTimeStr)
		dataFolder = filepath.Join(paramsFolder, timeRange)
	} else {
		dataFolder = paramsFolder
	}

	dataFileName := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))

	return filepath.Join(dataFolder, dataFileName)
}
