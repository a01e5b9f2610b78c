package sweep

import (
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Config describes a fast/slow grid and how the series is split for it.
type Config struct {
	// TrainRatio is the share of the series used for ranking. The rest is held out.
	TrainRatio float64 `yaml:"train_ratio" json:"train_ratio" validate:"gt=0,lt=1"`
	FastMin    int     `yaml:"fast_min" json:"fast_min" validate:"gt=0"`
	FastMax    int     `yaml:"fast_max" json:"fast_max" validate:"gtefield=FastMin"`
	SlowMin    int     `yaml:"slow_min" json:"slow_min" validate:"gt=0"`
	SlowMax    int     `yaml:"slow_max" json:"slow_max" validate:"gtefield=SlowMin"`
	Step       int     `yaml:"step" json:"step" validate:"gt=0"`
	// Workers bounds the number of backtests running at once.
	Workers  int                    `yaml:"workers" json:"workers" validate:"gt=0"`
	Settings types.BacktestSettings `yaml:"settings" json:"settings"`
}

// DefaultConfig returns the 5..80 by 20..300 grid in steps of 5 on a 70/30 split.
func DefaultConfig() Config {
	return Config{
		TrainRatio: 0.7,
		FastMin:    5,
		FastMax:    80,
		SlowMin:    20,
		SlowMax:    300,
		Step:       5,
		Workers:    runtime.NumCPU(),
		Settings:   types.DefaultBacktestSettings(),
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeSweepInvalidRange, "invalid sweep config", err)
	}

	return nil
}

// Grid lists the fast/slow pairs in iteration order, fast outer and slow inner.
// Pairs that are not valid crossover parameters are left out.
func (c Config) Grid() []types.SmaParams {
	var grid []types.SmaParams

	for fast := c.FastMin; fast <= c.FastMax; fast += c.Step {
		for slow := c.SlowMin; slow <= c.SlowMax; slow += c.Step {
			params := types.SmaParams{FastWindow: fast, SlowWindow: slow}
			if !params.IsValid() {
				continue
			}

			grid = append(grid, params)
		}
	}

	return grid
}

// Split returns the train/test split index for n rows. Both halves must hold at least
// two rows.
func (c Config) Split(n int) (int, error) {
	split := int(float64(n) * c.TrainRatio)
	if split < 2 || split >= n-1 {
		return 0, errors.NewInsufficientDataErrorf(2, split, "sweep",
			"Dataset too short for requested split ratio (rows=%d, split=%d)", n, split)
	}

	return split, nil
}
