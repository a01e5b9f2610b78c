package sweep

import (
	"context"
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Row is the outcome of one parameter pair on both halves of the series.
type Row struct {
	Fast  int
	Slow  int
	Train types.Metrics
	Test  types.Metrics
}

// Report is a ranked sweep. Rows are sorted best first.
type Report struct {
	TotalRows int
	TrainRows int
	TestRows  int
	Rows      []Row
	Summary   Summary
}

// Best returns the top ranked row. Run never returns a report without rows.
func (r Report) Best() Row {
	return r.Rows[0]
}

// Run backtests every pair of the grid on the train and test halves of series and ranks
// the pairs by train performance. Pairs whose slow window exceeds either half are skipped.
// The ranking does not depend on how the work was scheduled. onProgress is called after
// each finished pair, one call at a time; an error from it stops the sweep.
func Run(ctx context.Context, series types.Series, config Config, eng engine.Engine, onProgress engine.OnProcessDataCallback, log *logger.Logger) (Report, error) {
	log = logger.OrNop(log)

	if err := config.Validate(); err != nil {
		return Report{}, err
	}

	split, err := config.Split(len(series))
	if err != nil {
		return Report{}, err
	}

	train := series[:split]
	test := series[split:]

	var grid []types.SmaParams

	for _, params := range config.Grid() {
		if len(train) < params.SlowWindow || len(test) < params.SlowWindow {
			continue
		}

		grid = append(grid, params)
	}

	if len(grid) == 0 {
		return Report{}, errors.New(errors.ErrCodeSweepNoResults, "No valid parameter combinations produced results")
	}

	log.Debug("Starting parameter sweep",
		zap.Int("rows", len(series)),
		zap.Int("split", split),
		zap.Int("combinations", len(grid)),
		zap.Int("workers", config.Workers),
	)

	rows := make([]Row, len(grid))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)

	for i, params := range grid {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			trainResult := eng.Run(train, params, config.Settings)
			testResult := eng.Run(test, params, config.Settings)

			rows[i] = Row{
				Fast:  params.FastWindow,
				Slow:  params.SlowWindow,
				Train: trainResult.Metrics,
				Test:  testResult.Metrics,
			}

			mu.Lock()
			defer mu.Unlock()

			done++
			if onProgress != nil {
				return onProgress(done, len(grid))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeSweepCancelled, "parameter sweep cancelled", err)
	}

	Rank(rows)

	return Report{
		TotalRows: len(series),
		TrainRows: len(train),
		TestRows:  len(test),
		Rows:      rows,
		Summary:   Summarize(rows),
	}, nil
}

// Rank sorts rows by train return desc, then train max drawdown desc, then fast and
// slow ascending.
func Rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if a.Train.TotalReturnPct != b.Train.TotalReturnPct {
			return a.Train.TotalReturnPct > b.Train.TotalReturnPct
		}

		if a.Train.MaxDrawdownPct != b.Train.MaxDrawdownPct {
			return a.Train.MaxDrawdownPct > b.Train.MaxDrawdownPct
		}

		if a.Fast != b.Fast {
			return a.Fast < b.Fast
		}

		return a.Slow < b.Slow
	})
}
