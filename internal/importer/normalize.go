package importer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Normalize orders candles ascending by time and collapses duplicate instants, keeping
// the last occurrence. candles is sorted in place; the returned issues are dataset-level
// warnings describing the repairs.
func Normalize(candles []types.Candle) (types.Series, []types.ImportIssue) {
	var warnings []types.ImportIssue

	if !isAscending(candles) {
		warnings = append(warnings, types.ImportIssue{
			Line:    0,
			Message: "Timestamps were unsorted. Data was sorted ascending.",
		})

		// Stable so that, among equal instants, the later source row stays last.
		slices.SortStableFunc(candles, func(a, b types.Candle) int {
			return cmp.Compare(a.Time, b.Time)
		})
	}

	deduped := make(types.Series, 0, len(candles))
	duplicates := 0

	for _, c := range candles {
		if n := len(deduped); n > 0 && deduped[n-1].Time == c.Time {
			deduped[n-1] = c
			duplicates++

			continue
		}

		deduped = append(deduped, c)
	}

	if duplicates > 0 {
		warnings = append(warnings, types.ImportIssue{
			Line:    0,
			Message: fmt.Sprintf("Duplicate timestamps detected. Kept last occurrence for %d row(s).", duplicates),
		})
	}

	return deduped, warnings
}

func isAscending(candles []types.Candle) bool {
	for i := 1; i < len(candles); i++ {
		if candles[i].Time < candles[i-1].Time {
			return false
		}
	}

	return true
}
