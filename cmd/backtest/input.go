package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/importer"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// loadSeries imports path as CSV, or through DuckDB when it has a .parquet extension.
// A dataset-fatal import is returned as an error after its diagnostics are printed to out.
func loadSeries(out io.Writer, path string, format types.DateFormat, log *logger.Logger) (types.ImportResult, error) {
	var result types.ImportResult

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		source, err := datasource.NewDataSource(":memory:", log)
		if err != nil {
			return types.ImportResult{}, err
		}
		defer source.Close()

		if err := source.Initialize(path); err != nil {
			return types.ImportResult{}, err
		}

		result = source.Load(optional.None[time.Time](), optional.None[time.Time]())
	} else {
		result = importer.NewImporter(log).ImportFile(path, format)
	}

	for _, issue := range result.Errors {
		fmt.Fprintln(out, ErrorStyle.Render(fmt.Sprintf("line %d: %s", issue.Line, issue.Message)))
	}

	if !result.Success {
		return result, errors.Newf(errors.ErrCodeImportFailed, "import failed for %s", path)
	}

	for _, issue := range result.Warnings {
		fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("line %d: %s", issue.Line, issue.Message)))
	}

	return result, nil
}

// issueMessages flattens import diagnostics for the run stats.
func issueMessages(issues []types.ImportIssue) []string {
	messages := make([]string, len(issues))
	for i, issue := range issues {
		messages[i] = fmt.Sprintf("line %d: %s", issue.Line, issue.Message)
	}

	return messages
}
