package importer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"go.uber.org/zap"
)

// maxLineSize bounds a single CSV line.
const maxLineSize = 1024 * 1024

// Importer turns delimited OHLCV text into a validated Series.
type Importer struct {
	log *logger.Logger
}

func NewImporter(log *logger.Logger) *Importer {
	return &Importer{
		log: logger.OrNop(log),
	}
}

// ImportFile opens path and imports it. An unopenable file yields a failed result
// with a single dataset-level error.
func (i *Importer) ImportFile(path string, format types.DateFormat) types.ImportResult {
	file, err := os.Open(path)
	if err != nil {
		i.log.Warn("Failed to open CSV file", zap.String("path", path), zap.Error(err))

		return types.ImportResult{
			Errors: []types.ImportIssue{{Line: 0, Message: "Unable to open CSV file: " + path}},
		}
	}
	defer file.Close()

	return i.Import(file, format)
}

// Import reads a header line followed by data rows from r.
func (i *Importer) Import(r io.Reader, format types.DateFormat) types.ImportResult {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return i.run(scanner.Scan, scanner.Text, scanner.Err, format)
}

// ImportLines imports rows already held in memory. lines[0] is the header.
func (i *Importer) ImportLines(lines []string, format types.DateFormat) types.ImportResult {
	cursor := -1

	next := func() bool {
		cursor++

		return cursor < len(lines)
	}
	text := func() string {
		return lines[cursor]
	}

	return i.run(next, text, func() error { return nil }, format)
}

func (i *Importer) run(next func() bool, text func() string, readErr func() error, format types.DateFormat) types.ImportResult {
	var result types.ImportResult

	if !next() {
		if err := readErr(); err != nil {
			return i.readFailure(result, 1, err)
		}

		result.Errors = append(result.Errors, types.ImportIssue{Line: 1, Message: "CSV is empty"})

		return result
	}

	layout, ok := resolveColumns(splitLine(text()))
	if !ok {
		i.log.Warn("CSV header is missing required columns")
		result.Errors = append(result.Errors, types.ImportIssue{Line: 1, Message: missingColumnsMessage})

		return result
	}

	var (
		candles   []types.Candle
		rowIssues []types.ImportIssue
		line      = 1
	)

	for next() {
		line++

		raw := text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		candle, reason := layout.admit(splitLine(raw), format)
		if reason != "" {
			result.DroppedRows++
			rowIssues = append(rowIssues, types.ImportIssue{Line: line, Message: reason})

			continue
		}

		candles = append(candles, candle)
	}

	if err := readErr(); err != nil {
		return i.readFailure(result, line+1, err)
	}

	result = Assemble(result, candles, rowIssues)
	if !result.Success {
		i.log.Warn("Import produced no usable rows", zap.Int("dropped", result.DroppedRows))

		return result
	}

	i.log.Debug("Import finished",
		zap.Int("rows", len(result.Series)),
		zap.Int("dropped", result.DroppedRows),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result
}

// Assemble classifies admitted candles and row diagnostics into a final result.
// result carries DroppedRows and any earlier issues. With no candles the result fails
// and every row diagnostic becomes an error. Otherwise the candles are normalized and
// the row diagnostics follow the repair warnings.
func Assemble(result types.ImportResult, candles []types.Candle, rowIssues []types.ImportIssue) types.ImportResult {
	if len(candles) == 0 {
		result.Success = false
		result.PartialSuccess = false
		result.Series = nil
		result.Errors = append(result.Errors, types.ImportIssue{
			Line:    0,
			Message: "Import failed: zero valid rows remain after filtering",
		})
		result.Errors = append(result.Errors, rowIssues...)

		return result
	}

	series, repairs := Normalize(candles)

	result.Success = true
	result.PartialSuccess = result.DroppedRows > 0
	result.Series = series
	result.Warnings = append(result.Warnings, repairs...)
	result.Warnings = append(result.Warnings, rowIssues...)

	return result
}

func (i *Importer) readFailure(result types.ImportResult, line int, err error) types.ImportResult {
	i.log.Error("Failed to read CSV input", zap.Int("line", line), zap.Error(err))

	result.Success = false
	result.PartialSuccess = false
	result.Series = nil
	result.Errors = append(result.Errors, types.ImportIssue{Line: line, Message: "Failed to read CSV: " + err.Error()})

	return result
}
