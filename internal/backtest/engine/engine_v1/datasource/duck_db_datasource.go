package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/importer"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source backed by the database at path.
// Use ":memory:" for a throwaway database. Initialize attaches the market data.
func NewDataSource(path string, log *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger.OrNop(log),
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to drop existing view", err)
	}

	// Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * FROM read_parquet('%s', file_row_number = true);
	`, strings.ReplaceAll(path, "'", "''"))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read parquet file %s", path)
	}

	return nil
}

// window adds the optional inclusive time bounds to a query.
func window(query squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap().UTC()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap().UTC()})
	}

	return query
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	var count int

	err := window(d.sq.Select("COUNT(*)").From("market_data"), start, end).
		RunWith(d.db).
		QueryRow().
		Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	return count, nil
}

// sourceRow is a candle with its 0-based row position in the parquet file.
type sourceRow struct {
	number int64
	candle types.Candle
}

// rows yields the window in the given order. Ties on time keep file order.
func (d *DuckDBDataSource) rows(start optional.Option[time.Time], end optional.Option[time.Time], orderBy ...string) func(yield func(sourceRow, error) bool) {
	return func(yield func(sourceRow, error) bool) {
		rows, err := window(d.sq.Select("file_row_number", "time", "open", "high", "low", "close", "volume").From("market_data"), start, end).
			OrderBy(orderBy...).
			RunWith(d.db).
			Query()
		if err != nil {
			yield(sourceRow{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err))

			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				ts  time.Time
				row sourceRow
			)

			err := rows.Scan(&row.number, &ts, &row.candle.Open, &row.candle.High, &row.candle.Low, &row.candle.Close, &row.candle.Volume)
			if err != nil {
				yield(sourceRow{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan market data", err))

				return
			}

			row.candle.Time = ts.UTC().Unix()

			if !yield(row, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(sourceRow{}, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating market data", err))
		}
	}
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Candle, error) bool) {
	return func(yield func(types.Candle, error) bool) {
		d.logger.Debug("Reading market data from DuckDB")

		for row, err := range d.rows(start, end, "time ASC", "file_row_number ASC") {
			if !yield(row.candle, err) || err != nil {
				return
			}
		}
	}
}

// Load implements DataSource. Rows are read in file order so ordering repairs and
// last-wins dedup see the source sequence. Row numbers in diagnostics are 1-based
// positions in the parquet file.
func (d *DuckDBDataSource) Load(start optional.Option[time.Time], end optional.Option[time.Time]) types.ImportResult {
	var (
		result    types.ImportResult
		candles   []types.Candle
		rowIssues []types.ImportIssue
	)

	for row, err := range d.rows(start, end, "file_row_number ASC") {
		if err != nil {
			d.logger.Error("Failed to read market data", zap.Error(err))
			result.Errors = append(result.Errors, types.ImportIssue{Line: 0, Message: err.Error()})

			return result
		}

		if reason := importer.CheckCandle(row.candle); reason != "" {
			result.DroppedRows++
			rowIssues = append(rowIssues, types.ImportIssue{Line: int(row.number) + 1, Message: reason})

			continue
		}

		candles = append(candles, row.candle)
	}

	result = importer.Assemble(result, candles, rowIssues)

	d.logger.Debug("Loaded market data",
		zap.Bool("success", result.Success),
		zap.Int("rows", len(result.Series)),
		zap.Int("dropped", result.DroppedRows),
	)

	return result
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
