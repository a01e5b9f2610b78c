package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 1000

// WriteParquet stores series as a Parquet file with the columns
// time, symbol, open, high, low, close, volume, which is the layout Initialize reads.
// Rows keep the order of series.
func WriteParquet(path string, symbol string, series types.Series) error {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			seq BIGINT,
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to create market_data table", err)
	}

	sq := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	for offset := 0; offset < len(series); offset += insertBatchSize {
		batch := series[offset:min(offset+insertBatchSize, len(series))]

		insert := sq.Insert("market_data").Columns("seq", "time", "symbol", "open", "high", "low", "close", "volume")
		for i, c := range batch {
			insert = insert.Values(offset+i, time.Unix(c.Time, 0).UTC(), symbol, c.Open, c.High, c.Low, c.Close, c.Volume)
		}

		if _, err := insert.RunWith(db).Exec(); err != nil {
			return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to insert rows %d-%d", offset, offset+len(batch))
		}
	}

	// Squirrel doesn't support COPY
	_, err = db.Exec(fmt.Sprintf(`COPY (SELECT time, symbol, open, high, low, close, volume FROM market_data ORDER BY seq) TO '%s' (FORMAT PARQUET)`, strings.ReplaceAll(path, "'", "''")))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to write parquet file %s", path)
	}

	return nil
}
