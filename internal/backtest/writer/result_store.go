package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

const (
	TradesParquetFileName = "trades.parquet"
	EquityParquetFileName = "equity.parquet"
)

// ResultStore keeps the trades and equity of one or more runs in an in-memory DuckDB
// database so they can be queried and exported as Parquet.
type ResultStore struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

func NewResultStore(log *logger.Logger) (*ResultStore, error) {
	log = logger.OrNop(log)

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to open result store", err)
	}

	store := &ResultStore{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

// initialize creates the trades and equity tables.
func (s *ResultStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			trade_id TEXT PRIMARY KEY,
			run_id TEXT,
			seq INTEGER,
			entry_time BIGINT,
			entry_price DOUBLE,
			exit_time BIGINT,
			exit_price DOUBLE,
			qty INTEGER,
			pnl DOUBLE,
			return_pct DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create trades table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS equity (
			run_id TEXT,
			seq INTEGER,
			time BIGINT,
			equity DOUBLE,
			drawdown DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create equity table", err)
	}

	return nil
}

// SaveRun stores the trades and per-bar equity of a run under runID.
func (s *ResultStore) SaveRun(runID string, series types.Series, result types.BacktestResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to begin transaction", err)
	}

	for i, trade := range result.Trades {
		_, err := s.sq.
			Insert("trades").
			Columns(
				"trade_id", "run_id", "seq", "entry_time", "entry_price",
				"exit_time", "exit_price", "qty", "pnl", "return_pct",
			).
			Values(
				uuid.New().String(), runID, i, trade.EntryTime, trade.EntryPrice,
				trade.ExitTime, trade.ExitPrice, trade.Quantity, trade.PnL, trade.ReturnPct,
			).
			RunWith(tx).
			Exec()
		if err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert trade", err)
		}
	}

	count := min(len(series), len(result.Equity))
	for i := range count {
		drawdown := 0.0
		if i < len(result.Drawdown) {
			drawdown = result.Drawdown[i]
		}

		_, err := s.sq.
			Insert("equity").
			Columns("run_id", "seq", "time", "equity", "drawdown").
			Values(runID, i, series[i].Time, result.Equity[i], drawdown).
			RunWith(tx).
			Exec()
		if err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to insert equity point", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to commit run", err)
	}

	s.log.Debug("Stored run",
		zap.String("run_id", runID),
		zap.Int("trades", len(result.Trades)),
		zap.Int("equity_points", count),
	)

	return nil
}

// Trades returns the trades stored for runID in execution order.
func (s *ResultStore) Trades(runID string) ([]types.Trade, error) {
	rows, err := s.sq.
		Select("entry_time", "entry_price", "exit_time", "exit_price", "qty", "pnl", "return_pct").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("seq ASC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var trade types.Trade

		err := rows.Scan(
			&trade.EntryTime,
			&trade.EntryPrice,
			&trade.ExitTime,
			&trade.ExitPrice,
			&trade.Quantity,
			&trade.PnL,
			&trade.ReturnPct,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	return trades, nil
}

// EquityCurve returns the stored equity values for runID in bar order.
func (s *ResultStore) EquityCurve(runID string) ([]float64, error) {
	rows, err := s.sq.
		Select("equity").
		From("equity").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("seq ASC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query equity", err)
	}
	defer rows.Close()

	var equity []float64

	for rows.Next() {
		var value float64
		if err := rows.Scan(&value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan equity point", err)
		}

		equity = append(equity, value)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating equity", err)
	}

	return equity, nil
}

// Write exports both tables to Parquet files in dir.
func (s *ResultStore) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to create directory %s", dir)
	}

	tradesPath := filepath.Join(dir, TradesParquetFileName)
	equityPath := filepath.Join(dir, EquityParquetFileName)

	// Squirrel doesn't support COPY
	_, err := s.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM trades ORDER BY run_id, seq) TO '%s' (FORMAT PARQUET)`, escapeLiteral(tradesPath)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to export trades to Parquet", err)
	}

	_, err = s.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM equity ORDER BY run_id, seq) TO '%s' (FORMAT PARQUET)`, escapeLiteral(equityPath)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to export equity to Parquet", err)
	}

	s.log.Info("Exported backtest results to Parquet files",
		zap.String("trades", tradesPath),
		zap.String("equity", equityPath),
	)

	return nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

// escapeLiteral doubles single quotes for use inside a SQL string literal.
func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
