package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// DataSource reads candles from columnar market data.
type DataSource interface {
	// Initialize initializes the data source with the given data path in parquet format
	Initialize(path string) error
	// Count returns the number of rows inside the optional time window
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// ReadAll yields the rows inside the optional time window in ascending time order,
	// keeping file order among equal timestamps
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.Candle, error) bool)
	// Load reads the window and applies the same admission, ordering and dedup rules
	// as the CSV importer
	Load(start optional.Option[time.Time], end optional.Option[time.Time]) types.ImportResult
	// Close closes the data source and releases any resources
	Close() error
}
