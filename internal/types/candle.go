package types

import (
	"github.com/moznion/go-optional"
)

// Candle is one OHLCV price bar. Time is seconds since the UTC epoch.
type Candle struct {
	Time   int64   `csv:"time" yaml:"time"`
	Open   float64 `csv:"open" yaml:"open"`
	High   float64 `csv:"high" yaml:"high"`
	Low    float64 `csv:"low" yaml:"low"`
	Close  float64 `csv:"close" yaml:"close"`
	Volume float64 `csv:"volume" yaml:"volume"`
}

// Series is a sequence of candles strictly ascending by Time with no duplicate instants.
// The importer establishes the ordering; consumers rely on it without re-checking.
type Series []Candle

// DatasetMetadata summarizes the series a backtest ran over.
type DatasetMetadata struct {
	Rows      int   `yaml:"rows" json:"rows"`
	StartTime int64 `yaml:"start_time" json:"start_time"`
	EndTime   int64 `yaml:"end_time" json:"end_time"`
}

// Metadata returns the row count and time span of the series.
// An empty series reports zero for every field.
func (s Series) Metadata() DatasetMetadata {
	if len(s) == 0 {
		return DatasetMetadata{Rows: 0, StartTime: 0, EndTime: 0}
	}

	return DatasetMetadata{
		Rows:      len(s),
		StartTime: s[0].Time,
		EndTime:   s[len(s)-1].Time,
	}
}

// Between returns the candles whose time lies inside [start, end]. A None bound is open.
// The returned series shares its backing array with s.
func (s Series) Between(start optional.Option[int64], end optional.Option[int64]) Series {
	lo := 0
	hi := len(s)

	if start.IsSome() {
		from := start.Unwrap()
		for lo < hi && s[lo].Time < from {
			lo++
		}
	}

	if end.IsSome() {
		to := end.Unwrap()
		for hi > lo && s[hi-1].Time > to {
			hi--
		}
	}

	return s[lo:hi]
}

// Closes returns the close prices of the series in order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, c := range s {
		closes[i] = c.Close
	}

	return closes
}
