package importer

import (
	"math"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/timestamp"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const missingColumnsMessage = "Missing required columns. Required: Date/Timestamp OR DTYYYYMMDD+TIME, Open, High, Low, Close, Volume/VOL"

const (
	reasonMissingFields    = "Dropped row: missing one or more required field values"
	reasonInvalidTimestamp = "Dropped row: invalid timestamp format"
	reasonInvalidNumber    = "Dropped row: invalid numeric value"
	reasonNonPositivePrice = "Dropped row: prices must be > 0"
	reasonNegativeVolume   = "Dropped row: volume must be >= 0"
)

// columnLayout records where each logical column lives in a row.
type columnLayout struct {
	timestamp int
	date      int
	clock     int
	open      int
	high      int
	low       int
	close     int
	volume    int
	// splitDateTime is set when the compact date column and a separate time column
	// are both present. It takes precedence over a single timestamp column.
	splitDateTime bool
	maxIndex      int
}

// normalizeHeader trims, strips surrounding <...> decoration and case-folds a header.
func normalizeHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 2 && strings.HasPrefix(header, "<") && strings.HasSuffix(header, ">") {
		header = header[1 : len(header)-1]
	}

	return strings.ToLower(strings.TrimSpace(header))
}

func findAny(index map[string]int, names ...string) optional.Option[int] {
	for _, name := range names {
		if i, ok := index[name]; ok {
			return optional.Some(i)
		}
	}

	return optional.None[int]()
}

// resolveColumns maps the header row onto the logical columns.
// It reports false when a required column is missing.
func resolveColumns(headers []string) (columnLayout, bool) {
	index := make(map[string]int, len(headers))
	for i, header := range headers {
		index[normalizeHeader(header)] = i
	}

	ts := findAny(index, "timestamp", "date")
	date := findAny(index, "dtyyyymmdd")
	clock := findAny(index, "time")
	open := findAny(index, "open")
	high := findAny(index, "high")
	low := findAny(index, "low")
	closeCol := findAny(index, "close")
	volume := findAny(index, "volume", "vol")

	split := date.IsSome() && clock.IsSome()
	if (ts.IsNone() && !split) || open.IsNone() || high.IsNone() || low.IsNone() || closeCol.IsNone() || volume.IsNone() {
		return columnLayout{}, false
	}

	layout := columnLayout{
		timestamp:     ts.TakeOr(-1),
		date:          date.TakeOr(-1),
		clock:         clock.TakeOr(-1),
		open:          open.Unwrap(),
		high:          high.Unwrap(),
		low:           low.Unwrap(),
		close:         closeCol.Unwrap(),
		volume:        volume.Unwrap(),
		splitDateTime: split,
		maxIndex:      0,
	}

	required := []int{layout.open, layout.high, layout.low, layout.close, layout.volume}
	if split {
		required = append(required, layout.date, layout.clock)
	} else {
		required = append(required, layout.timestamp)
	}

	for _, i := range required {
		layout.maxIndex = max(layout.maxIndex, i)
	}

	return layout, true
}

// admit turns one tokenized row into a candle, or returns the reason it was dropped.
func (l columnLayout) admit(fields []string, format types.DateFormat) (types.Candle, string) {
	if len(fields) <= l.maxIndex {
		return types.Candle{}, reasonMissingFields
	}

	var ts optional.Option[int64]
	if l.splitDateTime {
		ts = timestamp.ParseDateTime(fields[l.date], fields[l.clock])
	} else {
		ts = timestamp.Parse(fields[l.timestamp], format)
	}

	if ts.IsNone() {
		return types.Candle{}, reasonInvalidTimestamp
	}

	values := [5]float64{}
	for i, col := range [5]int{l.open, l.high, l.low, l.close, l.volume} {
		v, ok := parseStrictFloat(fields[col])
		if !ok {
			return types.Candle{}, reasonInvalidNumber
		}

		values[i] = v
	}

	candle := types.Candle{
		Time:   ts.Unwrap(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}

	if reason := CheckCandle(candle); reason != "" {
		return types.Candle{}, reason
	}

	return candle, ""
}

// CheckCandle applies the value rules every admitted candle must satisfy and returns the
// drop reason, or "" when the candle is admissible.
func CheckCandle(c types.Candle) string {
	for _, v := range [5]float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return reasonInvalidNumber
		}
	}

	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return reasonNonPositivePrice
	}

	if c.Volume < 0 {
		return reasonNegativeVolume
	}

	return ""
}
