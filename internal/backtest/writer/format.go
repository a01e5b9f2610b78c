package writer

import (
	"strconv"

	"github.com/rxtech-lab/argo-backtest/internal/timestamp"
)

// Decimal10 is a float rendered with exactly ten fractional digits.
type Decimal10 float64

func (d Decimal10) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(d), 'f', 10, 64), nil
}

// Decimal6 is a float rendered with exactly six fractional digits.
type Decimal6 float64

func (d Decimal6) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(d), 'f', 6, 64), nil
}

// ISOTime is an epoch second rendered in the canonical YYYY-MM-DDTHH:MM:SSZ form.
type ISOTime int64

func (t ISOTime) MarshalCSV() (string, error) {
	return timestamp.Format(int64(t)), nil
}
