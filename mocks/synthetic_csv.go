package mocks

import (
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/writer"
)

type syntheticRow struct {
	Date   string          `csv:"Date"`
	Open   writer.Decimal6 `csv:"Open"`
	High   writer.Decimal6 `csv:"High"`
	Low    writer.Decimal6 `csv:"Low"`
	Close  writer.Decimal6 `csv:"Close"`
	Volume int             `csv:"Volume"`
}

// WriteSyntheticCSV writes rows daily bars in the ISO Date,Open,High,Low,Close,Volume layout.
// The path is a fixed saw-tooth drift starting at 100 on 2020-01-01, so the output only
// depends on rows. Months are 28 days long to keep every date valid.
func WriteSyntheticCSV(w io.Writer, rows int) error {
	data := make([]syntheticRow, rows)

	price := 100.0
	day, month, year := 1, 1, 2020

	for i := range rows {
		drift := float64(i%29-14) * 0.02
		open := price
		closePrice := math.Max(1.0, open+drift)

		data[i] = syntheticRow{
			Date:   fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			Open:   writer.Decimal6(open),
			High:   writer.Decimal6(math.Max(open, closePrice) + 0.3),
			Low:    writer.Decimal6(math.Min(open, closePrice) - 0.3),
			Close:  writer.Decimal6(closePrice),
			Volume: 1000,
		}

		price = closePrice

		day++
		if day > 28 {
			day = 1

			month++
			if month > 12 {
				month = 1
				year++
			}
		}
	}

	return gocsv.Marshal(data, w)
}
