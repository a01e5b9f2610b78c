package types

import "strings"

// DateFormat selects how textual timestamps are decoded by the importer.
type DateFormat string

const (
	// DateFormatISO accepts YYYY-MM-DD with an optional time of day.
	DateFormatISO DateFormat = "iso"
	// DateFormatMDY accepts month/day/year with an optional time of day.
	DateFormatMDY DateFormat = "mdy"
	// DateFormatDMY accepts day/month/year with an optional time of day.
	DateFormatDMY DateFormat = "dmy"
)

// AllDateFormats lists every supported date format.
var AllDateFormats = []any{
	DateFormatISO,
	DateFormatMDY,
	DateFormatDMY,
}

// ParseDateFormat maps a user supplied name to a DateFormat.
// Unknown names fall back to ISO.
func ParseDateFormat(value string) DateFormat {
	switch DateFormat(strings.ToLower(strings.TrimSpace(value))) {
	case DateFormatMDY:
		return DateFormatMDY
	case DateFormatDMY:
		return DateFormatDMY
	default:
		return DateFormatISO
	}
}
