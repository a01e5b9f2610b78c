package importer

import (
	"math"
	"strconv"
	"strings"
)

// splitLine splits a comma separated line. A double quote toggles quoting and a doubled
// quote inside a quoted field is a literal quote. Every field is trimmed.
func splitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}

// parseStrictFloat parses a whole token as a finite number. Surrounding whitespace is
// tolerated, trailing garbage is not.
func parseStrictFloat(text string) (float64, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}
