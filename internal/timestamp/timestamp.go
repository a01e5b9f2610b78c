// Package timestamp converts between textual dates and canonical instants
// (seconds since the UTC epoch). No timezone conversion is performed: naive
// timestamps are taken to be UTC.
package timestamp

import (
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Layout is the canonical output representation consumed by the exporters.
const Layout = "2006-01-02T15:04:05Z"

// maxFieldDigits bounds a numeric field so decoding never overflows an int.
const maxFieldDigits = 9

type calendar struct {
	year   int
	month  int
	day    int
	hour   int
	minute int
	second int
}

// Parse decodes text according to format. None is returned when the text matches no
// token pattern for the format or a decoded field is outside its calendar range.
func Parse(text string, format types.DateFormat) optional.Option[int64] {
	var (
		cal calendar
		ok  bool
	)

	switch format {
	case types.DateFormatMDY:
		cal, ok = parseSlash(text, true)
	case types.DateFormatDMY:
		cal, ok = parseSlash(text, false)
	default:
		cal, ok = parseISO(text)
	}

	if !ok {
		return optional.None[int64]()
	}

	return cal.toInstant()
}

// ParseDateTime decodes a compact YYYYMMDD date field paired with a separate time field
// (HH:MM:SS, HH:MM, HHMMSS or HHMM), as found in datasets that split date and time
// into different columns.
func ParseDateTime(dateText string, timeText string) optional.Option[int64] {
	date := strings.TrimSpace(dateText)
	if len(date) != 8 || !allDigits(date) {
		return optional.None[int64]()
	}

	cal := calendar{
		year:  atoi(date[0:4]),
		month: atoi(date[4:6]),
		day:   atoi(date[6:8]),
	}

	clock := strings.TrimSpace(timeText)
	if strings.Contains(clock, ":") {
		sc := newScanner(clock)
		if !sc.clock(&cal) || !sc.done() {
			return optional.None[int64]()
		}
	} else {
		if !allDigits(clock) {
			return optional.None[int64]()
		}

		switch len(clock) {
		case 6:
			cal.hour, cal.minute, cal.second = atoi(clock[0:2]), atoi(clock[2:4]), atoi(clock[4:6])
		case 4:
			cal.hour, cal.minute = atoi(clock[0:2]), atoi(clock[2:4])
		default:
			return optional.None[int64]()
		}
	}

	return cal.toInstant()
}

// Format renders ts as a zero padded YYYY-MM-DDTHH:MM:SSZ string.
func Format(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(Layout)
}

// parseISO accepts YYYY-MM-DD optionally followed by ' ' or 'T' and a time of day.
func parseISO(text string) (calendar, bool) {
	var cal calendar

	sc := newScanner(text)
	sc.skipSpace()

	var ok bool
	if cal.year, ok = sc.number(); !ok || !sc.expect('-') {
		return cal, false
	}

	if cal.month, ok = sc.number(); !ok || !sc.expect('-') {
		return cal, false
	}

	if cal.day, ok = sc.number(); !ok {
		return cal, false
	}

	if sc.expect('T') || sc.skipSpace() {
		sc.optionalClock(&cal)
	}

	return cal, true
}

// parseSlash accepts a/b/YYYY with an optional whitespace separated time of day.
// monthFirst selects whether a is the month (MDY) or the day (DMY).
func parseSlash(text string, monthFirst bool) (calendar, bool) {
	var cal calendar

	sc := newScanner(text)
	sc.skipSpace()

	a, ok := sc.number()
	if !ok || !sc.expect('/') {
		return cal, false
	}

	b, ok := sc.number()
	if !ok || !sc.expect('/') {
		return cal, false
	}

	if cal.year, ok = sc.number(); !ok {
		return cal, false
	}

	if monthFirst {
		cal.month, cal.day = a, b
	} else {
		cal.month, cal.day = b, a
	}

	if sc.skipSpace() {
		sc.optionalClock(&cal)
	}

	return cal, true
}

func (c calendar) inRange() bool {
	return c.month >= 1 && c.month <= 12 &&
		c.day >= 1 && c.day <= 31 &&
		c.hour >= 0 && c.hour <= 23 &&
		c.minute >= 0 && c.minute <= 59 &&
		c.second >= 0 && c.second <= 60
}

// toInstant converts the calendar fields the way timegm does: days past the end of a
// month roll into the next one, and second 60 rolls into the next minute.
func (c calendar) toInstant() optional.Option[int64] {
	if !c.inRange() {
		return optional.None[int64]()
	}

	t := time.Date(c.year, time.Month(c.month), c.day, c.hour, c.minute, c.second, 0, time.UTC)

	return optional.Some(t.Unix())
}

type scanner struct {
	text string
	pos  int
}

func newScanner(text string) *scanner {
	return &scanner{text: text, pos: 0}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.text)
}

// skipSpace consumes whitespace and reports whether any was present.
func (s *scanner) skipSpace() bool {
	start := s.pos
	for s.pos < len(s.text) && (s.text[s.pos] == ' ' || s.text[s.pos] == '\t') {
		s.pos++
	}

	return s.pos > start
}

func (s *scanner) expect(b byte) bool {
	if s.pos < len(s.text) && s.text[s.pos] == b {
		s.pos++

		return true
	}

	return false
}

func (s *scanner) number() (int, bool) {
	start := s.pos
	value := 0

	for s.pos < len(s.text) && isDigit(s.text[s.pos]) {
		if s.pos-start == maxFieldDigits {
			return 0, false
		}

		value = value*10 + int(s.text[s.pos]-'0')
		s.pos++
	}

	return value, s.pos > start
}

// clock reads HH:MM with an optional :SS into cal.
func (s *scanner) clock(cal *calendar) bool {
	hour, ok := s.number()
	if !ok || !s.expect(':') {
		return false
	}

	minute, ok := s.number()
	if !ok {
		return false
	}

	second := 0
	if s.expect(':') {
		if second, ok = s.number(); !ok {
			return false
		}
	}

	cal.hour, cal.minute, cal.second = hour, minute, second

	return true
}

// optionalClock reads a time of day when one follows. A partial or missing time leaves
// the calendar at midnight, and anything after it (such as a trailing Z) is ignored.
func (s *scanner) optionalClock(cal *calendar) {
	var parsed calendar
	if s.clock(&parsed) {
		cal.hour, cal.minute, cal.second = parsed.hour, parsed.minute, parsed.second
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func allDigits(text string) bool {
	if text == "" {
		return false
	}

	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}

	return true
}

// atoi converts a string already known to contain only digits.
func atoi(digits string) int {
	value := 0
	for i := 0; i < len(digits); i++ {
		value = value*10 + int(digits[i]-'0')
	}

	return value
}
