package filter

import (
	"regexp"
	"strings"
	"time"
)

// PeriodKind is the matching granularity sniffed from a period value
type PeriodKind uint8

const (
	// PeriodExact matches the stored timestamp as is
	PeriodExact PeriodKind = iota
	// PeriodDay matches the calendar day of the stored timestamp
	PeriodDay
	// PeriodMonth matches the calendar month of the stored timestamp
	PeriodMonth
)

func (k PeriodKind) String() string {
	switch k {
	case PeriodDay:
		return "day"
	case PeriodMonth:
		return "month"
	default:
		return "exact"
	}
}

var (
	dayRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// KindOf sniffs the granularity of a period value
func KindOf(period string) PeriodKind {
	switch {
	case dayRe.MatchString(period):
		return PeriodDay
	case monthRe.MatchString(period):
		return PeriodMonth
	default:
		return PeriodExact
	}
}

// layouts tried for exact periods, most specific first
var exactLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// ParseExact parses an opaque full timestamp period
// the browser style "Mon Jan 02 2006 15:04:05 GMT-0700 (zone name)" suffix is tolerated
func ParseExact(period string) (time.Time, bool) {
	s := strings.TrimSpace(period)
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range exactLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthStart returns the first calendar day of a YYYY-MM period as YYYY-MM-01
func MonthStart(period string) string { return period + "-01" }

// OnCalendar reports whether a day or month period names a real date
// exact periods are never on the calendar, use ParseExact for them
func OnCalendar(period string) bool {
	var err error
	switch KindOf(period) {
	case PeriodDay:
		_, err = time.Parse("2006-01-02", period)
	case PeriodMonth:
		_, err = time.Parse("2006-01", period)
	default:
		return false
	}
	return err == nil
}
