package utils

import "time"

const DateLayout = "2006-01-02"

// ResolveWindow parses optional yyyy-mm-dd report bounds, defaulting to the
// trailing DefaultReportWindowDays when a bound is missing or malformed.
func ResolveWindow(from, to string) (time.Time, time.Time) {
	now := time.Now()

	toDate := now
	if to != "" {
		if parsed, err := time.Parse(DateLayout, to); err == nil {
			// Include the whole end day.
			toDate = parsed.Add(24*time.Hour - time.Nanosecond)
		}
	}

	fromDate := now.AddDate(0, 0, -DefaultReportWindowDays)
	if from != "" {
		if parsed, err := time.Parse(DateLayout, from); err == nil {
			fromDate = parsed
		}
	}

	return fromDate, toDate
}

// FormatDate renders a timestamp as yyyy-mm-dd for report payloads.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional timestamp, empty when unset.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
