package instrument

import "time"

const dateLayout = "2006-01-02"

// parseDate parses an ISO-8601 calendar date token. Exercise and expiry
// dates are validated at construction so that later comparisons are
// true chronological comparisons, not string comparisons.
func parseDate(typ, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, newConstructionError(typ, "date is required")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, newConstructionError(typ, "invalid date %q: %v", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func joinDates(dates []time.Time) string {
	out := ""
	for i, d := range dates {
		if i > 0 {
			out += ", "
		}
		out += formatDate(d)
	}
	return out
}
