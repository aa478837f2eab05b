package etl

import "time"

// DateRange produces the inclusive, ascending sequence of calendar dates
// from `from` to `to`. Both bounds are normalized to midnight UTC so that
// time-of-day on the inputs never affects iteration.
func DateRange(from, to time.Time) []time.Time {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	if to.Before(from) {
		return nil
	}

	dates := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
