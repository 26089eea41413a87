package progress

import "time"

// nextStreak returns the streak after activity at now, given the previous
// activity time. Days are compared on the calendar of loc.
func nextStreak(current int, lastActive, now time.Time, loc *time.Location) int {
	if current <= 0 || lastActive.IsZero() {
		return 1
	}
	last := calendarDay(lastActive, loc)
	today := calendarDay(now, loc)
	switch {
	case last.Equal(today):
		return current
	case last.AddDate(0, 0, 1).Equal(today):
		return current + 1
	default:
		return 1
	}
}

// calendarDay truncates t to midnight in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
