package availability

import "time"

// The daily showing schedule. Candidate slots run 09:00-17:00 in 30-minute
// increments; the last slot starts at 16:30. Times are minutes from midnight.
const (
	DayOpenMinute       = 9 * 60
	DayCloseMinute      = 17 * 60
	SlotIntervalMinutes = 30

	// DefaultShowingMinutes is the fixed duration of a showing booked
	// through the public flow.
	DefaultShowingMinutes = 30

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// CandidateStartMinutes returns the fixed list of daily slot start times.
func CandidateStartMinutes() []int {
	var starts []int
	for m := DayOpenMinute; m+SlotIntervalMinutes <= DayCloseMinute; m += SlotIntervalMinutes {
		starts = append(starts, m)
	}
	return starts
}

// WeekWindow normalizes weekStart to a midnight UTC day boundary and returns
// the [start, end) instants of the 7-day window beginning there.
func WeekWindow(weekStart time.Time) (time.Time, time.Time) {
	t := weekStart.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 7)
}

// FetchWindow is the booking query window for a displayed week: the week
// itself plus one week of look-ahead, so forward navigation starts warm.
func FetchWindow(weekStart time.Time) (time.Time, time.Time) {
	start, end := WeekWindow(weekStart)
	return start, end.AddDate(0, 0, 7)
}

// SlotInstant resolves a (day, startMinute) pair to its absolute UTC instant.
func SlotInstant(day time.Time, startMinute int) time.Time {
	d := day.UTC()
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(startMinute) * time.Minute)
}
