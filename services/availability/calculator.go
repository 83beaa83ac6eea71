package availability

import (
	"time"

	"agentlinker/models"
)

// Classify determines the status of one candidate slot against the agent's
// bookings. The candidate is modelled as a fixed-width interval
// [slotStart, slotStart+duration) and tested with strict interval overlap
// against each non-cancelled booking's span; this is the stricter of the two
// slot semantics and catches bookings that start off-grid.
//
// Past wins over booked: a slot whose start is already behind the clock is
// never offered, whatever the booking data says.
func Classify(slotStart time.Time, durationMinutes int, bookings []models.Booking, now time.Time) models.SlotStatus {
	if slotStart.Before(now) {
		return models.SlotPast
	}

	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if slotStart.Before(b.End()) && b.ScheduledAt.Before(slotEnd) {
			return models.SlotBooked
		}
	}
	return models.SlotAvailable
}

// BuildWeekAvailability classifies every candidate slot of the 7-day window
// starting at weekStart. It is a pure function of its inputs: no fetching,
// no mutation, safe to recompute on every request.
func BuildWeekAvailability(agentID string, weekStart time.Time, bookings []models.Booking, now time.Time) models.WeekAvailability {
	start, end := WeekWindow(weekStart)
	starts := CandidateStartMinutes()

	var days []models.DayAvailability
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		day := models.DayAvailability{
			Date:  d.Format(DateLayout),
			Slots: make([]models.CandidateSlot, 0, len(starts)),
		}
		for _, m := range starts {
			slotStart := SlotInstant(d, m)
			day.Slots = append(day.Slots, models.CandidateSlot{
				Date:   day.Date,
				Start:  m,
				End:    m + SlotIntervalMinutes,
				Status: Classify(slotStart, DefaultShowingMinutes, bookings, now),
			})
		}
		days = append(days, day)
	}

	return models.WeekAvailability{
		AgentID:   agentID,
		WeekStart: start.Format(DateLayout),
		Days:      days,
	}
}
