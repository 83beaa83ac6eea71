package models

// SlotStatus classifies a candidate showing slot for a calendar view.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotPast      SlotStatus = "past"
)

// CandidateSlot is one (date, time-of-day) cell of the weekly grid.
// Start is minutes from midnight (e.g., 540 for 9:00 AM); Date is "2006-01-02".
// Candidate slots are computed per request and never persisted.
type CandidateSlot struct {
	Date   string     `json:"date"`
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Status SlotStatus `json:"status"`
}

// DayAvailability groups the classified slots of a single day.
type DayAvailability struct {
	Date  string          `json:"date"`
	Slots []CandidateSlot `json:"slots"`
}

// WeekAvailability is the full availability response for one 7-day window.
type WeekAvailability struct {
	AgentID   string            `json:"agentId"`
	WeekStart string            `json:"weekStart"`
	Days      []DayAvailability `json:"days"`
}
