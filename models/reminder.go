package models

// ReminderPayload is the task body for a scheduled showing reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	AgentID     string `json:"agentId"`
	ClientEmail string `json:"clientEmail"`
	ClientName  string `json:"clientName"`
	ScheduledAt string `json:"scheduledAt"` // RFC3339
	Location    string `json:"location,omitempty"`
}
