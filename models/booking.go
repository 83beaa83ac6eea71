package models

import "time"

// Booking statuses. A booking is never physically deleted in the normal
// flow; cancellation is a status, though agents keep a hard-delete path.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking represents a scheduled showing on an agent's calendar.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	AgentID         string    `bson:"agentId" json:"agentId"`
	ListingID       string    `bson:"listingId,omitempty" json:"listingId,omitempty"`
	LeadID          string    `bson:"leadId,omitempty" json:"leadId,omitempty"`
	ScheduledAt     time.Time `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Status          string    `bson:"status" json:"status"`
	ClientName      string    `bson:"clientName" json:"clientName"`
	ClientEmail     string    `bson:"clientEmail" json:"clientEmail"`
	ClientPhone     string    `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// End returns the exclusive end instant of the booking's span.
func (b Booking) End() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive reports whether the booking still occupies its slot.
func (b Booking) IsActive() bool {
	return b.Status != BookingCancelled
}
