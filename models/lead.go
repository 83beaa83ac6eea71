package models

import "time"

// Lead statuses, ordered as the pipeline moves.
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadQualified = "qualified"
	LeadClosed    = "closed"
)

// Lead represents an enquiry captured from an agent's public page.
type Lead struct {
	ID        string    `bson:"id" json:"id"`
	AgentID   string    `bson:"agentId" json:"agentId"`
	ListingID string    `bson:"listingId,omitempty" json:"listingId,omitempty"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Message   string    `bson:"message,omitempty" json:"message,omitempty"`
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
