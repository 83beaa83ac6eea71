package models

import "time"

// Listing statuses.
const (
	ListingDraft    = "draft"
	ListingActive   = "active"
	ListingSold     = "sold"
	ListingArchived = "archived"
)

// Listing represents a property published on an agent's page.
type Listing struct {
	ID          string    `bson:"id" json:"id"`
	AgentID     string    `bson:"agentId" json:"agentId"`
	Title       string    `bson:"title" json:"title"`
	Address     string    `bson:"address" json:"address"`
	Price       float64   `bson:"price" json:"price"`
	Beds        int       `bson:"beds,omitempty" json:"beds,omitempty"`
	Baths       int       `bson:"baths,omitempty" json:"baths,omitempty"`
	SquareFeet  int       `bson:"squareFeet,omitempty" json:"squareFeet,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Photos      []string  `bson:"photos,omitempty" json:"photos,omitempty"`
	Status      string    `bson:"status" json:"status"`
	Featured    bool      `bson:"featured" json:"featured"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
