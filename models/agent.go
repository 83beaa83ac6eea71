package models

import "time"

// Agent represents a real-estate agent account. The slug addresses the
// agent's public bio page.
type Agent struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	Slug         string    `bson:"slug" json:"slug"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PhotoURL     string    `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Agency       string    `bson:"agency,omitempty" json:"agency,omitempty"`

	// Subscription state, driven by Stripe webhook events.
	Tier                 string    `bson:"tier" json:"tier"`
	StripeCustomerID     string    `bson:"stripeCustomerId,omitempty" json:"-"`
	StripeSubscriptionID string    `bson:"stripeSubscriptionId,omitempty" json:"-"`
	SubscriptionStatus   string    `bson:"subscriptionStatus,omitempty" json:"subscriptionStatus,omitempty"`
	CurrentPeriodEnd     time.Time `bson:"currentPeriodEnd,omitempty" json:"currentPeriodEnd,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the payload served on the public bio page.
type PublicProfile struct {
	Agent    Agent     `json:"agent"`
	Listings []Listing `json:"listings"`
}
