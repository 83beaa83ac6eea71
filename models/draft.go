package models

// Draft states for the three-step booking flow. Closed is implicit: the
// session is deleted, so no record carries that state.
const (
	DraftSelectingSlot   = "selecting_slot"
	DraftEnteringDetails = "entering_details"
	DraftSuccess         = "success"
)

// BookingDraft holds the transient state of an in-progress booking request.
// It lives in the session cache for the lifetime of the booking flow and is
// discarded on cancel or success.
type BookingDraft struct {
	SessionID   string `json:"sessionId"`
	AgentID     string `json:"agentId"`
	ListingID   string `json:"listingId,omitempty"`
	State       string `json:"state"`
	Date        string `json:"date,omitempty"`  // "2006-01-02"
	StartMinute int    `json:"start,omitempty"` // minutes from midnight
	ClientName  string `json:"clientName,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Location    string `json:"location,omitempty"`
}

// HasSlot reports whether both the date and the time of the draft are set.
func (d BookingDraft) HasSlot() bool {
	return d.Date != "" && d.StartMinute > 0
}

// ContactDetails is the form payload collected in the entering-details step.
type ContactDetails struct {
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Location    string `json:"location,omitempty"`
}
