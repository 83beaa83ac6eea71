package models

// Subscription tiers.
const (
	TierFree  = "free"
	TierPro   = "pro"
	TierElite = "elite"
)

// TierFeatures is the static feature table row for one tier. Gating across
// the dashboard is a set of lookups against these values.
type TierFeatures struct {
	Tier              string `json:"tier"`
	MaxActiveListings int    `json:"maxActiveListings"` // -1 means unlimited
	FeaturedListings  bool   `json:"featuredListings"`
	LeadPipeline      bool   `json:"leadPipeline"`
	BookingCalendar   bool   `json:"bookingCalendar"`
	Analytics         bool   `json:"analytics"`
	CustomBranding    bool   `json:"customBranding"`
}
