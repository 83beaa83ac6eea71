package billing

import "agentlinker/models"

// The static tier feature table. Gating is a lookup, never a remote call;
// Stripe only moves agents between rows.
var tierTable = map[string]models.TierFeatures{
	models.TierFree: {
		Tier:              models.TierFree,
		MaxActiveListings: 3,
		FeaturedListings:  false,
		LeadPipeline:      false,
		BookingCalendar:   true,
		Analytics:         false,
		CustomBranding:    false,
	},
	models.TierPro: {
		Tier:              models.TierPro,
		MaxActiveListings: 25,
		FeaturedListings:  true,
		LeadPipeline:      true,
		BookingCalendar:   true,
		Analytics:         true,
		CustomBranding:    false,
	},
	models.TierElite: {
		Tier:              models.TierElite,
		MaxActiveListings: -1,
		FeaturedListings:  true,
		LeadPipeline:      true,
		BookingCalendar:   true,
		Analytics:         true,
		CustomBranding:    true,
	},
}

// Features returns the feature row for a tier. Unknown tiers fall back to
// free so a bad subscription record can only under-grant, never over-grant.
func Features(tier string) models.TierFeatures {
	if f, ok := tierTable[tier]; ok {
		return f
	}
	return tierTable[models.TierFree]
}

// CanCreateListing reports whether an agent on the given tier may activate
// one more listing on top of activeCount.
func CanCreateListing(tier string, activeCount int64) bool {
	f := Features(tier)
	if f.MaxActiveListings < 0 {
		return true
	}
	return activeCount < int64(f.MaxActiveListings)
}

// CanFeatureListing reports whether the tier includes featured listings.
func CanFeatureListing(tier string) bool {
	return Features(tier).FeaturedListings
}

// HasLeadPipeline reports whether the tier includes the lead pipeline.
func HasLeadPipeline(tier string) bool {
	return Features(tier).LeadPipeline
}
