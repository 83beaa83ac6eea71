package billing

import (
	"testing"

	"agentlinker/models"

	"github.com/stretchr/testify/assert"
)

func TestFeaturesUnknownTierFallsBackToFree(t *testing.T) {
	assert.Equal(t, Features(models.TierFree), Features(""))
	assert.Equal(t, Features(models.TierFree), Features("platinum"))
}

func TestCanCreateListing(t *testing.T) {
	assert.True(t, CanCreateListing(models.TierFree, 0))
	assert.True(t, CanCreateListing(models.TierFree, 2))
	assert.False(t, CanCreateListing(models.TierFree, 3))
	assert.False(t, CanCreateListing(models.TierFree, 10))

	assert.True(t, CanCreateListing(models.TierPro, 24))
	assert.False(t, CanCreateListing(models.TierPro, 25))

	// Elite is unlimited.
	assert.True(t, CanCreateListing(models.TierElite, 10_000))
}

func TestTierGates(t *testing.T) {
	assert.False(t, CanFeatureListing(models.TierFree))
	assert.True(t, CanFeatureListing(models.TierPro))
	assert.True(t, CanFeatureListing(models.TierElite))

	assert.False(t, HasLeadPipeline(models.TierFree))
	assert.True(t, HasLeadPipeline(models.TierPro))

	// Booking is the core product; every tier has the calendar.
	for _, tier := range []string{models.TierFree, models.TierPro, models.TierElite} {
		assert.True(t, Features(tier).BookingCalendar)
	}
}
