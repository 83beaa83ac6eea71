package listing

import (
	"context"
	"testing"

	"agentlinker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeListingRepo struct {
	listings map[string]models.Listing
	active   int64
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]models.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, l *models.Listing) error {
	if l.ID == "" {
		l.ID = "listing-1"
	}
	r.listings[l.ID] = *l
	if l.Status == models.ListingActive {
		r.active++
	}
	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, agentID, listingID string) (*models.Listing, error) {
	l, ok := r.listings[listingID]
	if !ok || l.AgentID != agentID {
		return nil, mongo.ErrNoDocuments
	}
	return &l, nil
}

func (r *fakeListingRepo) ListByAgent(_ context.Context, agentID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range r.listings {
		if l.AgentID == agentID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) ListActiveByAgent(_ context.Context, agentID string) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range r.listings {
		if l.AgentID == agentID && l.Status == models.ListingActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) CountActiveByAgent(_ context.Context, _ string) (int64, error) {
	return r.active, nil
}

func (r *fakeListingRepo) UpdateFields(_ context.Context, agentID, listingID string, fields map[string]interface{}) (*models.Listing, error) {
	l, ok := r.listings[listingID]
	if !ok || l.AgentID != agentID {
		return nil, mongo.ErrNoDocuments
	}
	if status, ok := fields["status"].(string); ok {
		l.Status = status
	}
	if featured, ok := fields["featured"].(bool); ok {
		l.Featured = featured
	}
	r.listings[listingID] = l
	return &l, nil
}

func (r *fakeListingRepo) Delete(_ context.Context, agentID, listingID string) error {
	l, ok := r.listings[listingID]
	if !ok || l.AgentID != agentID {
		return mongo.ErrNoDocuments
	}
	delete(r.listings, listingID)
	return nil
}

func (r *fakeListingRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeAgentRepo struct {
	agent models.Agent
}

func (r *fakeAgentRepo) Create(_ context.Context, _ *models.Agent) error { return nil }

func (r *fakeAgentRepo) GetByID(_ context.Context, agentID string) (*models.Agent, error) {
	if r.agent.ID != agentID {
		return nil, mongo.ErrNoDocuments
	}
	a := r.agent
	return &a, nil
}

func (r *fakeAgentRepo) GetByEmail(_ context.Context, _ string) (*models.Agent, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAgentRepo) GetBySlug(_ context.Context, _ string) (*models.Agent, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAgentRepo) GetByStripeCustomerID(_ context.Context, _ string) (*models.Agent, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAgentRepo) UpdateFields(_ context.Context, _ string, _ map[string]interface{}) error {
	return nil
}

func (r *fakeAgentRepo) EnsureIndexes(_ context.Context) error { return nil }

func newTestService(tier string, active int64) (*Service, *fakeListingRepo) {
	repo := newFakeListingRepo()
	repo.active = active
	agents := &fakeAgentRepo{agent: models.Agent{ID: "agent-1", Tier: tier}}
	return NewService(repo, agents), repo
}

func TestCreateActiveListingHitsTierCap(t *testing.T) {
	svc, _ := newTestService(models.TierFree, 3)

	_, err := svc.Create(context.Background(), "agent-1", &models.Listing{
		Title:   "Sunny bungalow",
		Address: "12 Elm St",
		Status:  models.ListingActive,
	})
	assert.ErrorIs(t, err, ErrListingLimit)
}

func TestCreateDraftIgnoresTierCap(t *testing.T) {
	svc, repo := newTestService(models.TierFree, 3)

	l, err := svc.Create(context.Background(), "agent-1", &models.Listing{
		Title:   "Sunny bungalow",
		Address: "12 Elm St",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ListingDraft, l.Status)
	assert.Equal(t, "agent-1", l.AgentID)
	assert.Len(t, repo.listings, 1)
}

func TestFeaturedRequiresPaidTier(t *testing.T) {
	svc, _ := newTestService(models.TierFree, 0)
	_, err := svc.Create(context.Background(), "agent-1", &models.Listing{
		Title:    "Sunny bungalow",
		Address:  "12 Elm St",
		Featured: true,
	})
	assert.ErrorIs(t, err, ErrFeaturedNotInTier)

	svc, _ = newTestService(models.TierPro, 0)
	_, err = svc.Create(context.Background(), "agent-1", &models.Listing{
		Title:    "Sunny bungalow",
		Address:  "12 Elm St",
		Featured: true,
	})
	assert.NoError(t, err)
}

func TestUpdateActivationRechecksCap(t *testing.T) {
	svc, repo := newTestService(models.TierFree, 0)
	created, err := svc.Create(context.Background(), "agent-1", &models.Listing{
		Title:   "Sunny bungalow",
		Address: "12 Elm St",
	})
	require.NoError(t, err)

	// Fill the cap behind the draft's back.
	repo.active = 3

	_, err = svc.Update(context.Background(), "agent-1", created.ID, map[string]interface{}{
		"status": models.ListingActive,
	})
	assert.ErrorIs(t, err, ErrListingLimit)
}

func TestUpdateAlreadyActiveSkipsCapCheck(t *testing.T) {
	svc, repo := newTestService(models.TierFree, 0)
	created, err := svc.Create(context.Background(), "agent-1", &models.Listing{
		Title:   "Sunny bungalow",
		Address: "12 Elm St",
		Status:  models.ListingActive,
	})
	require.NoError(t, err)

	repo.active = 3

	// Re-saving an already-active listing does not count as a new activation.
	_, err = svc.Update(context.Background(), "agent-1", created.ID, map[string]interface{}{
		"status": models.ListingActive,
	})
	assert.NoError(t, err)
}
