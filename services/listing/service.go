package listing

import (
	"context"
	"errors"
	"strings"

	"agentlinker/models"
	"agentlinker/services/billing"

	agentRepo "agentlinker/database/repository/agent"
	listingRepo "agentlinker/database/repository/listing"
)

// Gate errors surfaced to the dashboard.
var (
	ErrListingLimit      = errors.New("listing limit reached for the current tier")
	ErrFeaturedNotInTier = errors.New("featured listings are not included in the current tier")
)

// Service manages listings with tier gating on activation and featuring.
type Service struct {
	Listings listingRepo.ListingRepository
	Agents   agentRepo.AgentRepository
}

// NewService constructs the listing service.
func NewService(listings listingRepo.ListingRepository, agents agentRepo.AgentRepository) *Service {
	return &Service{Listings: listings, Agents: agents}
}

func (s *Service) agentTier(ctx context.Context, agentID string) (string, error) {
	a, err := s.Agents.GetByID(ctx, agentID)
	if err != nil {
		return "", err
	}
	return a.Tier, nil
}

// Create inserts a listing for the agent. Activating it immediately counts
// against the tier's active-listing cap; drafts are always allowed.
func (s *Service) Create(ctx context.Context, agentID string, l *models.Listing) (*models.Listing, error) {
	if strings.TrimSpace(l.Title) == "" || strings.TrimSpace(l.Address) == "" {
		return nil, errors.New("title and address are required")
	}

	tier, err := s.agentTier(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if l.Status == "" {
		l.Status = models.ListingDraft
	}
	if l.Status == models.ListingActive {
		active, err := s.Listings.CountActiveByAgent(ctx, agentID)
		if err != nil {
			return nil, err
		}
		if !billing.CanCreateListing(tier, active) {
			return nil, ErrListingLimit
		}
	}
	if l.Featured && !billing.CanFeatureListing(tier) {
		return nil, ErrFeaturedNotInTier
	}

	l.AgentID = agentID
	if err := s.Listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns one of the agent's listings.
func (s *Service) Get(ctx context.Context, agentID, listingID string) (*models.Listing, error) {
	return s.Listings.GetByID(ctx, agentID, listingID)
}

// List returns all of the agent's listings, featured first.
func (s *Service) List(ctx context.Context, agentID string) ([]models.Listing, error) {
	return s.Listings.ListByAgent(ctx, agentID)
}

// Update applies a partial update, re-checking the tier gates when the update
// activates or features the listing.
func (s *Service) Update(ctx context.Context, agentID, listingID string, fields map[string]interface{}) (*models.Listing, error) {
	tier, err := s.agentTier(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if status, ok := fields["status"].(string); ok && status == models.ListingActive {
		current, err := s.Listings.GetByID(ctx, agentID, listingID)
		if err != nil {
			return nil, err
		}
		if current.Status != models.ListingActive {
			active, err := s.Listings.CountActiveByAgent(ctx, agentID)
			if err != nil {
				return nil, err
			}
			if !billing.CanCreateListing(tier, active) {
				return nil, ErrListingLimit
			}
		}
	}
	if featured, ok := fields["featured"].(bool); ok && featured && !billing.CanFeatureListing(tier) {
		return nil, ErrFeaturedNotInTier
	}

	return s.Listings.UpdateFields(ctx, agentID, listingID, fields)
}

// Delete removes one of the agent's listings.
func (s *Service) Delete(ctx context.Context, agentID, listingID string) error {
	return s.Listings.Delete(ctx, agentID, listingID)
}
