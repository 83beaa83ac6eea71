package lead

import (
	"context"
	"errors"
	"strings"

	"agentlinker/models"
	"agentlinker/services/billing"

	agentRepo "agentlinker/database/repository/agent"
	leadRepo "agentlinker/database/repository/lead"
)

// ErrPipelineNotInTier is returned when a free-tier agent hits the pipeline.
var ErrPipelineNotInTier = errors.New("the lead pipeline is not included in the current tier")

// Service captures enquiries from public pages and runs the dashboard
// pipeline. Capture is never gated: a visitor's enquiry is always stored,
// only the agent-facing pipeline views are tier-locked.
type Service struct {
	Leads  leadRepo.LeadRepository
	Agents agentRepo.AgentRepository
}

// NewService constructs the lead service.
func NewService(leads leadRepo.LeadRepository, agents agentRepo.AgentRepository) *Service {
	return &Service{Leads: leads, Agents: agents}
}

// Capture stores an enquiry from a public page.
func (s *Service) Capture(ctx context.Context, agentID string, l *models.Lead) (*models.Lead, error) {
	if strings.TrimSpace(l.Name) == "" || strings.TrimSpace(l.Email) == "" {
		return nil, errors.New("name and email are required")
	}
	if _, err := s.Agents.GetByID(ctx, agentID); err != nil {
		return nil, err
	}

	l.AgentID = agentID
	l.Status = models.LeadNew
	if err := s.Leads.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) requirePipeline(ctx context.Context, agentID string) error {
	a, err := s.Agents.GetByID(ctx, agentID)
	if err != nil {
		return err
	}
	if !billing.HasLeadPipeline(a.Tier) {
		return ErrPipelineNotInTier
	}
	return nil
}

// List returns the agent's leads, newest first.
func (s *Service) List(ctx context.Context, agentID string) ([]models.Lead, error) {
	if err := s.requirePipeline(ctx, agentID); err != nil {
		return nil, err
	}
	return s.Leads.ListByAgent(ctx, agentID)
}

// UpdateStatus moves a lead along the pipeline.
func (s *Service) UpdateStatus(ctx context.Context, agentID, leadID, status string) (*models.Lead, error) {
	switch status {
	case models.LeadNew, models.LeadContacted, models.LeadQualified, models.LeadClosed:
	default:
		return nil, errors.New("unknown lead status")
	}
	if err := s.requirePipeline(ctx, agentID); err != nil {
		return nil, err
	}
	return s.Leads.UpdateStatus(ctx, agentID, leadID, status)
}

// Delete removes a lead from the pipeline.
func (s *Service) Delete(ctx context.Context, agentID, leadID string) error {
	if err := s.requirePipeline(ctx, agentID); err != nil {
		return err
	}
	return s.Leads.Delete(ctx, agentID, leadID)
}
