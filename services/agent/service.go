package agent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"agentlinker/models"
	"agentlinker/utils"

	agentRepo "agentlinker/database/repository/agent"
	listingRepo "agentlinker/database/repository/listing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// ErrInvalidCredentials is returned when email/password authentication fails.
// The message is the same for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service manages agent accounts and the public bio pages.
type Service struct {
	Agents   agentRepo.AgentRepository
	Listings listingRepo.ListingRepository
}

// NewService constructs the agent service.
func NewService(agents agentRepo.AgentRepository, listings listingRepo.ListingRepository) *Service {
	return &Service{Agents: agents, Listings: listings}
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Agency   string `json:"agency,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives the public page slug from the agent's name, with a short
// random suffix to dodge collisions between namesakes.
func slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "agent"
	}
	return s + "-" + uuid.New().String()[:8]
}

// Register creates an agent account on the free tier and returns it with a
// signed session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Agent, string, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, "", errors.New("email and name are required")
	}
	if len(in.Password) < 8 {
		return nil, "", errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	a := &models.Agent{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Slug:         slugify(in.Name),
		Agency:       in.Agency,
		Phone:        in.Phone,
	}
	if err := s.Agents.Create(ctx, a); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(a.ID, a.Email, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return a, token, nil
}

// Authenticate verifies credentials and returns the agent with a fresh token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Agent, string, error) {
	a, err := s.Agents.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(a.ID, a.Email, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return a, token, nil
}

// Get returns the agent's own account record.
func (s *Service) Get(ctx context.Context, agentID string) (*models.Agent, error) {
	return s.Agents.GetByID(ctx, agentID)
}

// UpdateProfile applies a partial profile update. Only presentation fields
// are writable here; subscription state belongs to the billing webhooks.
func (s *Service) UpdateProfile(ctx context.Context, agentID string, updates map[string]interface{}) (*models.Agent, error) {
	allowed := map[string]bool{"name": true, "bio": true, "phone": true, "photoUrl": true, "agency": true}
	fields := make(map[string]interface{})
	for k, v := range updates {
		if allowed[k] {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil, errors.New("no updatable fields in request")
	}
	if err := s.Agents.UpdateFields(ctx, agentID, fields); err != nil {
		return nil, err
	}
	return s.Agents.GetByID(ctx, agentID)
}

// PublicProfile resolves an agent's bio page by slug: the agent plus their
// active listings, featured first.
func (s *Service) PublicProfile(ctx context.Context, slug string) (*models.PublicProfile, error) {
	a, err := s.Agents.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	listings, err := s.Listings.ListActiveByAgent(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return &models.PublicProfile{Agent: *a, Listings: listings}, nil
}
