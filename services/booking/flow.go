package booking

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"agentlinker/models"
	"agentlinker/services/availability"
	"agentlinker/services/notification"
	"agentlinker/services/realtime"
	"agentlinker/utils"

	agentRepo "agentlinker/database/repository/agent"
	bookingRepo "agentlinker/database/repository/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FlowService drives the public three-step booking flow: pick a slot, enter
// contact details, submit. Draft state lives in the session store between
// steps; nothing touches the booking collection until Submit.
type FlowService interface {
	Start(ctx context.Context, agentID, listingID string) (*models.BookingDraft, error)
	WeeklyAvailability(ctx context.Context, agentID string, weekStart time.Time) (*models.WeekAvailability, error)
	SelectSlot(ctx context.Context, sessionID, date string, startMinute int) (*models.BookingDraft, error)
	Continue(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Back(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Submit(ctx context.Context, sessionID string, details models.ContactDetails) (*models.Booking, error)
	Cancel(ctx context.Context, sessionID string) error
}

// DefaultFlowService is the production FlowService wiring.
type DefaultFlowService struct {
	Sessions SessionStore
	Bookings bookingRepo.BookingRepository
	Agents   agentRepo.AgentRepository
	Feed     realtime.Publisher
	Mail     notification.EmailSender

	// Now is the clock used for past-slot checks; overridable in tests.
	Now func() time.Time
}

// NewFlowService constructs the flow over its collaborators.
func NewFlowService(sessions SessionStore, bookings bookingRepo.BookingRepository, agents agentRepo.AgentRepository, feed realtime.Publisher, mail notification.EmailSender) *DefaultFlowService {
	return &DefaultFlowService{
		Sessions: sessions,
		Bookings: bookings,
		Agents:   agents,
		Feed:     feed,
		Mail:     mail,
		Now:      time.Now,
	}
}

func (s *DefaultFlowService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Start opens a new draft session in the slot-selection state.
func (s *DefaultFlowService) Start(ctx context.Context, agentID, listingID string) (*models.BookingDraft, error) {
	if _, err := s.Agents.GetByID(ctx, agentID); err != nil {
		return nil, fmt.Errorf("failed to resolve agent: %w", err)
	}

	draft := &models.BookingDraft{
		SessionID: uuid.New().String(),
		AgentID:   agentID,
		ListingID: listingID,
		State:     models.DraftSelectingSlot,
	}
	if err := s.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// WeeklyAvailability computes the slot grid for the 7-day window at weekStart.
// Bookings are fetched for the week plus one week of look-ahead and the grid
// is recomputed from scratch; no cached state can go stale.
func (s *DefaultFlowService) WeeklyAvailability(ctx context.Context, agentID string, weekStart time.Time) (*models.WeekAvailability, error) {
	from, to := availability.FetchWindow(weekStart)
	bookings, err := s.Bookings.FindForAgentWindow(ctx, agentID, from, to)
	if err != nil {
		return nil, err
	}
	week := availability.BuildWeekAvailability(agentID, weekStart, bookings, s.now())
	return &week, nil
}

// SelectSlot records the visitor's slot pick on the draft. Picking again in
// the same state simply replaces the previous pick.
func (s *DefaultFlowService) SelectSlot(ctx context.Context, sessionID, date string, startMinute int) (*models.BookingDraft, error) {
	draft, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.State != models.DraftSelectingSlot {
		return nil, NewStateError("slot selection is only allowed in the selecting_slot state")
	}

	day, err := time.Parse(availability.DateLayout, date)
	if err != nil {
		return nil, NewValidationError("invalid date, expected YYYY-MM-DD")
	}
	if !validStartMinute(startMinute) {
		return nil, NewValidationError("start time is not on the showing grid")
	}
	if availability.SlotInstant(day, startMinute).Before(s.now()) {
		return nil, NewValidationError("the selected slot is in the past")
	}

	draft.Date = date
	draft.StartMinute = startMinute
	if err := s.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Continue advances the draft from slot selection to the details form. It is
// rejected until a slot has been picked.
func (s *DefaultFlowService) Continue(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	draft, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.State != models.DraftSelectingSlot {
		return nil, NewStateError("continue is only allowed in the selecting_slot state")
	}
	if !draft.HasSlot() {
		return nil, NewValidationError("select a slot before continuing")
	}

	draft.State = models.DraftEnteringDetails
	if err := s.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back returns the draft to slot selection. The picked slot is kept so the
// visitor sees it highlighted again.
func (s *DefaultFlowService) Back(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	draft, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.State != models.DraftEnteringDetails {
		return nil, NewStateError("back is only allowed in the entering_details state")
	}

	draft.State = models.DraftSelectingSlot
	if err := s.Sessions.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Cancel discards the draft session. Cancelling a session that has already
// expired is not an error.
func (s *DefaultFlowService) Cancel(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateDetails(d models.ContactDetails) error {
	if strings.TrimSpace(d.ClientName) == "" {
		return NewValidationError("name is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(d.ClientEmail)) {
		return NewValidationError("a valid email address is required")
	}
	return nil
}

func validStartMinute(m int) bool {
	for _, c := range availability.CandidateStartMinutes() {
		if c == m {
			return true
		}
	}
	return false
}

// Submit validates the contact details, re-checks the slot against current
// bookings, persists the showing, and fires the confirmation email without
// blocking the response. On any failure before persistence the draft stays
// where it is so the visitor can correct and retry.
func (s *DefaultFlowService) Submit(ctx context.Context, sessionID string, details models.ContactDetails) (*models.Booking, error) {
	draft, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft.State != models.DraftEnteringDetails {
		return nil, NewStateError("submit is only allowed in the entering_details state")
	}
	if !draft.HasSlot() {
		return nil, NewStateError("the draft has no slot")
	}
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	day, err := time.Parse(availability.DateLayout, draft.Date)
	if err != nil {
		return nil, NewValidationError("the draft slot date is malformed")
	}
	scheduledAt := availability.SlotInstant(day, draft.StartMinute)
	if scheduledAt.Before(s.now()) {
		return nil, NewValidationError("the selected slot is in the past")
	}

	// Availability shown during selection is advisory. The count below is the
	// authoritative check at the persistence boundary; a booking written
	// between this count and Create can still slip through, which the store
	// tolerates and the dashboard surfaces.
	end := scheduledAt.Add(availability.DefaultShowingMinutes * time.Minute)
	overlapping, err := s.Bookings.CountOverlapping(ctx, draft.AgentID, scheduledAt, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrSlotTaken
	}

	booking := &models.Booking{
		AgentID:         draft.AgentID,
		ListingID:       draft.ListingID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: availability.DefaultShowingMinutes,
		Status:          models.BookingPending,
		ClientName:      strings.TrimSpace(details.ClientName),
		ClientEmail:     strings.TrimSpace(details.ClientEmail),
		ClientPhone:     strings.TrimSpace(details.ClientPhone),
		Notes:           details.Notes,
		Location:        details.Location,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	// The flow is done; the success screen is rendered from the returned
	// booking, so the session can go away now.
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to delete booking session after submit",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	if s.Feed != nil {
		if err := s.Feed.PublishBookingEvent(ctx, realtime.Event{
			Type:    realtime.EventInsert,
			AgentID: booking.AgentID,
			Booking: *booking,
		}); err != nil {
			utils.GetLogger().Warn("failed to publish booking insert event",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	s.sendConfirmation(*booking)

	return booking, nil
}

// sendConfirmation dispatches the confirmation email on a detached goroutine.
// The submission already succeeded; a delivery failure is logged, never
// surfaced to the visitor.
func (s *DefaultFlowService) sendConfirmation(b models.Booking) {
	if s.Mail == nil {
		return
	}
	agentName := "your agent"
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if agent, err := s.Agents.GetByID(ctx, b.AgentID); err == nil {
			agentName = agent.Name
		}
		subject, htmlBody, textBody := notification.ConfirmationEmail(b, agentName)
		if err := s.Mail.Send(ctx, b.ClientEmail, subject, htmlBody, textBody); err != nil {
			utils.GetLogger().Error("failed to send booking confirmation email",
				zap.String("bookingID", b.ID),
				zap.String("to", b.ClientEmail),
				zap.Error(err))
		}
	}()
}
