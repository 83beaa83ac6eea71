package booking

import (
	"context"
	"fmt"
	"time"

	"agentlinker/models"
	"agentlinker/services/notification"
	"agentlinker/services/realtime"
	"agentlinker/services/tasks"
	"agentlinker/utils"

	agentRepo "agentlinker/database/repository/agent"
	bookingRepo "agentlinker/database/repository/booking"

	"go.uber.org/zap"
)

// reminderLead is how long before a confirmed showing the reminder fires.
const reminderLead = time.Hour

// DashboardService is the agent-facing side of bookings: the calendar list,
// status transitions, and deletion.
type DashboardService interface {
	ListWindow(ctx context.Context, agentID string, from, to time.Time) ([]models.Booking, error)
	List(ctx context.Context, agentID string, limit int64) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, agentID, bookingID, status string) (*models.Booking, error)
	Delete(ctx context.Context, agentID, bookingID string) error
}

// DefaultDashboardService is the production DashboardService wiring.
type DefaultDashboardService struct {
	Bookings  bookingRepo.BookingRepository
	Agents    agentRepo.AgentRepository
	Feed      realtime.Publisher
	Mail      notification.EmailSender
	Reminders tasks.ReminderScheduler
}

// NewDashboardService constructs the dashboard service over its collaborators.
func NewDashboardService(bookings bookingRepo.BookingRepository, agents agentRepo.AgentRepository, feed realtime.Publisher, mail notification.EmailSender, reminders tasks.ReminderScheduler) *DefaultDashboardService {
	return &DefaultDashboardService{
		Bookings:  bookings,
		Agents:    agents,
		Feed:      feed,
		Mail:      mail,
		Reminders: reminders,
	}
}

// Legal status transitions. Completed and cancelled are terminal.
var allowedTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *DefaultDashboardService) ListWindow(ctx context.Context, agentID string, from, to time.Time) ([]models.Booking, error) {
	return s.Bookings.FindForAgentWindow(ctx, agentID, from, to)
}

func (s *DefaultDashboardService) List(ctx context.Context, agentID string, limit int64) ([]models.Booking, error) {
	return s.Bookings.ListByAgent(ctx, agentID, limit)
}

// UpdateStatus applies one legal status transition. Confirming a showing also
// schedules the client reminder and sends the confirmation email; both are
// best-effort and never fail the transition.
func (s *DefaultDashboardService) UpdateStatus(ctx context.Context, agentID, bookingID, status string) (*models.Booking, error) {
	current, err := s.Bookings.GetByID(ctx, agentID, bookingID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(current.Status, status) {
		return nil, NewStateError(fmt.Sprintf("cannot move booking from %s to %s", current.Status, status))
	}

	updated, err := s.Bookings.UpdateStatus(ctx, agentID, bookingID, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventUpdate, *updated)

	if status == models.BookingConfirmed {
		s.scheduleReminder(*updated)
		s.sendConfirmed(*updated)
	}
	return updated, nil
}

func (s *DefaultDashboardService) Delete(ctx context.Context, agentID, bookingID string) error {
	b, err := s.Bookings.GetByID(ctx, agentID, bookingID)
	if err != nil {
		return err
	}
	if err := s.Bookings.Delete(ctx, agentID, bookingID); err != nil {
		return err
	}
	s.publish(ctx, realtime.EventDelete, *b)
	return nil
}

func (s *DefaultDashboardService) publish(ctx context.Context, typ realtime.EventType, b models.Booking) {
	if s.Feed == nil {
		return
	}
	if err := s.Feed.PublishBookingEvent(ctx, realtime.Event{
		Type:    typ,
		AgentID: b.AgentID,
		Booking: b,
	}); err != nil {
		utils.GetLogger().Warn("failed to publish booking feed event",
			zap.String("type", string(typ)),
			zap.String("bookingID", b.ID),
			zap.Error(err))
	}
}

func (s *DefaultDashboardService) scheduleReminder(b models.Booking) {
	if s.Reminders == nil {
		return
	}
	fireAt := b.ScheduledAt.Add(-reminderLead)
	if !fireAt.After(time.Now().UTC()) {
		// Confirmed inside the reminder window; a reminder now would just
		// duplicate the confirmation email.
		return
	}
	payload := models.ReminderPayload{
		BookingID:   b.ID,
		AgentID:     b.AgentID,
		ClientEmail: b.ClientEmail,
		ClientName:  b.ClientName,
		ScheduledAt: b.ScheduledAt.Format(time.RFC3339),
		Location:    b.Location,
	}
	if err := s.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Error("failed to schedule showing reminder",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}

func (s *DefaultDashboardService) sendConfirmed(b models.Booking) {
	if s.Mail == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		agentName := "your agent"
		if agent, err := s.Agents.GetByID(ctx, b.AgentID); err == nil {
			agentName = agent.Name
		}
		subject, htmlBody, textBody := notification.ConfirmedEmail(b, agentName)
		if err := s.Mail.Send(ctx, b.ClientEmail, subject, htmlBody, textBody); err != nil {
			utils.GetLogger().Error("failed to send showing confirmed email",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}()
}
