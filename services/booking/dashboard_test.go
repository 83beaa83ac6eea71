package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"agentlinker/models"
	"agentlinker/services/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeReminderScheduler struct {
	mu        sync.Mutex
	scheduled []models.ReminderPayload
	fireAts   []time.Time
}

func (s *fakeReminderScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, payload)
	s.fireAts = append(s.fireAts, fireAt)
	return nil
}

func newTestDashboard(repo *fakeBookingRepo, mail *fakeMail) (*DefaultDashboardService, *fakeFeed, *fakeReminderScheduler) {
	feed := &fakeFeed{}
	reminders := &fakeReminderScheduler{}
	agents := &fakeAgentRepo{agent: &models.Agent{ID: "agent-1", Name: "Dana Reyes"}}
	return NewDashboardService(repo, agents, feed, mail, reminders), feed, reminders
}

func seedBooking(t *testing.T, repo *fakeBookingRepo, status string, scheduledAt time.Time) models.Booking {
	t.Helper()
	b := &models.Booking{
		AgentID:         "agent-1",
		ScheduledAt:     scheduledAt,
		DurationMinutes: 30,
		Status:          status,
		ClientName:      "Jordan Avery",
		ClientEmail:     "jordan@example.com",
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return *b
}

func TestUpdateStatusConfirmSchedulesReminder(t *testing.T) {
	repo := &fakeBookingRepo{}
	mail := newFakeMail(nil)
	svc, feed, reminders := newTestDashboard(repo, mail)

	showingAt := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)
	b := seedBooking(t, repo, models.BookingPending, showingAt)

	updated, err := svc.UpdateStatus(context.Background(), "agent-1", b.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	require.Len(t, feed.published(), 1)
	assert.Equal(t, realtime.EventUpdate, feed.published()[0].Type)

	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, b.ID, reminders.scheduled[0].BookingID)
	assert.Equal(t, showingAt.Add(-time.Hour), reminders.fireAts[0])

	select {
	case to := <-mail.sent:
		assert.Equal(t, "jordan@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmed email was never sent")
	}
}

func TestUpdateStatusConfirmInsideReminderWindowSkipsReminder(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, _, reminders := newTestDashboard(repo, newFakeMail(nil))

	b := seedBooking(t, repo, models.BookingPending, time.Now().UTC().Add(20*time.Minute))

	_, err := svc.UpdateStatus(context.Background(), "agent-1", b.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Empty(t, reminders.scheduled)
}

func TestUpdateStatusRejectsIllegalTransitions(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, feed, _ := newTestDashboard(repo, newFakeMail(nil))

	cases := []struct {
		from, to string
	}{
		{models.BookingPending, models.BookingCompleted},
		{models.BookingCompleted, models.BookingConfirmed},
		{models.BookingCancelled, models.BookingConfirmed},
		{models.BookingConfirmed, models.BookingPending},
	}
	for _, tc := range cases {
		b := seedBooking(t, repo, tc.from, time.Now().UTC().Add(24*time.Hour))
		_, err := svc.UpdateStatus(context.Background(), "agent-1", b.ID, tc.to)
		var fe *FlowError
		require.ErrorAs(t, err, &fe, "%s -> %s should be rejected", tc.from, tc.to)
		assert.Equal(t, CodeInvalidState, fe.Code)
	}
	assert.Empty(t, feed.published())
}

func TestUpdateStatusCancelDoesNotNotify(t *testing.T) {
	repo := &fakeBookingRepo{}
	mail := newFakeMail(nil)
	svc, _, reminders := newTestDashboard(repo, mail)

	b := seedBooking(t, repo, models.BookingPending, time.Now().UTC().Add(24*time.Hour))
	updated, err := svc.UpdateStatus(context.Background(), "agent-1", b.ID, models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
	assert.Empty(t, reminders.scheduled)

	select {
	case <-mail.sent:
		t.Fatal("cancellation should not send the confirmed email")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDeletePublishesDeleteEvent(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, feed, _ := newTestDashboard(repo, newFakeMail(nil))

	b := seedBooking(t, repo, models.BookingPending, time.Now().UTC().Add(24*time.Hour))
	require.NoError(t, svc.Delete(context.Background(), "agent-1", b.ID))

	_, err := repo.GetByID(context.Background(), "agent-1", b.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	require.Len(t, feed.published(), 1)
	assert.Equal(t, realtime.EventDelete, feed.published()[0].Type)
	assert.Equal(t, b.ID, feed.published()[0].Booking.ID)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc, _, _ := newTestDashboard(&fakeBookingRepo{}, newFakeMail(nil))
	_, err := svc.UpdateStatus(context.Background(), "agent-1", "missing", models.BookingConfirmed)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}
