package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"agentlinker/models"
	"agentlinker/services/availability"
	"agentlinker/services/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// --- fakes ---

type fakeSessionStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := d
	return &copied, nil
}

func (s *fakeSessionStore) Save(_ context.Context, draft *models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.SessionID] = *draft
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

type fakeBookingRepo struct {
	mu          sync.Mutex
	bookings    []models.Booking
	createErr   error
	overlapping int64
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.New().String()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, agentID, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.AgentID == agentID && b.ID == bookingID {
			copied := b
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBookingRepo) FindForAgentWindow(_ context.Context, agentID string, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.AgentID == agentID && b.IsActive() && b.ScheduledAt.Before(to) && b.End().After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByAgent(_ context.Context, agentID string, _ int64) ([]models.Booking, error) {
	return r.FindForAgentWindow(context.Background(), agentID, time.Time{}, time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, agentID, bookingID, status string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.AgentID == agentID && b.ID == bookingID {
			r.bookings[i].Status = status
			copied := r.bookings[i]
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBookingRepo) Delete(_ context.Context, agentID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.AgentID == agentID && b.ID == bookingID {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeBookingRepo) CountOverlapping(_ context.Context, _ string, _, _ time.Time) (int64, error) {
	return r.overlapping, nil
}

func (r *fakeBookingRepo) EnsureIndexes(_ context.Context) error { return nil }

func (r *fakeBookingRepo) created() []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Booking(nil), r.bookings...)
}

type fakeAgentRepo struct {
	agent *models.Agent
}

func (r *fakeAgentRepo) Create(_ context.Context, _ *models.Agent) error { return nil }

func (r *fakeAgentRepo) GetByID(_ context.Context, agentID string) (*models.Agent, error) {
	if r.agent != nil && r.agent.ID == agentID {
		return r.agent, nil
	}
	return nil, mongo.ErrNoDocuments
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

type fakeFeed struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (f *fakeFeed) PublishBookingEvent(_ context.Context, ev realtime.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeFeed) published() []realtime.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]realtime.Event(nil), f.events...)
}

type fakeMail struct {
	mu   sync.Mutex
	sent chan string
	err  error
}

func newFakeMail(err error) *fakeMail {
	return &fakeMail{sent: make(chan string, 4), err: err}
}

func (m *fakeMail) Send(_ context.Context, to, _, _, _ string) error {
	m.sent <- to
	return m.err
}

// --- helpers ---

var testNow = time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC)

func newTestFlow(repo *fakeBookingRepo, mail *fakeMail) (*DefaultFlowService, *fakeSessionStore, *fakeFeed) {
	sessions := newFakeSessionStore()
	feed := &fakeFeed{}
	svc := NewFlowService(sessions, repo, &fakeAgentRepo{agent: &models.Agent{ID: "agent-1", Name: "Dana Reyes"}}, feed, mail)
	svc.Now = func() time.Time { return testNow }
	return svc, sessions, feed
}

func startedDraft(t *testing.T, svc *DefaultFlowService) *models.BookingDraft {
	t.Helper()
	draft, err := svc.Start(context.Background(), "agent-1", "listing-1")
	require.NoError(t, err)
	require.Equal(t, models.DraftSelectingSlot, draft.State)
	return draft
}

func draftAtDetails(t *testing.T, svc *DefaultFlowService) *models.BookingDraft {
	t.Helper()
	draft := startedDraft(t, svc)
	_, err := svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-11", 10*60)
	require.NoError(t, err)
	draft, err = svc.Continue(context.Background(), draft.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.DraftEnteringDetails, draft.State)
	return draft
}

// --- flow tests ---

func TestStartUnknownAgent(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	_, err := svc.Start(context.Background(), "nobody", "")
	assert.Error(t, err)
}

func TestSelectSlotStoresAndReplacesPick(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := startedDraft(t, svc)

	updated, err := svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-11", 10*60)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", updated.Date)
	assert.Equal(t, 600, updated.StartMinute)

	// Picking again replaces the previous slot.
	updated, err = svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-12", 14*60)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", updated.Date)
	assert.Equal(t, 840, updated.StartMinute)
}

func TestSelectSlotRejectsPastAndOffGrid(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := startedDraft(t, svc)

	// 09:00 today is behind the 09:30 test clock.
	_, err := svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-10", 9*60)
	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeValidation, fe.Code)

	// 10:10 is not a grid start.
	_, err = svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-11", 10*60+10)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeValidation, fe.Code)

	// 17:00 is past the last start of the day.
	_, err = svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-11", 17*60)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeValidation, fe.Code)
}

func TestContinueRequiresSlot(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := startedDraft(t, svc)

	_, err := svc.Continue(context.Background(), draft.SessionID)
	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeValidation, fe.Code)

	_, err = svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-11", 10*60)
	require.NoError(t, err)
	advanced, err := svc.Continue(context.Background(), draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftEnteringDetails, advanced.State)
}

func TestBackPreservesSlot(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := draftAtDetails(t, svc)

	back, err := svc.Back(context.Background(), draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftSelectingSlot, back.State)
	assert.Equal(t, "2024-06-11", back.Date)
	assert.Equal(t, 600, back.StartMinute)
}

func TestSelectSlotRejectedOutsideSelectingState(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := draftAtDetails(t, svc)

	_, err := svc.SelectSlot(context.Background(), draft.SessionID, "2024-06-12", 11*60)
	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeInvalidState, fe.Code)
}

func TestCancelDiscardsSession(t *testing.T) {
	svc, sessions, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := startedDraft(t, svc)

	require.NoError(t, svc.Cancel(context.Background(), draft.SessionID))
	_, err := sessions.Get(context.Background(), draft.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpiry(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	_, err := svc.Continue(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// --- submission tests ---

func TestSubmitPersistsPendingBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	mail := newFakeMail(nil)
	svc, sessions, feed := newTestFlow(repo, mail)
	draft := draftAtDetails(t, svc)

	b, err := svc.Submit(context.Background(), draft.SessionID, models.ContactDetails{
		ClientName:  "Jordan Avery",
		ClientEmail: "jordan@example.com",
		Location:    "12 Elm St",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "agent-1", b.AgentID)
	assert.Equal(t, "listing-1", b.ListingID)
	assert.Equal(t, time.Date(2024, time.June, 11, 10, 0, 0, 0, time.UTC), b.ScheduledAt)
	assert.Equal(t, availability.DefaultShowingMinutes, b.DurationMinutes)
	require.Len(t, repo.created(), 1)

	// Session is gone, the insert event is on the feed, the email went out.
	_, err = sessions.Get(context.Background(), draft.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.Len(t, feed.published(), 1)
	assert.Equal(t, realtime.EventInsert, feed.published()[0].Type)

	select {
	case to := <-mail.sent:
		assert.Equal(t, "jordan@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never sent")
	}
}

func TestSubmitValidationBlocksPersistence(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, sessions, _ := newTestFlow(repo, newFakeMail(nil))
	draft := draftAtDetails(t, svc)

	cases := []models.ContactDetails{
		{ClientName: "", ClientEmail: "jordan@example.com"},
		{ClientName: "   ", ClientEmail: "jordan@example.com"},
		{ClientName: "Jordan", ClientEmail: ""},
		{ClientName: "Jordan", ClientEmail: "not-an-email"},
	}
	for _, details := range cases {
		_, err := svc.Submit(context.Background(), draft.SessionID, details)
		var fe *FlowError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, CodeValidation, fe.Code)
	}

	assert.Empty(t, repo.created())
	// The draft survives for another attempt.
	got, err := sessions.Get(context.Background(), draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.DraftEnteringDetails, got.State)
}

func TestSubmitRejectedWhenSlotTaken(t *testing.T) {
	repo := &fakeBookingRepo{overlapping: 1}
	svc, sessions, _ := newTestFlow(repo, newFakeMail(nil))
	draft := draftAtDetails(t, svc)

	_, err := svc.Submit(context.Background(), draft.SessionID, models.ContactDetails{
		ClientName:  "Jordan Avery",
		ClientEmail: "jordan@example.com",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, repo.created())

	_, err = sessions.Get(context.Background(), draft.SessionID)
	assert.NoError(t, err)
}

func TestSubmitRejectedOutsideDetailsState(t *testing.T) {
	svc, _, _ := newTestFlow(&fakeBookingRepo{}, newFakeMail(nil))
	draft := startedDraft(t, svc)

	_, err := svc.Submit(context.Background(), draft.SessionID, models.ContactDetails{
		ClientName:  "Jordan Avery",
		ClientEmail: "jordan@example.com",
	})
	var fe *FlowError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeInvalidState, fe.Code)
}

func TestSubmitSucceedsWhenEmailFails(t *testing.T) {
	repo := &fakeBookingRepo{}
	mail := newFakeMail(errors.New("smtp down"))
	svc, _, _ := newTestFlow(repo, mail)
	draft := draftAtDetails(t, svc)

	b, err := svc.Submit(context.Background(), draft.SessionID, models.ContactDetails{
		ClientName:  "Jordan Avery",
		ClientEmail: "jordan@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	require.Len(t, repo.created(), 1)

	// The send was attempted and failed; the submission is unaffected.
	select {
	case <-mail.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never attempted")
	}
}

func TestSubmitPersistFailureKeepsSession(t *testing.T) {
	repo := &fakeBookingRepo{createErr: errors.New("write failed")}
	svc, sessions, feed := newTestFlow(repo, newFakeMail(nil))
	draft := draftAtDetails(t, svc)

	_, err := svc.Submit(context.Background(), draft.SessionID, models.ContactDetails{
		ClientName:  "Jordan Avery",
		ClientEmail: "jordan@example.com",
	})
	require.Error(t, err)

	_, err = sessions.Get(context.Background(), draft.SessionID)
	assert.NoError(t, err)
	assert.Empty(t, feed.published())
}

func TestWeeklyAvailabilityReflectsBookings(t *testing.T) {
	repo := &fakeBookingRepo{}
	svc, _, _ := newTestFlow(repo, newFakeMail(nil))
	require.NoError(t, repo.Create(context.Background(), &models.Booking{
		AgentID:         "agent-1",
		ScheduledAt:     time.Date(2024, time.June, 11, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          models.BookingConfirmed,
	}))

	week, err := svc.WeeklyAvailability(context.Background(), "agent-1", time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	tuesday := week.Days[1]
	assert.Equal(t, "2024-06-11", tuesday.Date)
	assert.Equal(t, models.SlotBooked, tuesday.Slots[2].Status)
	assert.Equal(t, models.SlotAvailable, tuesday.Slots[3].Status)
}
