package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"agentlinker/models"
	"agentlinker/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventType labels a booking change-feed event.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is one booking change pushed to calendar views watching an agent.
type Event struct {
	Type    EventType      `json:"type"`
	AgentID string         `json:"agentId"`
	Booking models.Booking `json:"booking"`
}

// Publisher pushes booking change events onto an agent's feed channel.
type Publisher interface {
	PublishBookingEvent(ctx context.Context, ev Event) error
}

// ChannelFor returns the feed channel name for one agent.
func ChannelFor(agentID string) string {
	return "bookings:" + agentID
}

// RedisFeed implements the change feed over Redis pub/sub.
type RedisFeed struct {
	client *redis.Client
}

// NewRedisFeed constructs a feed over the given Redis client.
func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) PublishBookingEvent(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}
	if err := f.client.Publish(ctx, ChannelFor(ev.AgentID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish feed event: %w", err)
	}
	return nil
}

// Subscription is an explicit handle on one agent's booking feed. The owner
// of the calendar view holds it and must Close it when the view goes away.
type Subscription struct {
	pubsub *redis.PubSub
	events chan Event
}

// Subscribe opens a subscription for the agent's booking changes. Decoding
// runs on a background goroutine that exits when the subscription closes.
func (f *RedisFeed) Subscribe(ctx context.Context, agentID string) *Subscription {
	pubsub := f.client.Subscribe(ctx, ChannelFor(agentID))
	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan Event, 16),
	}

	go func() {
		defer close(sub.events)
		logger := utils.GetLogger()
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("dropping malformed feed event",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			sub.events <- ev
		}
	}()

	return sub
}

// Events returns the event stream. The channel closes after Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close tears the subscription down and stops the decode goroutine.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
