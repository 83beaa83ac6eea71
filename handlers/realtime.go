package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agentlinker/middleware"
	"agentlinker/services/realtime"
)

// RealtimeHandler streams booking change events to dashboard calendar views.
type RealtimeHandler struct {
	Feed   *realtime.RedisFeed
	Logger *zap.Logger
}

// NewRealtimeHandler constructs a RealtimeHandler.
func NewRealtimeHandler(feed *realtime.RedisFeed, logger *zap.Logger) *RealtimeHandler {
	return &RealtimeHandler{Feed: feed, Logger: logger}
}

// StreamBookings serves the agent's booking feed over SSE. The subscription
// lives exactly as long as the request: it is closed when the client
// disconnects, so an abandoned calendar view cannot leak a feed consumer.
func (h *RealtimeHandler) StreamBookings(c *gin.Context) {
	agentID := middleware.AgentID(c)

	sub := h.Feed.Subscribe(c.Request.Context(), agentID)
	defer func() {
		if err := sub.Close(); err != nil {
			h.Logger.Warn("failed to close booking feed subscription",
				zap.String("agentID", agentID), zap.Error(err))
		}
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return false
			}
			data, err := json.Marshal(ev)
			if err != nil {
				h.Logger.Warn("failed to marshal feed event", zap.Error(err))
				return true
			}
			c.SSEvent(string(ev.Type), string(data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
