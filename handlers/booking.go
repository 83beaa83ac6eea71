package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"agentlinker/middleware"
	"agentlinker/models"
	"agentlinker/services/availability"
	"agentlinker/services/booking"
)

// BookingHandler serves the public booking flow and the agent's dashboard
// booking operations.
type BookingHandler struct {
	Flow      booking.FlowService
	Dashboard booking.DashboardService
	Logger    *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(flow booking.FlowService, dashboard booking.DashboardService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Flow: flow, Dashboard: dashboard, Logger: logger}
}

// flowStatus maps flow error codes to HTTP statuses.
func flowStatus(code string) int {
	switch code {
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeSessionGone:
		return http.StatusNotFound
	case booking.CodeInvalidState, booking.CodeSlotTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var fe *booking.FlowError
	if errors.As(err, &fe) {
		c.JSON(flowStatus(fe.Code), gin.H{"error": fe.Message, "code": fe.Code})
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.Logger.Error("booking request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// GetWeeklyAvailability returns the slot grid for one week of an agent's
// calendar. The week query parameter is the week's first day; it defaults to
// today.
func (h *BookingHandler) GetWeeklyAvailability(c *gin.Context) {
	agentID := c.Param("agentID")

	weekStart := time.Now().UTC()
	if week := c.Query("week"); week != "" {
		parsed, err := time.Parse(availability.DateLayout, week)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week, expected YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	grid, err := h.Flow.WeeklyAvailability(c.Request.Context(), agentID, weekStart)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// StartSession opens a booking draft for an agent's calendar.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		AgentID   string `json:"agentId" binding:"required"`
		ListingID string `json:"listingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Flow.Start(c.Request.Context(), input.AgentID, input.ListingID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// SelectSlot records the visitor's slot pick on the draft.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var input struct {
		Date  string `json:"date" binding:"required"`
		Start int    `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	draft, err := h.Flow.SelectSlot(c.Request.Context(), c.Param("sessionID"), input.Date, input.Start)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ContinueSession advances the draft to the details form.
func (h *BookingHandler) ContinueSession(c *gin.Context) {
	draft, err := h.Flow.Continue(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// BackToSlotSelection returns the draft to the slot grid.
func (h *BookingHandler) BackToSlotSelection(c *gin.Context) {
	draft, err := h.Flow.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SubmitBooking finalizes the draft into a pending showing.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var details models.ContactDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Flow.Submit(c.Request.Context(), c.Param("sessionID"), details)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"state": models.DraftSuccess, "booking": b})
}

// CancelSession discards the draft.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Flow.Cancel(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// ListBookings returns the authenticated agent's bookings. With from/to query
// parameters it returns the calendar window, otherwise the recent list.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	agentID := middleware.AgentID(c)

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err1 := time.Parse(availability.DateLayout, fromStr)
		to, err2 := time.Parse(availability.DateLayout, toStr)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from/to, expected YYYY-MM-DD"})
			return
		}
		bookings, err := h.Dashboard.ListWindow(c.Request.Context(), agentID, from, to.AddDate(0, 0, 1))
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := h.Dashboard.List(c.Request.Context(), agentID, 100)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus applies a status transition from the dashboard.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	b, err := h.Dashboard.UpdateStatus(c.Request.Context(), middleware.AgentID(c), c.Param("bookingID"), input.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking removes a booking from the agent's calendar.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.Dashboard.Delete(c.Request.Context(), middleware.AgentID(c), c.Param("bookingID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
