package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"agentlinker/middleware"
	"agentlinker/models"
	"agentlinker/services/lead"
)

// LeadHandler serves public lead capture and the dashboard pipeline.
type LeadHandler struct {
	Svc    *lead.Service
	Logger *zap.Logger
}

// NewLeadHandler constructs a LeadHandler.
func NewLeadHandler(svc *lead.Service, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{Svc: svc, Logger: logger}
}

func (h *LeadHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lead.ErrPipelineNotInTier):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.Logger.Error("lead request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CaptureLead stores an enquiry submitted on a public agent page.
func (h *LeadHandler) CaptureLead(c *gin.Context) {
	var l models.Lead
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.Capture(c.Request.Context(), c.Param("agentID"), &l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListLeads returns the agent's pipeline, newest first.
func (h *LeadHandler) ListLeads(c *gin.Context) {
	leads, err := h.Svc.List(c.Request.Context(), middleware.AgentID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// UpdateLeadStatus moves a lead along the pipeline.
func (h *LeadHandler) UpdateLeadStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	l, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.AgentID(c), c.Param("leadID"), input.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// DeleteLead removes a lead from the pipeline.
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.AgentID(c), c.Param("leadID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
