package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"agentlinker/middleware"
	"agentlinker/services/agent"
)

// AgentHandler serves account endpoints and the public bio page.
type AgentHandler struct {
	Svc    *agent.Service
	Logger *zap.Logger
}

// NewAgentHandler constructs an AgentHandler.
func NewAgentHandler(svc *agent.Service, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{Svc: svc, Logger: logger}
}

// Register creates a new agent account.
func (h *AgentHandler) Register(c *gin.Context) {
	var input agent.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, token, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agent": a, "token": token})
}

// Login authenticates an agent and returns a session token.
func (h *AgentHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, token, err := h.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": a, "token": token})
}

// GetMe returns the authenticated agent's own record.
func (h *AgentHandler) GetMe(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), middleware.AgentID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateProfile applies a partial profile update.
func (h *AgentHandler) UpdateProfile(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	a, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.AgentID(c), updates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

// PublicProfile serves an agent's public bio page by slug.
func (h *AgentHandler) PublicProfile(c *gin.Context) {
	profile, err := h.Svc.PublicProfile(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
			return
		}
		h.Logger.Error("failed to load public profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
