package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"agentlinker/config"
	"agentlinker/middleware"
	"agentlinker/services/billing"
)

// Stripe recommends capping webhook bodies at 64KB.
const maxWebhookBody = 65536

// BillingHandler serves checkout creation and the Stripe webhook.
type BillingHandler struct {
	Svc    *billing.Service
	Logger *zap.Logger
}

// NewBillingHandler constructs a BillingHandler.
func NewBillingHandler(svc *billing.Service, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{Svc: svc, Logger: logger}
}

// CreateCheckout opens a Stripe checkout session for a tier upgrade and
// returns the hosted payment URL.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var input struct {
		Tier string `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	url, err := h.Svc.CreateCheckoutSession(c.Request.Context(), middleware.AgentID(c), input.Tier)
	if err != nil {
		h.Logger.Error("failed to create checkout session", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Webhook receives Stripe events. The signature is verified against the
// webhook secret before anything is applied.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		h.Logger.Warn("rejected stripe webhook", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	if err := h.Svc.HandleEvent(c.Request.Context(), event); err != nil {
		h.Logger.Error("failed to apply stripe event",
			zap.String("type", string(event.Type)), zap.Error(err))
		// Non-2xx makes Stripe retry the event later.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// GetFeatures returns the authenticated agent's current tier features.
func (h *BillingHandler) GetFeatures(c *gin.Context) {
	agent, err := h.Svc.Agents.GetByID(c.Request.Context(), middleware.AgentID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}
	c.JSON(http.StatusOK, billing.Features(agent.Tier))
}
