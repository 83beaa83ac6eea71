package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"agentlinker/middleware"
	"agentlinker/models"
	"agentlinker/services/listing"
)

// ListingHandler serves dashboard listing management.
type ListingHandler struct {
	Svc    *listing.Service
	Logger *zap.Logger
}

// NewListingHandler constructs a ListingHandler.
func NewListingHandler(svc *listing.Service, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

func (h *ListingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, listing.ErrListingLimit), errors.Is(err, listing.ErrFeaturedNotInTier):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
	default:
		h.Logger.Error("listing request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateListing inserts a listing for the authenticated agent.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var l models.Listing
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), middleware.AgentID(c), &l)
	if err != nil {
		if errors.Is(err, listing.ErrListingLimit) || errors.Is(err, listing.ErrFeaturedNotInTier) || errors.Is(err, mongo.ErrNoDocuments) {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetListing returns one of the agent's listings.
func (h *ListingHandler) GetListing(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), middleware.AgentID(c), c.Param("listingID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// ListListings returns all of the agent's listings.
func (h *ListingHandler) ListListings(c *gin.Context) {
	listings, err := h.Svc.List(c.Request.Context(), middleware.AgentID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listings)
}

// UpdateListing applies a partial update to one listing.
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	l, err := h.Svc.Update(c.Request.Context(), middleware.AgentID(c), c.Param("listingID"), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// DeleteListing removes one listing.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.AgentID(c), c.Param("listingID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
