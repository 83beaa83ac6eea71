package routes

import (
	"net/http"
	"time"

	"agentlinker/handlers"
	"agentlinker/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers everything a visitor can reach without an
// account: bio pages, availability, the booking flow, and lead capture.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public")
	{
		api.GET("/agents/:slug", hb.GetPublicProfile)
		api.GET("/availability/:agentID", hb.GetWeeklyAvailability)
		api.POST("/leads/:agentID", hb.CaptureLead)

		api.POST("/booking/session", hb.StartSession)
		api.PUT("/booking/session/:sessionID/slot", hb.SelectSlot)
		api.POST("/booking/session/:sessionID/continue", hb.ContinueSession)
		api.POST("/booking/session/:sessionID/back", hb.BackToSlotSelection)
		api.POST("/booking/session/:sessionID/submit", hb.SubmitBooking)
		api.DELETE("/booking/session/:sessionID", hb.CancelSession)
	}
}

// RegisterAgentRoutes registers account endpoints.
func RegisterAgentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/agents")
	{
		api.POST("/register", hb.RegisterAgent)
		api.POST("/login", hb.LoginAgent)

		// Protected routes (Require Authentication)
		api.Use(middleware.AgentAuthMiddleware())
		api.GET("/me", hb.GetMe)
		api.PATCH("/me", hb.UpdateProfile)
	}
}

// RegisterBookingRoutes registers the dashboard booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AgentAuthMiddleware())
		api.GET("", hb.ListBookings)
		api.GET("/stream", hb.StreamBookings)
		api.PATCH("/:bookingID/status", hb.UpdateBookingStatus)
		api.DELETE("/:bookingID", hb.DeleteBooking)
	}
}

// RegisterListingRoutes registers dashboard listing management.
func RegisterListingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/listings")
	{
		api.Use(middleware.AgentAuthMiddleware())
		api.POST("", hb.CreateListing)
		api.GET("", hb.ListListings)
		api.GET("/:listingID", hb.GetListing)
		api.PATCH("/:listingID", hb.UpdateListing)
		api.DELETE("/:listingID", hb.DeleteListing)
	}
}

// RegisterLeadRoutes registers the dashboard lead pipeline.
func RegisterLeadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leads")
	{
		api.Use(middleware.AgentAuthMiddleware())
		api.GET("", hb.ListLeads)
		api.PATCH("/:leadID/status", hb.UpdateLeadStatus)
		api.DELETE("/:leadID", hb.DeleteLead)
	}
}

// RegisterBillingRoutes registers checkout and the Stripe webhook. The
// webhook stays outside auth; Stripe signs its own requests.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/billing/webhook", hb.StripeWebhook)

	api := r.Group("/api/billing")
	{
		api.Use(middleware.AgentAuthMiddleware())
		api.POST("/checkout", hb.CreateCheckout)
		api.GET("/features", hb.GetFeatures)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm AgentLinker"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterAgentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterListingRoutes(r, hb)
	RegisterLeadRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterHealthRoute(r)
}
