// File: agentlinker/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentlinker/config"
	"agentlinker/cron"
	"agentlinker/database"
	agentRepoPkg "agentlinker/database/repository/agent"
	bookingRepoPkg "agentlinker/database/repository/booking"
	leadRepoPkg "agentlinker/database/repository/lead"
	listingRepoPkg "agentlinker/database/repository/listing"
	"agentlinker/handlers"
	"agentlinker/middleware"
	"agentlinker/routes"
	agentSvc "agentlinker/services/agent"
	"agentlinker/services/billing"
	"agentlinker/services/booking"
	leadSvc "agentlinker/services/lead"
	listingSvc "agentlinker/services/listing"
	"agentlinker/services/notification"
	"agentlinker/services/realtime"
	"agentlinker/services/tasks"
	"agentlinker/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	agentRepo := agentRepoPkg.NewMongoAgentRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	listingRepo := listingRepoPkg.NewMongoListingRepo()
	leadRepo := leadRepoPkg.NewMongoLeadRepo()

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer indexCancel()
	for _, ensure := range []func(context.Context) error{
		agentRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		listingRepo.EnsureIndexes,
		leadRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	mailSender := notification.NewSMTPEmailSender()
	feed := realtime.NewRedisFeed(utils.GetFeedClient())
	sessions := booking.NewRedisSessionStore(utils.GetSessionCacheClient())
	reminders := tasks.NewAsynqReminderScheduler()

	flowService := booking.NewFlowService(sessions, bookingRepo, agentRepo, feed, mailSender)
	dashboardService := booking.NewDashboardService(bookingRepo, agentRepo, feed, mailSender, reminders)
	agentService := agentSvc.NewService(agentRepo, listingRepo)
	listingService := listingSvc.NewService(listingRepo, agentRepo)
	leadService := leadSvc.NewService(leadRepo, agentRepo)
	billingService := billing.NewService(agentRepo)

	// Start the reminder worker in background.
	cron.InitReminderWorker(mailSender)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(flowService, dashboardService, logger)
	agentHandler := handlers.NewAgentHandler(agentService, logger)
	listingHandler := handlers.NewListingHandler(listingService, logger)
	leadHandler := handlers.NewLeadHandler(leadService, logger)
	billingHandler := handlers.NewBillingHandler(billingService, logger)
	realtimeHandler := handlers.NewRealtimeHandler(feed, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Public booking flow.
		GetWeeklyAvailability: bookingHandler.GetWeeklyAvailability,
		StartSession:          bookingHandler.StartSession,
		SelectSlot:            bookingHandler.SelectSlot,
		ContinueSession:       bookingHandler.ContinueSession,
		BackToSlotSelection:   bookingHandler.BackToSlotSelection,
		SubmitBooking:         bookingHandler.SubmitBooking,
		CancelSession:         bookingHandler.CancelSession,

		// Dashboard bookings.
		ListBookings:        bookingHandler.ListBookings,
		UpdateBookingStatus: bookingHandler.UpdateBookingStatus,
		DeleteBooking:       bookingHandler.DeleteBooking,
		StreamBookings:      realtimeHandler.StreamBookings,

		// Accounts and public pages.
		RegisterAgent:    agentHandler.Register,
		LoginAgent:       agentHandler.Login,
		GetMe:            agentHandler.GetMe,
		UpdateProfile:    agentHandler.UpdateProfile,
		GetPublicProfile: agentHandler.PublicProfile,

		// Listings.
		CreateListing: listingHandler.CreateListing,
		GetListing:    listingHandler.GetListing,
		ListListings:  listingHandler.ListListings,
		UpdateListing: listingHandler.UpdateListing,
		DeleteListing: listingHandler.DeleteListing,

		// Leads.
		CaptureLead:      leadHandler.CaptureLead,
		ListLeads:        leadHandler.ListLeads,
		UpdateLeadStatus: leadHandler.UpdateLeadStatus,
		DeleteLead:       leadHandler.DeleteLead,

		// Billing.
		CreateCheckout: billingHandler.CreateCheckout,
		StripeWebhook:  billingHandler.Webhook,
		GetFeatures:    billingHandler.GetFeatures,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
