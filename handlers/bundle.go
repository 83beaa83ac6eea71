package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates every route handler for registration.
type HandlerBundle struct {
	// Public booking flow.
	GetWeeklyAvailability gin.HandlerFunc
	StartSession          gin.HandlerFunc
	SelectSlot            gin.HandlerFunc
	ContinueSession       gin.HandlerFunc
	BackToSlotSelection   gin.HandlerFunc
	SubmitBooking         gin.HandlerFunc
	CancelSession         gin.HandlerFunc

	// Dashboard bookings.
	ListBookings        gin.HandlerFunc
	UpdateBookingStatus gin.HandlerFunc
	DeleteBooking       gin.HandlerFunc
	StreamBookings      gin.HandlerFunc

	// Accounts and public pages.
	RegisterAgent      gin.HandlerFunc
	LoginAgent         gin.HandlerFunc
	GetMe              gin.HandlerFunc
	UpdateProfile      gin.HandlerFunc
	GetPublicProfile   gin.HandlerFunc

	// Listings.
	CreateListing gin.HandlerFunc
	GetListing    gin.HandlerFunc
	ListListings  gin.HandlerFunc
	UpdateListing gin.HandlerFunc
	DeleteListing gin.HandlerFunc

	// Leads.
	CaptureLead      gin.HandlerFunc
	ListLeads        gin.HandlerFunc
	UpdateLeadStatus gin.HandlerFunc
	DeleteLead       gin.HandlerFunc

	// Billing.
	CreateCheckout gin.HandlerFunc
	StripeWebhook  gin.HandlerFunc
	GetFeatures    gin.HandlerFunc
}
