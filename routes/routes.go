// File: routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"brightpath/handlers"
	"brightpath/middleware"
	"brightpath/utils"
)

// SetupRoutes registers all HTTP routes on the gin engine.
func SetupRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	slotHandler *handlers.SlotHandler,
	specialistHandler *handlers.SpecialistHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, utils.GetHealthStatus())
	})

	api := r.Group("/api")

	// Slot reads are public so parents can browse openings before signing in.
	slots := api.Group("/slots")
	{
		slots.GET("/available", slotHandler.ListAvailable)
		slots.GET("/range", slotHandler.ListInRange)
	}

	slotAdmin := api.Group("/slots", middleware.AuthMiddleware(), middleware.RequireRole("operator"))
	{
		slotAdmin.POST("", slotHandler.CreateSlot)
		slotAdmin.POST("/batch", slotHandler.CreateSlots)
		slotAdmin.POST("/recurring", slotHandler.CreateRecurring)
		slotAdmin.DELETE("/:id", slotHandler.DeleteSlot)
	}

	bookings := api.Group("/bookings", middleware.AuthMiddleware())
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/mine", bookingHandler.ListMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/:id/confirm", middleware.RequireRole("specialist"), bookingHandler.ConfirmBooking)
		bookings.POST("/:id/complete", middleware.RequireRole("specialist"), bookingHandler.CompleteBooking)
	}

	specialists := api.Group("/specialists", middleware.AuthMiddleware())
	{
		specialists.GET("/available", specialistHandler.ListAvailable)
		specialists.GET("/:id", specialistHandler.Get)
		specialists.POST("", middleware.RequireRole("operator"), specialistHandler.Register)
		specialists.PUT("/:id/availability", specialistHandler.SetAvailability)
		specialists.PUT("/:id/schedule", specialistHandler.SetSchedule)
	}
}
