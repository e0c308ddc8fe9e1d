package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"brightpath/middleware"
	"brightpath/models"
	"brightpath/services/scheduling"
	"brightpath/utils"
)

const idempotencyTTL = 24 * time.Hour

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service scheduling.BookingService
	Cache   *redis.Client
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc scheduling.BookingService, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Cache: cache, Logger: logger}
}

// CreateBooking reserves a slot for the authenticated user. An optional
// Idempotency-Key header makes retries return the originally created booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	idemKey := c.GetHeader("Idempotency-Key")
	if idemKey != "" && h.Cache != nil {
		if id, err := h.Cache.Get(c.Request.Context(), idemCacheKey(principal.ID, idemKey)).Result(); err == nil {
			booking, gerr := h.Service.GetBooking(c.Request.Context(), id)
			if gerr == nil {
				c.JSON(http.StatusOK, booking)
				return
			}
		}
	}

	booking, err := h.Service.CreateBooking(c.Request.Context(), principal, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if idemKey != "" && h.Cache != nil {
		if err := h.Cache.Set(context.Background(), idemCacheKey(principal.ID, idemKey), booking.ID, idempotencyTTL).Err(); err != nil {
			h.Logger.Warn("failed to store idempotency key", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, booking)
}

func idemCacheKey(userID, key string) string {
	return "booking:idem:" + userID + ":" + key
}

// CancelBooking cancels the booking and releases its slot.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking moves a pending booking to confirmed.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.Service.ConfirmBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBooking moves a confirmed booking to completed.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	booking, err := h.Service.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBooking returns a single booking by id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookings returns the authenticated user's bookings, newest first.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), principal.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) writeError(c *gin.Context, err error) {
	var domainErr *scheduling.Error
	if !errors.As(err, &domainErr) {
		h.Logger.Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
		return
	}
	utils.JSONErrorCode(c, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case scheduling.ErrSlotNotFound.Code, scheduling.ErrBookingNotFound.Code:
		return http.StatusNotFound
	case scheduling.ErrSlotAlreadyBooked.Code, scheduling.ErrNoSpecialistAvailable.Code, scheduling.ErrInvalidTransition.Code:
		return http.StatusConflict
	case scheduling.ErrMeetingProvisioning.Code:
		return http.StatusBadGateway
	case scheduling.ErrStoreUnavailable.Code:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
