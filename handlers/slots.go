package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brightpath/middleware"
	"brightpath/models"
	"brightpath/services/scheduling"
	"brightpath/utils"
)

// SlotHandler exposes slot management and availability reads.
type SlotHandler struct {
	Service scheduling.SlotService
	Logger  *zap.Logger
}

// NewSlotHandler constructs a SlotHandler.
func NewSlotHandler(svc scheduling.SlotService, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{Service: svc, Logger: logger}
}

// CreateSlot creates one slot. Overlap warnings come back alongside the slot;
// they are advisory and never block creation.
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slot, warnings, err := h.Service.CreateSlot(c.Request.Context(), principal.ID, req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create slot", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot, "warnings": warnings})
}

// CreateSlots bulk-creates slots.
func (h *SlotHandler) CreateSlots(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.CreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ids, err := h.Service.CreateSlots(c.Request.Context(), principal.ID, req)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create slots", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

// CreateRecurring expands a recurrence rule into concrete slots and stores them.
func (h *SlotHandler) CreateRecurring(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var rule models.RecurrenceRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ids, err := h.Service.CreateRecurring(c.Request.Context(), principal.ID, rule)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to expand recurrence", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ids": ids, "count": len(ids)})
}

// DeleteSlot removes an unbooked slot.
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	if err := h.Service.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		switch err {
		case scheduling.ErrSlotNotFound:
			utils.JSONErrorCode(c, http.StatusNotFound, scheduling.ErrSlotNotFound.Code, scheduling.ErrSlotNotFound.Message)
		case scheduling.ErrSlotAlreadyBooked:
			utils.JSONErrorCode(c, http.StatusConflict, scheduling.ErrSlotAlreadyBooked.Code, "slot has an active booking")
		default:
			h.Logger.Error("slot delete failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete slot", "")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAvailable serves unbooked upcoming slots from the cache snapshot.
func (h *SlotHandler) ListAvailable(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.Service.AvailableSlots()})
}

// ListInRange serves cached slots overlapping [from, to).
func (h *SlotHandler) ListInRange(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid 'from' timestamp", err.Error())
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid 'to' timestamp", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": h.Service.SlotsInRange(from, to)})
}
