package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	specialistRepo "brightpath/database/repository/specialist"
	"brightpath/models"
	"brightpath/utils"
)

// SpecialistHandler manages the specialist registry.
type SpecialistHandler struct {
	Repo   specialistRepo.SpecialistRepository
	Logger *zap.Logger
}

// NewSpecialistHandler constructs a SpecialistHandler.
func NewSpecialistHandler(repo specialistRepo.SpecialistRepository, logger *zap.Logger) *SpecialistHandler {
	return &SpecialistHandler{Repo: repo, Logger: logger}
}

// Register creates a specialist. New specialists start available.
func (h *SpecialistHandler) Register(c *gin.Context) {
	var req models.RegisterSpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	id, err := h.Repo.Create(c.Request.Context(), models.Specialist{
		Name:        req.Name,
		Email:       req.Email,
		Title:       req.Title,
		IsAvailable: true,
		Schedule:    req.Schedule,
	})
	if err != nil {
		h.Logger.Error("specialist registration failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to register specialist", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Get returns a specialist by id.
func (h *SpecialistHandler) Get(c *gin.Context) {
	sp, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, specialistRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "specialist not found", "")
			return
		}
		h.Logger.Error("specialist lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch specialist", "")
		return
	}
	c.JSON(http.StatusOK, sp)
}

// ListAvailable returns specialists currently opted in.
func (h *SpecialistHandler) ListAvailable(c *gin.Context) {
	specialists, err := h.Repo.ListAvailable(c.Request.Context())
	if err != nil {
		h.Logger.Error("specialist list failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list specialists", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialists": specialists})
}

// SetAvailability flips the global opt-out flag.
func (h *SpecialistHandler) SetAvailability(c *gin.Context) {
	var req struct {
		IsAvailable *bool `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.update(c, h.Repo.SetAvailability(c.Request.Context(), c.Param("id"), *req.IsAvailable)); err != nil {
		return
	}
	c.Status(http.StatusNoContent)
}

// SetSchedule replaces the specialist's weekly working windows.
func (h *SpecialistHandler) SetSchedule(c *gin.Context) {
	var req struct {
		Schedule []models.ScheduleRange `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	for _, r := range req.Schedule {
		if r.Start < 0 || r.End > 24*60 || r.Start >= r.End {
			utils.JSONError(c, http.StatusBadRequest, "invalid schedule range", "")
			return
		}
	}
	if err := h.update(c, h.Repo.SetSchedule(c.Request.Context(), c.Param("id"), req.Schedule)); err != nil {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SpecialistHandler) update(c *gin.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, specialistRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "specialist not found", "")
		return err
	}
	h.Logger.Error("specialist update failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "failed to update specialist", "")
	return err
}
