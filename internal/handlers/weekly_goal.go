package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/requestdata"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type WeeklyGoalHandler struct {
	log               *logger.Logger
	weeklyGoalService services.WeeklyGoalService
}

func NewWeeklyGoalHandler(log *logger.Logger, weeklyGoalService services.WeeklyGoalService) *WeeklyGoalHandler {
	return &WeeklyGoalHandler{
		log:               log.With("handler", "WeeklyGoalHandler"),
		weeklyGoalService: weeklyGoalService,
	}
}

type weeklyGoalRequest struct {
	WeekStartDate         string   `json:"week_start_date" binding:"required"`
	TargetDistanceMeters  *float64 `json:"target_distance_meters"`
	TargetDurationSeconds *int     `json:"target_duration_seconds"`
	TargetWorkouts        *int     `json:"target_workouts"`
}

func (h *WeeklyGoalHandler) Upsert(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req weeklyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	goal, err := h.weeklyGoalService.Upsert(c.Request.Context(), rd.UserID, services.WeeklyGoalInput{
		WeekStartDate:         req.WeekStartDate,
		TargetDistanceMeters:  req.TargetDistanceMeters,
		TargetDurationSeconds: req.TargetDurationSeconds,
		TargetWorkouts:        req.TargetWorkouts,
	})
	if err != nil {
		h.respondGoalError(c, err)
		return
	}
	RespondOK(c, goal)
}

func (h *WeeklyGoalHandler) GetForWeek(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	goal, err := h.weeklyGoalService.GetForWeek(c.Request.Context(), rd.UserID, c.Query("week_start_date"))
	if err != nil {
		h.respondGoalError(c, err)
		return
	}
	RespondOK(c, goal)
}

func (h *WeeklyGoalHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	goals, err := h.weeklyGoalService.List(c.Request.Context(), rd.UserID, queryInt(c, "limit"))
	if err != nil {
		h.respondGoalError(c, err)
		return
	}
	RespondOK(c, gin.H{"weekly_goals": goals})
}

func (h *WeeklyGoalHandler) respondGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		RespondError(c, http.StatusBadRequest, "invalid_weekly_goal", err)
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	default:
		h.log.Error("Weekly goal operation failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "weekly_goal_operation_failed", err)
	}
}
