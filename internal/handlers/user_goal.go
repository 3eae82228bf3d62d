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

type UserGoalHandler struct {
	log             *logger.Logger
	userGoalService services.UserGoalService
}

func NewUserGoalHandler(log *logger.Logger, userGoalService services.UserGoalService) *UserGoalHandler {
	return &UserGoalHandler{
		log:             log.With("handler", "UserGoalHandler"),
		userGoalService: userGoalService,
	}
}

type userGoalRequest struct {
	GoalRaceName string `json:"goal_race_name"`
	GoalRaceDate string `json:"goal_race_date"`
	GoalDistance string `json:"goal_distance"`
	GoalTime     string `json:"goal_time"`
}

func (h *UserGoalHandler) Upsert(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req userGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	goal, err := h.userGoalService.Upsert(c.Request.Context(), rd.UserID, services.UserGoalInput{
		GoalRaceName: req.GoalRaceName,
		GoalRaceDate: req.GoalRaceDate,
		GoalDistance: req.GoalDistance,
		GoalTime:     req.GoalTime,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			RespondError(c, http.StatusBadRequest, "invalid_goal", err)
			return
		}
		h.log.Error("Upsert user goal failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "goal_operation_failed", err)
		return
	}
	RespondOK(c, goal)
}

func (h *UserGoalHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	goal, err := h.userGoalService.Get(c.Request.Context(), rd.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		h.log.Error("Get user goal failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "goal_operation_failed", err)
		return
	}
	RespondOK(c, goal)
}

func (h *UserGoalHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if err := h.userGoalService.Delete(c.Request.Context(), rd.UserID); err != nil {
		h.log.Error("Delete user goal failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "goal_operation_failed", err)
		return
	}
	RespondNoContent(c)
}
