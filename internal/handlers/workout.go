package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/requestdata"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type WorkoutHandler struct {
	log            *logger.Logger
	workoutService services.WorkoutService
}

func NewWorkoutHandler(log *logger.Logger, workoutService services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		log:            log.With("handler", "WorkoutHandler"),
		workoutService: workoutService,
	}
}

type workoutRequest struct {
	Date            string   `json:"date" binding:"required"`
	DistanceMeters  *float64 `json:"distance_meters"`
	DurationSeconds *int     `json:"duration_seconds"`
	ActivityType    string   `json:"activity_type"`
	Notes           string   `json:"notes"`
	EffortLevel     *int     `json:"effort_level"`
}

func (r workoutRequest) toInput() services.WorkoutInput {
	return services.WorkoutInput{
		Date:            r.Date,
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		ActivityType:    r.ActivityType,
		Notes:           r.Notes,
		EffortLevel:     r.EffortLevel,
	}
}

func (h *WorkoutHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	created, err := h.workoutService.Create(c.Request.Context(), rd.UserID, req.toInput())
	if err != nil {
		h.respondWorkoutError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (h *WorkoutHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	workoutID, ok := parseUUIDParam(c, "workout_id")
	if !ok {
		return
	}

	var req workoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	updated, err := h.workoutService.Update(c.Request.Context(), rd.UserID, workoutID, req.toInput())
	if err != nil {
		h.respondWorkoutError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	workoutID, ok := parseUUIDParam(c, "workout_id")
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), rd.UserID, workoutID); err != nil {
		h.respondWorkoutError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *WorkoutHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	filter := repos.WorkoutFilter{
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		ActivityType: c.Query("activity_type"),
		Limit:        queryInt(c, "limit"),
		Offset:       queryInt(c, "offset"),
	}

	workouts, err := h.workoutService.List(c.Request.Context(), rd.UserID, filter)
	if err != nil {
		h.respondWorkoutError(c, err)
		return
	}
	RespondOK(c, gin.H{"workouts": workouts})
}

func (h *WorkoutHandler) respondWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		RespondError(c, http.StatusBadRequest, "invalid_workout", err)
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		h.log.Error("Workout operation failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "workout_operation_failed", err)
	}
}
