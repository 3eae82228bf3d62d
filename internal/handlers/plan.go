package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/requestdata"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type PlanHandler struct {
	log         *logger.Logger
	planService services.PlanService
}

func NewPlanHandler(log *logger.Logger, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		log:         log.With("handler", "PlanHandler"),
		planService: planService,
	}
}

type generatePlanRequest struct {
	GoalTime             string `json:"goal_time"`
	CurrentWeeklyMileage int    `json:"current_weekly_mileage"`
	PeakWeeklyMileage    int    `json:"peak_weekly_mileage"`
	PreferredRunningDays int    `json:"preferred_running_days"`
	PreferredLongRunDay  string `json:"preferred_long_run_day"`
}

func (h *PlanHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	var req generatePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}

	generated, err := h.planService.Generate(c.Request.Context(), rd.UserID, raceID, plan.Preferences{
		GoalTime:             req.GoalTime,
		CurrentWeeklyMileage: req.CurrentWeeklyMileage,
		PeakWeeklyMileage:    req.PeakWeeklyMileage,
		PreferredRunningDays: req.PreferredRunningDays,
		PreferredLongRunDay:  req.PreferredLongRunDay,
	})
	if err != nil {
		h.respondPlanError(c, rd.UserID, err)
		return
	}
	RespondOK(c, generated)
}

func (h *PlanHandler) Save(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	var doc json.RawMessage
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	saved, err := h.planService.Save(c.Request.Context(), rd.UserID, raceID, doc)
	if err != nil {
		h.respondPlanError(c, rd.UserID, err)
		return
	}
	RespondCreated(c, gin.H{
		"id":      saved.ID,
		"user_id": saved.UserID,
		"race_id": saved.RaceID,
	})
}

func (h *PlanHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	p, err := h.planService.Get(c.Request.Context(), rd.UserID, raceID)
	if err != nil {
		h.respondPlanError(c, rd.UserID, err)
		return
	}
	RespondOK(c, p)
}

type updateDayStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *PlanHandler) UpdateDayStatus(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	date := c.Param("date")
	if _, err := time.Parse(plan.DateLayout, date); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", errors.New("date must be YYYY-MM-DD"))
		return
	}

	var req updateDayStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if !plan.IsDayStatus(req.Status) {
		RespondError(c, http.StatusBadRequest, "invalid_status", errors.New("status must be pending, completed or skipped"))
		return
	}

	day, err := h.planService.UpdateDayStatus(c.Request.Context(), rd.UserID, raceID, date, plan.DayStatus(req.Status))
	if err != nil {
		h.respondPlanError(c, rd.UserID, err)
		return
	}
	RespondOK(c, day)
}

func (h *PlanHandler) Replace(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	var doc json.RawMessage
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	replaced, err := h.planService.ReplaceStructure(c.Request.Context(), rd.UserID, raceID, doc)
	if err != nil {
		h.respondPlanError(c, rd.UserID, err)
		return
	}
	RespondOK(c, replaced)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), rd.UserID, raceID); err != nil {
		h.respondPlanError(c, rd.UserID, err)
		return
	}
	RespondNoContent(c)
}

// respondPlanError maps the plan error taxonomy onto HTTP statuses. Model
// failures are 502s; structural defects after repair are 500s.
func (h *PlanHandler) respondPlanError(c *gin.Context, userID uuid.UUID, err error) {
	var invalid *plan.InvalidInputError
	var malformed *plan.MalformedResponseError
	var violation *plan.SchemaViolationError
	var incomplete *plan.IncompleteGenerationError
	var assembly *plan.AssemblyError

	switch {
	case errors.As(err, &invalid):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, plan.ErrOutdatedFormat):
		RespondError(c, http.StatusConflict, "outdated_plan_format", err)
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.As(err, &malformed):
		h.log.Error("Model returned unusable output", "user_id", userID, "error", err)
		RespondError(c, http.StatusBadGateway, "malformed_model_response", errors.New("plan generation produced unusable output, please retry"))
	case errors.As(err, &violation):
		h.log.Error("Plan schema violation", "user_id", userID, "error", err)
		RespondError(c, http.StatusBadGateway, "plan_schema_violation", errors.New("plan generation produced an invalid structure, please retry"))
	case errors.As(err, &incomplete):
		h.log.Error("Incomplete plan generation", "user_id", userID, "error", err)
		RespondError(c, http.StatusBadGateway, "incomplete_generation", errors.New("plan generation stopped early, please retry"))
	case errors.As(err, &assembly):
		h.log.Error("Plan assembly failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "plan_assembly_failed", errors.New("internal error assembling plan"))
	default:
		h.log.Error("Plan operation failed", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, "plan_operation_failed", errors.New("internal error"))
	}
}
