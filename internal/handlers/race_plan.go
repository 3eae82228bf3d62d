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

type RacePlanHandler struct {
	log             *logger.Logger
	racePlanService services.RacePlanService
}

func NewRacePlanHandler(log *logger.Logger, racePlanService services.RacePlanService) *RacePlanHandler {
	return &RacePlanHandler{
		log:             log.With("handler", "RacePlanHandler"),
		racePlanService: racePlanService,
	}
}

type addRacePlanRequest struct {
	RaceID uuid.UUID `json:"race_id" binding:"required"`
}

func (h *RacePlanHandler) Add(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req addRacePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	created, err := h.racePlanService.Add(c.Request.Context(), rd.UserID, req.RaceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			RespondError(c, http.StatusNotFound, "not_found", err)
		case errors.Is(err, services.ErrConflict):
			RespondError(c, http.StatusConflict, "already_planned", err)
		default:
			h.log.Error("Add race plan failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "race_plan_operation_failed", err)
		}
		return
	}
	RespondCreated(c, created)
}

func (h *RacePlanHandler) Remove(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	if err := h.racePlanService.Remove(c.Request.Context(), rd.UserID, raceID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		h.log.Error("Remove race plan failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "race_plan_operation_failed", err)
		return
	}
	RespondNoContent(c)
}

func (h *RacePlanHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	plans, err := h.racePlanService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("List race plans failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "race_plan_operation_failed", err)
		return
	}
	RespondOK(c, gin.H{"race_plans": plans})
}
