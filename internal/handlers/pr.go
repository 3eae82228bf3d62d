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

type PRHandler struct {
	log       *logger.Logger
	prService services.PRService
}

func NewPRHandler(log *logger.Logger, prService services.PRService) *PRHandler {
	return &PRHandler{
		log:       log.With("handler", "PRHandler"),
		prService: prService,
	}
}

type prRequest struct {
	Distance      string     `json:"distance" binding:"required"`
	Date          string     `json:"date" binding:"required"`
	TimeInSeconds int        `json:"time_in_seconds" binding:"required"`
	RaceID        *uuid.UUID `json:"race_id"`
	IsOfficial    *bool      `json:"is_official"`
	RaceName      string     `json:"race_name"`
}

func (r prRequest) toInput() services.PRInput {
	return services.PRInput{
		Distance:      r.Distance,
		Date:          r.Date,
		TimeInSeconds: r.TimeInSeconds,
		RaceID:        r.RaceID,
		IsOfficial:    r.IsOfficial,
		RaceName:      r.RaceName,
	}
}

func (h *PRHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req prRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	created, err := h.prService.Create(c.Request.Context(), rd.UserID, req.toInput())
	if err != nil {
		h.respondPRError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (h *PRHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	prID, ok := parseUUIDParam(c, "pr_id")
	if !ok {
		return
	}

	var req prRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	updated, err := h.prService.Update(c.Request.Context(), rd.UserID, prID, req.toInput())
	if err != nil {
		h.respondPRError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (h *PRHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	prID, ok := parseUUIDParam(c, "pr_id")
	if !ok {
		return
	}

	if err := h.prService.Delete(c.Request.Context(), rd.UserID, prID); err != nil {
		h.respondPRError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *PRHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	prs, err := h.prService.List(c.Request.Context(), rd.UserID, c.Query("distance"))
	if err != nil {
		h.respondPRError(c, err)
		return
	}
	RespondOK(c, gin.H{"prs": prs})
}

func (h *PRHandler) respondPRError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		RespondError(c, http.StatusBadRequest, "invalid_pr", err)
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	default:
		h.log.Error("PR operation failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "pr_operation_failed", err)
	}
}
