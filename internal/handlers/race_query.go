package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type RaceQueryHandler struct {
	log              *logger.Logger
	raceQueryService services.RaceQueryService
}

func NewRaceQueryHandler(log *logger.Logger, raceQueryService services.RaceQueryService) *RaceQueryHandler {
	return &RaceQueryHandler{
		log:              log.With("handler", "RaceQueryHandler"),
		raceQueryService: raceQueryService,
	}
}

type raceQueryRequest struct {
	Query string `json:"query" binding:"required"`
}

func (h *RaceQueryHandler) Query(c *gin.Context) {
	var req raceQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.raceQueryService.Query(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			RespondError(c, http.StatusBadRequest, "invalid_query", err)
			return
		}
		h.log.Error("Race query failed", "error", err)
		RespondError(c, http.StatusBadGateway, "race_query_failed", errors.New("race search is unavailable, please retry"))
		return
	}
	RespondOK(c, result)
}
