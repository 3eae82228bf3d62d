package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type RaceHandler struct {
	log         *logger.Logger
	raceService services.RaceService
}

func NewRaceHandler(log *logger.Logger, raceService services.RaceService) *RaceHandler {
	return &RaceHandler{
		log:         log.With("handler", "RaceHandler"),
		raceService: raceService,
	}
}

func (h *RaceHandler) List(c *gin.Context) {
	filter := repos.RaceFilter{
		Distance:   c.Query("distance"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		AfterDate:  c.Query("after_date"),
		BeforeDate: c.Query("before_date"),
		Search:     c.Query("search"),
		FlatOnly:   c.Query("flat_only") == "true",
		Limit:      queryInt(c, "limit"),
		Offset:     queryInt(c, "offset"),
	}

	races, err := h.raceService.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			RespondError(c, http.StatusBadRequest, "invalid_filter", err)
			return
		}
		h.log.Error("List races failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_races_failed", err)
		return
	}
	RespondOK(c, gin.H{"races": races})
}

func (h *RaceHandler) Get(c *gin.Context) {
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}
	race, err := h.raceService.Get(c.Request.Context(), raceID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		h.log.Error("Get race failed", "race_id", raceID, "error", err)
		RespondError(c, http.StatusInternalServerError, "get_race_failed", err)
		return
	}
	RespondOK(c, race)
}
