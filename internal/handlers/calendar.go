package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/requestdata"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type CalendarHandler struct {
	log             *logger.Logger
	calendarService services.CalendarService
}

func NewCalendarHandler(log *logger.Logger, calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		log:             log.With("handler", "CalendarHandler"),
		calendarService: calendarService,
	}
}

func (h *CalendarHandler) Login(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	url, err := h.calendarService.AuthURL(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Auth URL generation failed", "user_id", rd.UserID, "error", err)
		RespondError(c, http.StatusInternalServerError, "oauth_start_failed", err)
		return
	}
	RespondOK(c, gin.H{"authorization_url": url})
}

// Callback is hit by Google's redirect, not by our frontend, so it answers
// with a redirect rather than JSON.
func (h *CalendarHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		RespondError(c, http.StatusBadRequest, "invalid_callback", errors.New("missing state or code"))
		return
	}

	redirect, err := h.calendarService.HandleCallback(c.Request.Context(), state, code)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			RespondError(c, http.StatusForbidden, "invalid_oauth_state", err)
			return
		}
		h.log.Error("OAuth callback failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "oauth_callback_failed", err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (h *CalendarHandler) SyncPlan(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	result, err := h.calendarService.SyncPlan(c.Request.Context(), rd.UserID, raceID)
	if err != nil {
		h.respondCalendarError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CalendarHandler) UnsyncPlan(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	raceID, ok := parseUUIDParam(c, "race_id")
	if !ok {
		return
	}

	if _, err := h.calendarService.UnsyncPlan(c.Request.Context(), rd.UserID, raceID); err != nil {
		h.respondCalendarError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CalendarHandler) Disconnect(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if err := h.calendarService.Disconnect(c.Request.Context(), rd.UserID); err != nil {
		h.log.Error("Calendar disconnect failed", "user_id", rd.UserID, "error", err)
		RespondError(c, http.StatusInternalServerError, "disconnect_failed", err)
		return
	}
	RespondNoContent(c)
}

func (h *CalendarHandler) respondCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCalendarNotConnected):
		RespondError(c, http.StatusUnauthorized, "calendar_not_connected", err)
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, plan.ErrOutdatedFormat):
		RespondError(c, http.StatusConflict, "outdated_plan_format", err)
	default:
		h.log.Error("Calendar operation failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "calendar_operation_failed", err)
	}
}
