package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/requestdata"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type AchievementHandler struct {
	log                *logger.Logger
	achievementService services.AchievementService
}

func NewAchievementHandler(log *logger.Logger, achievementService services.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		log:                log.With("handler", "AchievementHandler"),
		achievementService: achievementService,
	}
}

func (h *AchievementHandler) ListEarned(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	earned, err := h.achievementService.ListEarned(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("List achievements failed", "user_id", rd.UserID, "error", err)
		RespondError(c, http.StatusInternalServerError, "list_achievements_failed", err)
		return
	}
	RespondOK(c, gin.H{"achievements": earned})
}
