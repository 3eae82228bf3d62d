package app

import (
	"github.com/gin-gonic/gin"

	"github.com/ourpr/ourpr-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:        m.Auth,
		HealthcheckHandler:    h.Healthcheck,
		RaceHandler:           h.Race,
		RaceQueryHandler:      h.RaceQuery,
		PRHandler:             h.PR,
		WorkoutHandler:        h.Workout,
		WeeklyGoalHandler:     h.WeeklyGoal,
		UserGoalHandler:       h.UserGoal,
		RacePlanHandler:       h.RacePlan,
		RecommendationHandler: h.Recommendation,
		AchievementHandler:    h.Achievement,
		PlanHandler:           h.Plan,
		CalendarHandler:       h.Calendar,
	})
}
