package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ourpr/ourpr-backend/internal/handlers"
	"github.com/ourpr/ourpr-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware        *middleware.AuthMiddleware
	HealthcheckHandler    *handlers.HealthcheckHandler
	RaceHandler           *handlers.RaceHandler
	RaceQueryHandler      *handlers.RaceQueryHandler
	PRHandler             *handlers.PRHandler
	WorkoutHandler        *handlers.WorkoutHandler
	WeeklyGoalHandler     *handlers.WeeklyGoalHandler
	UserGoalHandler       *handlers.UserGoalHandler
	RacePlanHandler       *handlers.RacePlanHandler
	RecommendationHandler *handlers.RecommendationHandler
	AchievementHandler    *handlers.AchievementHandler
	PlanHandler           *handlers.PlanHandler
	CalendarHandler       *handlers.CalendarHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.GET("/races", cfg.RaceHandler.List)
	router.GET("/races/:race_id", cfg.RaceHandler.Get)
	router.POST("/race-query/ai", cfg.RaceQueryHandler.Query)
	router.GET("/auth/google/callback", cfg.CalendarHandler.Callback)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Google Calendar
	protected.GET("/auth/google/login", cfg.CalendarHandler.Login)
	protected.DELETE("/auth/google", cfg.CalendarHandler.Disconnect)
	protected.POST("/users/me/google-calendar/sync-plan/:race_id", cfg.CalendarHandler.SyncPlan)
	protected.DELETE("/users/me/google-calendar/sync-plan/:race_id", cfg.CalendarHandler.UnsyncPlan)

	// PRs
	protected.GET("/users/me/prs", cfg.PRHandler.List)
	protected.POST("/users/me/prs", cfg.PRHandler.Create)
	protected.PUT("/users/me/prs/:pr_id", cfg.PRHandler.Update)
	protected.DELETE("/users/me/prs/:pr_id", cfg.PRHandler.Delete)

	// Workouts
	protected.GET("/users/me/workouts", cfg.WorkoutHandler.List)
	protected.POST("/users/me/workouts", cfg.WorkoutHandler.Create)
	protected.PUT("/users/me/workouts/:workout_id", cfg.WorkoutHandler.Update)
	protected.DELETE("/users/me/workouts/:workout_id", cfg.WorkoutHandler.Delete)

	// Weekly goals
	protected.GET("/users/me/weekly-goal", cfg.WeeklyGoalHandler.GetForWeek)
	protected.PUT("/users/me/weekly-goal", cfg.WeeklyGoalHandler.Upsert)
	protected.GET("/users/me/weekly-goals", cfg.WeeklyGoalHandler.List)

	// Primary goal
	protected.GET("/users/me/goal", cfg.UserGoalHandler.Get)
	protected.PUT("/users/me/goal", cfg.UserGoalHandler.Upsert)
	protected.DELETE("/users/me/goal", cfg.UserGoalHandler.Delete)

	// Planned races
	protected.GET("/users/me/plan", cfg.RacePlanHandler.List)
	protected.POST("/users/me/plan", cfg.RacePlanHandler.Add)
	protected.DELETE("/users/me/plan/:race_id", cfg.RacePlanHandler.Remove)

	// Recommendations and achievements
	protected.GET("/users/me/recommended-races", cfg.RecommendationHandler.Recommend)
	protected.GET("/users/me/achievements", cfg.AchievementHandler.ListEarned)

	// Training plans
	protected.POST("/plan/generate/:race_id", cfg.PlanHandler.Generate)
	protected.POST("/plan/:race_id", cfg.PlanHandler.Save)
	protected.GET("/plan/:race_id", cfg.PlanHandler.Get)
	protected.PATCH("/plan/:race_id/days/:date", cfg.PlanHandler.UpdateDayStatus)
	protected.PATCH("/plan/:race_id", cfg.PlanHandler.Replace)
	protected.DELETE("/plan/:race_id", cfg.PlanHandler.Delete)

	return router
}
