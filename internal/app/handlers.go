package app

import (
	"github.com/ourpr/ourpr-backend/internal/handlers"
	"github.com/ourpr/ourpr-backend/internal/logger"
)

type Handlers struct {
	Healthcheck    *handlers.HealthcheckHandler
	Race           *handlers.RaceHandler
	RaceQuery      *handlers.RaceQueryHandler
	PR             *handlers.PRHandler
	Workout        *handlers.WorkoutHandler
	WeeklyGoal     *handlers.WeeklyGoalHandler
	UserGoal       *handlers.UserGoalHandler
	RacePlan       *handlers.RacePlanHandler
	Recommendation *handlers.RecommendationHandler
	Achievement    *handlers.AchievementHandler
	Plan           *handlers.PlanHandler
	Calendar       *handlers.CalendarHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck:    handlers.NewHealthcheckHandler(),
		Race:           handlers.NewRaceHandler(log, s.Race),
		RaceQuery:      handlers.NewRaceQueryHandler(log, s.RaceQuery),
		PR:             handlers.NewPRHandler(log, s.PR),
		Workout:        handlers.NewWorkoutHandler(log, s.Workout),
		WeeklyGoal:     handlers.NewWeeklyGoalHandler(log, s.WeeklyGoal),
		UserGoal:       handlers.NewUserGoalHandler(log, s.UserGoal),
		RacePlan:       handlers.NewRacePlanHandler(log, s.RacePlan),
		Recommendation: handlers.NewRecommendationHandler(log, s.Recommendation),
		Achievement:    handlers.NewAchievementHandler(log, s.Achievement),
		Plan:           handlers.NewPlanHandler(log, s.Plan),
		Calendar:       handlers.NewCalendarHandler(log, s.Calendar),
	}
}
