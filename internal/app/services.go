package app

import (
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/services"
)

type Services struct {
	Gemini         services.GeminiClient
	Race           services.RaceService
	RaceQuery      services.RaceQueryService
	PR             services.PRService
	Workout        services.WorkoutService
	WeeklyGoal     services.WeeklyGoalService
	UserGoal       services.UserGoalService
	RacePlan       services.RacePlanService
	Recommendation services.RecommendationService
	Achievement    services.AchievementService
	Plan           services.PlanService
	Calendar       services.CalendarService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	gemini, err := services.NewGeminiClient(log)
	if err != nil {
		return Services{}, err
	}

	achievement := services.NewAchievementService(db, log, r.Achievement, r.UserAchievement)
	planSvc := services.NewPlanService(db, log, r.Race, r.UserPR, r.GeneratedPlan, gemini)

	calendar, err := services.NewCalendarService(db, log, r.CalendarAuth, r.OAuthState, planSvc)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Gemini:         gemini,
		Race:           services.NewRaceService(db, log, r.Race),
		RaceQuery:      services.NewRaceQueryService(db, log, r.Race, gemini),
		PR:             services.NewPRService(db, log, r.UserPR, achievement),
		Workout:        services.NewWorkoutService(db, log, r.Workout),
		WeeklyGoal:     services.NewWeeklyGoalService(db, log, r.WeeklyGoal),
		UserGoal:       services.NewUserGoalService(db, log, r.UserGoal),
		RacePlan:       services.NewRacePlanService(db, log, r.UserRacePlan, r.Race),
		Recommendation: services.NewRecommendationService(db, log, r.Race, r.UserGoal),
		Achievement:    achievement,
		Plan:           planSvc,
		Calendar:       calendar,
	}, nil
}
