package app

import (
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/repos"
)

type Repos struct {
	Race            repos.RaceRepo
	UserPR          repos.UserPRRepo
	Workout         repos.WorkoutRepo
	WeeklyGoal      repos.WeeklyGoalRepo
	UserGoal        repos.UserGoalRepo
	UserRacePlan    repos.UserRacePlanRepo
	GeneratedPlan   repos.GeneratedPlanRepo
	Achievement     repos.AchievementRepo
	UserAchievement repos.UserAchievementRepo
	CalendarAuth    repos.CalendarAuthRepo
	OAuthState      repos.OAuthStateRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Race:            repos.NewRaceRepo(db, log),
		UserPR:          repos.NewUserPRRepo(db, log),
		Workout:         repos.NewWorkoutRepo(db, log),
		WeeklyGoal:      repos.NewWeeklyGoalRepo(db, log),
		UserGoal:        repos.NewUserGoalRepo(db, log),
		UserRacePlan:    repos.NewUserRacePlanRepo(db, log),
		GeneratedPlan:   repos.NewGeneratedPlanRepo(db, log),
		Achievement:     repos.NewAchievementRepo(db, log),
		UserAchievement: repos.NewUserAchievementRepo(db, log),
		CalendarAuth:    repos.NewCalendarAuthRepo(db, log),
		OAuthState:      repos.NewOAuthStateRepo(db, log),
	}
}
