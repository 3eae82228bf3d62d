package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type UserGoalInput struct {
	GoalRaceName string
	GoalRaceDate string
	GoalDistance string
	GoalTime     string
}

type UserGoalService interface {
	Upsert(ctx context.Context, userID uuid.UUID, in UserGoalInput) (*types.UserGoal, error)
	Get(ctx context.Context, userID uuid.UUID) (*types.UserGoal, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userGoalService struct {
	db       *gorm.DB
	log      *logger.Logger
	goalRepo repos.UserGoalRepo
}

func NewUserGoalService(db *gorm.DB, baseLog *logger.Logger, goalRepo repos.UserGoalRepo) UserGoalService {
	return &userGoalService{
		db:       db,
		log:      baseLog.With("service", "UserGoalService"),
		goalRepo: goalRepo,
	}
}

func (s *userGoalService) Upsert(ctx context.Context, userID uuid.UUID, in UserGoalInput) (*types.UserGoal, error) {
	if in.GoalRaceDate != "" {
		if _, err := time.Parse(plan.DateLayout, in.GoalRaceDate); err != nil {
			return nil, fmt.Errorf("goal_race_date must be YYYY-MM-DD: %w", ErrValidation)
		}
	}
	if in.GoalDistance != "" && !types.IsRaceDistance(in.GoalDistance) {
		return nil, fmt.Errorf("unknown distance %q: %w", in.GoalDistance, ErrValidation)
	}

	return s.goalRepo.Upsert(ctx, nil, &types.UserGoal{
		UserID:       userID,
		GoalRaceName: in.GoalRaceName,
		GoalRaceDate: in.GoalRaceDate,
		GoalDistance: in.GoalDistance,
		GoalTime:     in.GoalTime,
	})
}

func (s *userGoalService) Get(ctx context.Context, userID uuid.UUID) (*types.UserGoal, error) {
	goal, err := s.goalRepo.GetByUser(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no goal set: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *userGoalService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.goalRepo.DeleteByUser(ctx, nil, userID)
}
