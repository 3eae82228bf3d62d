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

type WeeklyGoalInput struct {
	WeekStartDate         string
	TargetDistanceMeters  *float64
	TargetDurationSeconds *int
	TargetWorkouts        *int
}

type WeeklyGoalService interface {
	Upsert(ctx context.Context, userID uuid.UUID, in WeeklyGoalInput) (*types.WeeklyGoal, error)
	GetForWeek(ctx context.Context, userID uuid.UUID, weekStartDate string) (*types.WeeklyGoal, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.WeeklyGoal, error)
}

type weeklyGoalService struct {
	db       *gorm.DB
	log      *logger.Logger
	goalRepo repos.WeeklyGoalRepo
}

func NewWeeklyGoalService(db *gorm.DB, baseLog *logger.Logger, goalRepo repos.WeeklyGoalRepo) WeeklyGoalService {
	return &weeklyGoalService{
		db:       db,
		log:      baseLog.With("service", "WeeklyGoalService"),
		goalRepo: goalRepo,
	}
}

func (s *weeklyGoalService) Upsert(ctx context.Context, userID uuid.UUID, in WeeklyGoalInput) (*types.WeeklyGoal, error) {
	weekStart, err := time.Parse(plan.DateLayout, in.WeekStartDate)
	if err != nil {
		return nil, fmt.Errorf("week_start_date must be YYYY-MM-DD: %w", ErrValidation)
	}
	if weekStart.Weekday() != time.Monday {
		return nil, fmt.Errorf("week_start_date must be a Monday: %w", ErrValidation)
	}
	if in.TargetDistanceMeters == nil && in.TargetDurationSeconds == nil && in.TargetWorkouts == nil {
		return nil, fmt.Errorf("at least one target is required: %w", ErrValidation)
	}
	if in.TargetDistanceMeters != nil && *in.TargetDistanceMeters <= 0 {
		return nil, fmt.Errorf("target_distance_meters must be positive: %w", ErrValidation)
	}
	if in.TargetDurationSeconds != nil && *in.TargetDurationSeconds <= 0 {
		return nil, fmt.Errorf("target_duration_seconds must be positive: %w", ErrValidation)
	}
	if in.TargetWorkouts != nil && *in.TargetWorkouts <= 0 {
		return nil, fmt.Errorf("target_workouts must be positive: %w", ErrValidation)
	}

	return s.goalRepo.Upsert(ctx, nil, &types.WeeklyGoal{
		UserID:                userID,
		WeekStartDate:         in.WeekStartDate,
		TargetDistanceMeters:  in.TargetDistanceMeters,
		TargetDurationSeconds: in.TargetDurationSeconds,
		TargetWorkouts:        in.TargetWorkouts,
	})
}

// GetForWeek looks up the goal for the given Monday, defaulting to the
// current week when no date is supplied.
func (s *weeklyGoalService) GetForWeek(ctx context.Context, userID uuid.UUID, weekStartDate string) (*types.WeeklyGoal, error) {
	if weekStartDate == "" {
		weekStartDate = currentWeekMonday(time.Now().UTC())
	}
	if _, err := time.Parse(plan.DateLayout, weekStartDate); err != nil {
		return nil, fmt.Errorf("week_start_date must be YYYY-MM-DD: %w", ErrValidation)
	}
	goal, err := s.goalRepo.GetByUserAndWeek(ctx, nil, userID, weekStartDate)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no goal for week %s: %w", weekStartDate, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *weeklyGoalService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.WeeklyGoal, error) {
	if limit <= 0 || limit > 100 {
		limit = 26
	}
	return s.goalRepo.ListByUser(ctx, nil, userID, limit)
}

func currentWeekMonday(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(plan.DateLayout)
}
