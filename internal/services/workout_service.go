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

type WorkoutInput struct {
	Date            string
	DistanceMeters  *float64
	DurationSeconds *int
	ActivityType    string
	Notes           string
	EffortLevel     *int
}

type WorkoutService interface {
	Create(ctx context.Context, userID uuid.UUID, in WorkoutInput) (*types.Workout, error)
	Update(ctx context.Context, userID, workoutID uuid.UUID, in WorkoutInput) (*types.Workout, error)
	Delete(ctx context.Context, userID, workoutID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter repos.WorkoutFilter) ([]*types.Workout, error)
}

type workoutService struct {
	db          *gorm.DB
	log         *logger.Logger
	workoutRepo repos.WorkoutRepo
}

func NewWorkoutService(db *gorm.DB, baseLog *logger.Logger, workoutRepo repos.WorkoutRepo) WorkoutService {
	return &workoutService{
		db:          db,
		log:         baseLog.With("service", "WorkoutService"),
		workoutRepo: workoutRepo,
	}
}

func validateWorkoutInput(in WorkoutInput) error {
	if _, err := time.Parse(plan.DateLayout, in.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", ErrValidation)
	}
	if in.ActivityType != "" && !types.IsActivityType(in.ActivityType) {
		return fmt.Errorf("unknown activity_type %q: %w", in.ActivityType, ErrValidation)
	}
	if in.DistanceMeters != nil && *in.DistanceMeters < 0 {
		return fmt.Errorf("distance_meters must be non-negative: %w", ErrValidation)
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must be non-negative: %w", ErrValidation)
	}
	if in.EffortLevel != nil && (*in.EffortLevel < 1 || *in.EffortLevel > 5) {
		return fmt.Errorf("effort_level must be 1-5: %w", ErrValidation)
	}
	return nil
}

func (s *workoutService) Create(ctx context.Context, userID uuid.UUID, in WorkoutInput) (*types.Workout, error) {
	if err := validateWorkoutInput(in); err != nil {
		return nil, err
	}
	activity := in.ActivityType
	if activity == "" {
		activity = "run"
	}
	return s.workoutRepo.Create(ctx, nil, &types.Workout{
		UserID:          userID,
		Date:            in.Date,
		DistanceMeters:  in.DistanceMeters,
		DurationSeconds: in.DurationSeconds,
		ActivityType:    activity,
		Notes:           in.Notes,
		EffortLevel:     in.EffortLevel,
	})
}

func (s *workoutService) Update(ctx context.Context, userID, workoutID uuid.UUID, in WorkoutInput) (*types.Workout, error) {
	if err := validateWorkoutInput(in); err != nil {
		return nil, err
	}

	record, err := s.ownedWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	record.Date = in.Date
	record.DistanceMeters = in.DistanceMeters
	record.DurationSeconds = in.DurationSeconds
	if in.ActivityType != "" {
		record.ActivityType = in.ActivityType
	}
	record.Notes = in.Notes
	record.EffortLevel = in.EffortLevel

	return s.workoutRepo.Update(ctx, nil, record)
}

func (s *workoutService) Delete(ctx context.Context, userID, workoutID uuid.UUID) error {
	if _, err := s.ownedWorkout(ctx, userID, workoutID); err != nil {
		return err
	}
	return s.workoutRepo.Delete(ctx, nil, workoutID)
}

func (s *workoutService) List(ctx context.Context, userID uuid.UUID, filter repos.WorkoutFilter) ([]*types.Workout, error) {
	if filter.ActivityType != "" && !types.IsActivityType(filter.ActivityType) {
		return nil, fmt.Errorf("unknown activity_type %q: %w", filter.ActivityType, ErrValidation)
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 100
	}
	return s.workoutRepo.ListByUser(ctx, nil, userID, filter)
}

func (s *workoutService) ownedWorkout(ctx context.Context, userID, workoutID uuid.UUID) (*types.Workout, error) {
	record, err := s.workoutRepo.GetByID(ctx, nil, workoutID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, fmt.Errorf("workout %s: %w", workoutID, ErrForbidden)
	}
	return record, nil
}
