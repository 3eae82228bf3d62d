package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

// WorkoutFilter narrows workout listings. Zero values mean no constraint.
type WorkoutFilter struct {
	StartDate    string
	EndDate      string
	ActivityType string
	Limit        int
	Offset       int
}

type WorkoutRepo interface {
	Create(ctx context.Context, tx *gorm.DB, workout *types.Workout) (*types.Workout, error)
	Update(ctx context.Context, tx *gorm.DB, workout *types.Workout) (*types.Workout, error)
	Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) (*types.Workout, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter WorkoutFilter) ([]*types.Workout, error)
}

type workoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
	repoLog := baseLog.With("repo", "WorkoutRepo")
	return &workoutRepo{db: db, log: repoLog}
}

func (wr *workoutRepo) Create(ctx context.Context, tx *gorm.DB, workout *types.Workout) (*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Create(workout).Error; err != nil {
		return nil, err
	}
	return workout, nil
}

func (wr *workoutRepo) Update(ctx context.Context, tx *gorm.DB, workout *types.Workout) (*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Save(workout).Error; err != nil {
		return nil, err
	}
	return workout, nil
}

func (wr *workoutRepo) Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", workoutID).
		Delete(&types.Workout{}).Error
}

func (wr *workoutRepo) GetByID(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) (*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.Workout
	if err := transaction.WithContext(ctx).
		Where("id = ?", workoutID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *workoutRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter WorkoutFilter) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var results []*types.Workout
	if err := query.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
