package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type WeeklyGoalRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, goal *types.WeeklyGoal) (*types.WeeklyGoal, error)
	GetByUserAndWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStartDate string) (*types.WeeklyGoal, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WeeklyGoal, error)
}

type weeklyGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeeklyGoalRepo(db *gorm.DB, baseLog *logger.Logger) WeeklyGoalRepo {
	repoLog := baseLog.With("repo", "WeeklyGoalRepo")
	return &weeklyGoalRepo{db: db, log: repoLog}
}

func (wg *weeklyGoalRepo) Upsert(ctx context.Context, tx *gorm.DB, goal *types.WeeklyGoal) (*types.WeeklyGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = wg.db
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_distance_meters", "target_duration_seconds", "target_workouts", "updated_at"}),
		}).
		Create(goal).Error
	if err != nil {
		return nil, err
	}
	return wg.GetByUserAndWeek(ctx, transaction, goal.UserID, goal.WeekStartDate)
}

func (wg *weeklyGoalRepo) GetByUserAndWeek(ctx context.Context, tx *gorm.DB, userID uuid.UUID, weekStartDate string) (*types.WeeklyGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = wg.db
	}
	var result types.WeeklyGoal
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStartDate).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (wg *weeklyGoalRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.WeeklyGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = wg.db
	}
	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var results []*types.WeeklyGoal
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
