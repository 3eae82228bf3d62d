package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type UserGoalRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, goal *types.UserGoal) (*types.UserGoal, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserGoal, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userGoalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserGoalRepo(db *gorm.DB, baseLog *logger.Logger) UserGoalRepo {
	repoLog := baseLog.With("repo", "UserGoalRepo")
	return &userGoalRepo{db: db, log: repoLog}
}

func (ug *userGoalRepo) Upsert(ctx context.Context, tx *gorm.DB, goal *types.UserGoal) (*types.UserGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = ug.db
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"goal_race_name", "goal_race_date", "goal_distance", "goal_time", "updated_at"}),
		}).
		Create(goal).Error
	if err != nil {
		return nil, err
	}
	return ug.GetByUser(ctx, transaction, goal.UserID)
}

func (ug *userGoalRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserGoal, error) {
	transaction := tx
	if transaction == nil {
		transaction = ug.db
	}
	var result types.UserGoal
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ug *userGoalRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ug.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserGoal{}).Error
}
