package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type UserRacePlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, plan *types.UserRacePlan) (*types.UserRacePlan, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserRacePlan, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (bool, error)
}

type userRacePlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRacePlanRepo(db *gorm.DB, baseLog *logger.Logger) UserRacePlanRepo {
	repoLog := baseLog.With("repo", "UserRacePlanRepo")
	return &userRacePlanRepo{db: db, log: repoLog}
}

func (rp *userRacePlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.UserRacePlan) (*types.UserRacePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = rp.db
	}
	if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (rp *userRacePlanRepo) Delete(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rp.db
	}
	result := transaction.WithContext(ctx).
		Where("user_id = ? AND race_id = ?", userID, raceID).
		Delete(&types.UserRacePlan{})
	return result.RowsAffected, result.Error
}

func (rp *userRacePlanRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserRacePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = rp.db
	}
	var results []*types.UserRacePlan
	if err := transaction.WithContext(ctx).
		Preload("Race").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rp *userRacePlanRepo) Exists(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rp.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserRacePlan{}).
		Where("user_id = ? AND race_id = ?", userID, raceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
