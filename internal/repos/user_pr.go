package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type UserPRRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pr *types.UserPR) (*types.UserPR, error)
	Update(ctx context.Context, tx *gorm.DB, pr *types.UserPR) (*types.UserPR, error)
	Delete(ctx context.Context, tx *gorm.DB, prID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, prID uuid.UUID) (*types.UserPR, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, distance string) ([]*types.UserPR, error)
	BestByUserAndDistance(ctx context.Context, tx *gorm.DB, userID uuid.UUID, distance string) (*types.UserPR, error)
}

type userPRRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserPRRepo(db *gorm.DB, baseLog *logger.Logger) UserPRRepo {
	repoLog := baseLog.With("repo", "UserPRRepo")
	return &userPRRepo{db: db, log: repoLog}
}

func (pr *userPRRepo) Create(ctx context.Context, tx *gorm.DB, record *types.UserPR) (*types.UserPR, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (pr *userPRRepo) Update(ctx context.Context, tx *gorm.DB, record *types.UserPR) (*types.UserPR, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (pr *userPRRepo) Delete(ctx context.Context, tx *gorm.DB, prID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", prID).
		Delete(&types.UserPR{}).Error
}

func (pr *userPRRepo) GetByID(ctx context.Context, tx *gorm.DB, prID uuid.UUID) (*types.UserPR, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.UserPR
	if err := transaction.WithContext(ctx).
		Where("id = ?", prID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *userPRRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, distance string) ([]*types.UserPR, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if distance != "" {
		query = query.Where("distance = ?", distance)
	}
	var results []*types.UserPR
	if err := query.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// BestByUserAndDistance returns the fastest PR at a distance, or nil when the
// user has none there.
func (pr *userPRRepo) BestByUserAndDistance(ctx context.Context, tx *gorm.DB, userID uuid.UUID, distance string) (*types.UserPR, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.UserPR
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND distance = ?", userID, distance).
		Order("time_in_seconds ASC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
