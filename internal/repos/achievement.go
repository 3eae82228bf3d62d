package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type AchievementRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error)
	SeedCatalog(ctx context.Context, tx *gorm.DB, catalog []*types.Achievement) error
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	repoLog := baseLog.With("repo", "AchievementRepo")
	return &achievementRepo{db: db, log: repoLog}
}

func (ar *achievementRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Achievement
	if err := transaction.WithContext(ctx).
		Order("code ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SeedCatalog inserts the rule catalog rows, skipping codes already present.
func (ar *achievementRepo) SeedCatalog(ctx context.Context, tx *gorm.DB, catalog []*types.Achievement) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(catalog) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(&catalog).Error
}

type UserAchievementRepo interface {
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAchievement, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, awards []*types.UserAchievement) error
}

type userAchievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAchievementRepo(db *gorm.DB, baseLog *logger.Logger) UserAchievementRepo {
	repoLog := baseLog.With("repo", "UserAchievementRepo")
	return &userAchievementRepo{db: db, log: repoLog}
}

func (ua *userAchievementRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ua.db
	}
	var results []*types.UserAchievement
	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CreateBatch inserts new awards. Conflicts on the (user, achievement) unique
// index are dropped silently, so a concurrent double-score stays idempotent.
func (ua *userAchievementRepo) CreateBatch(ctx context.Context, tx *gorm.DB, awards []*types.UserAchievement) error {
	transaction := tx
	if transaction == nil {
		transaction = ua.db
	}
	if len(awards) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(&awards).Error
}
