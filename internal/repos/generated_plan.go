package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type GeneratedPlanRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, plan *types.GeneratedPlan) (*types.GeneratedPlan, error)
	GetByUserAndRace(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (*types.GeneratedPlan, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (int64, error)
}

type generatedPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedPlanRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedPlanRepo {
	repoLog := baseLog.With("repo", "GeneratedPlanRepo")
	return &generatedPlanRepo{db: db, log: repoLog}
}

// Upsert writes the document for (user, race), replacing any previous plan in
// one statement.
func (gp *generatedPlanRepo) Upsert(ctx context.Context, tx *gorm.DB, plan *types.GeneratedPlan) (*types.GeneratedPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = gp.db
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "race_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"generated_plan", "plan_version", "updated_at"}),
		}).
		Create(plan).Error
	if err != nil {
		return nil, err
	}
	return gp.GetByUserAndRace(ctx, transaction, plan.UserID, plan.RaceID)
}

func (gp *generatedPlanRepo) GetByUserAndRace(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (*types.GeneratedPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = gp.db
	}
	var result types.GeneratedPlan
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND race_id = ?", userID, raceID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gp *generatedPlanRepo) Delete(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = gp.db
	}
	result := transaction.WithContext(ctx).
		Where("user_id = ? AND race_id = ?", userID, raceID).
		Delete(&types.GeneratedPlan{})
	return result.RowsAffected, result.Error
}
