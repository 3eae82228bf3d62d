package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

// RaceFilter narrows race listings. Zero values mean no constraint.
type RaceFilter struct {
	Distance         string
	City             string
	State            string
	AfterDate        string
	BeforeDate       string
	Search           string
	FlatOnly         bool
	MinElevationGain int
	MaxElevationGain int
	Limit            int
	Offset           int
}

type RaceRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) (*types.Race, error)
	List(ctx context.Context, tx *gorm.DB, filter RaceFilter) ([]*types.Race, error)
	ListUpcoming(ctx context.Context, tx *gorm.DB, afterDate string, limit int) ([]*types.Race, error)
	IncrementPlanCount(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) error
	IncrementViewCount(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) error
}

type raceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRaceRepo(db *gorm.DB, baseLog *logger.Logger) RaceRepo {
	repoLog := baseLog.With("repo", "RaceRepo")
	return &raceRepo{db: db, log: repoLog}
}

func (rr *raceRepo) GetByID(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) (*types.Race, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Race
	if err := transaction.WithContext(ctx).
		Where("id = ?", raceID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *raceRepo) List(ctx context.Context, tx *gorm.DB, filter RaceFilter) ([]*types.Race, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Race{})
	if filter.Distance != "" {
		query = query.Where("distance = ?", filter.Distance)
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", filter.City)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.AfterDate != "" {
		query = query.Where("date >= ?", filter.AfterDate)
	}
	if filter.BeforeDate != "" {
		query = query.Where("date <= ?", filter.BeforeDate)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.FlatOnly {
		query = query.Where("flatness_score >= ?", 4)
	}
	if filter.MinElevationGain > 0 {
		query = query.Where("total_elevation_gain >= ?", filter.MinElevationGain)
	}
	if filter.MaxElevationGain > 0 {
		query = query.Where("total_elevation_gain <= ?", filter.MaxElevationGain)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var results []*types.Race
	if err := query.Order("date ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *raceRepo) ListUpcoming(ctx context.Context, tx *gorm.DB, afterDate string, limit int) ([]*types.Race, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Race
	query := transaction.WithContext(ctx).
		Where("date >= ?", afterDate).
		Order("date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *raceRepo) IncrementPlanCount(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Race{}).
		Where("id = ?", raceID).
		UpdateColumn("plan_count", gorm.Expr("plan_count + 1")).Error
}

func (rr *raceRepo) IncrementViewCount(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Race{}).
		Where("id = ?", raceID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
