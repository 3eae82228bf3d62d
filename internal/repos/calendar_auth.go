package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type CalendarAuthRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, auth *types.CalendarAuth) error
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CalendarAuth, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type calendarAuthRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarAuthRepo(db *gorm.DB, baseLog *logger.Logger) CalendarAuthRepo {
	repoLog := baseLog.With("repo", "CalendarAuthRepo")
	return &calendarAuthRepo{db: db, log: repoLog}
}

func (ca *calendarAuthRepo) Upsert(ctx context.Context, tx *gorm.DB, auth *types.CalendarAuth) error {
	transaction := tx
	if transaction == nil {
		transaction = ca.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"encrypted_refresh_token", "google_email", "updated_at"}),
		}).
		Create(auth).Error
}

func (ca *calendarAuthRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CalendarAuth, error) {
	transaction := tx
	if transaction == nil {
		transaction = ca.db
	}
	var result types.CalendarAuth
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ca *calendarAuthRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ca.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.CalendarAuth{}).Error
}

type OAuthStateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, state *types.OAuthState) error
	Consume(ctx context.Context, tx *gorm.DB, token string) (*types.OAuthState, error)
	DeleteExpired(ctx context.Context, tx *gorm.DB) (int64, error)
}

type oauthStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOAuthStateRepo(db *gorm.DB, baseLog *logger.Logger) OAuthStateRepo {
	repoLog := baseLog.With("repo", "OAuthStateRepo")
	return &oauthStateRepo{db: db, log: repoLog}
}

func (os *oauthStateRepo) Create(ctx context.Context, tx *gorm.DB, state *types.OAuthState) error {
	transaction := tx
	if transaction == nil {
		transaction = os.db
	}
	return transaction.WithContext(ctx).Create(state).Error
}

// Consume fetches and deletes a state token in one shot. Expired tokens are
// deleted but reported as gorm.ErrRecordNotFound.
func (os *oauthStateRepo) Consume(ctx context.Context, tx *gorm.DB, token string) (*types.OAuthState, error) {
	transaction := tx
	if transaction == nil {
		transaction = os.db
	}

	var state types.OAuthState
	if err := transaction.WithContext(ctx).
		Where("token = ?", token).
		First(&state).Error; err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).
		Where("token = ?", token).
		Delete(&types.OAuthState{}).Error; err != nil {
		return nil, err
	}
	if time.Now().UTC().After(state.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}
	return &state, nil
}

func (os *oauthStateRepo) DeleteExpired(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = os.db
	}
	result := transaction.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&types.OAuthState{})
	return result.RowsAffected, result.Error
}
