package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

type AchievementService interface {
	SeedCatalog(ctx context.Context) error
	ListEarned(ctx context.Context, userID uuid.UUID) ([]*types.UserAchievement, error)
	// ScoreAsync evaluates achievement rules for a PR write without blocking
	// the caller. Failures are logged and dropped; the next PR write will
	// re-evaluate everything anyway.
	ScoreAsync(userID uuid.UUID, newPR *types.UserPR, history []*types.UserPR)
}

type achievementService struct {
	db              *gorm.DB
	log             *logger.Logger
	achievementRepo repos.AchievementRepo
	userAchRepo     repos.UserAchievementRepo
}

func NewAchievementService(
	db *gorm.DB,
	baseLog *logger.Logger,
	achievementRepo repos.AchievementRepo,
	userAchRepo repos.UserAchievementRepo,
) AchievementService {
	return &achievementService{
		db:              db,
		log:             baseLog.With("service", "AchievementService"),
		achievementRepo: achievementRepo,
		userAchRepo:     userAchRepo,
	}
}

func (s *achievementService) SeedCatalog(ctx context.Context) error {
	return s.achievementRepo.SeedCatalog(ctx, nil, AchievementCatalog())
}

func (s *achievementService) ListEarned(ctx context.Context, userID uuid.UUID) ([]*types.UserAchievement, error) {
	return s.userAchRepo.ListByUser(ctx, nil, userID)
}

func (s *achievementService) ScoreAsync(userID uuid.UUID, newPR *types.UserPR, history []*types.UserPR) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("Achievement scoring panicked", "user_id", userID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.score(ctx, userID, newPR, history); err != nil {
			s.log.Error("Achievement scoring failed", "user_id", userID, "error", err)
		}
	}()
}

func (s *achievementService) score(ctx context.Context, userID uuid.UUID, newPR *types.UserPR, history []*types.UserPR) error {
	all, err := s.achievementRepo.ListAll(ctx, nil)
	if err != nil {
		return err
	}
	catalog := make(map[string]uuid.UUID, len(all))
	for _, a := range all {
		catalog[a.Code] = a.ID
	}

	existing, err := s.userAchRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return err
	}
	earned := make(map[uuid.UUID]bool, len(existing))
	for _, ua := range existing {
		earned[ua.AchievementID] = true
	}

	newIDs := evaluateAchievements(catalog, earned, history, newPR)
	if len(newIDs) == 0 {
		return nil
	}

	awards := make([]*types.UserAchievement, 0, len(newIDs))
	now := time.Now().UTC()
	for _, id := range newIDs {
		awards = append(awards, &types.UserAchievement{
			UserID:        userID,
			AchievementID: id,
			EarnedAt:      now,
		})
	}

	if err := s.userAchRepo.CreateBatch(ctx, nil, awards); err != nil {
		return err
	}
	s.log.Info("Awarded achievements", "user_id", userID, "count", len(awards))
	return nil
}
