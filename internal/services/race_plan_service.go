package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

// RacePlanService tracks which races a user is planning to run. The saved
// list is distinct from generated training plans.
type RacePlanService interface {
	Add(ctx context.Context, userID, raceID uuid.UUID) (*types.UserRacePlan, error)
	Remove(ctx context.Context, userID, raceID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*types.UserRacePlan, error)
}

type racePlanService struct {
	db           *gorm.DB
	log          *logger.Logger
	racePlanRepo repos.UserRacePlanRepo
	raceRepo     repos.RaceRepo
}

func NewRacePlanService(db *gorm.DB, baseLog *logger.Logger, racePlanRepo repos.UserRacePlanRepo, raceRepo repos.RaceRepo) RacePlanService {
	return &racePlanService{
		db:           db,
		log:          baseLog.With("service", "RacePlanService"),
		racePlanRepo: racePlanRepo,
		raceRepo:     raceRepo,
	}
}

func (s *racePlanService) Add(ctx context.Context, userID, raceID uuid.UUID) (*types.UserRacePlan, error) {
	if _, err := s.raceRepo.GetByID(ctx, nil, raceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("race %s: %w", raceID, ErrNotFound)
		}
		return nil, err
	}

	exists, err := s.racePlanRepo.Exists(ctx, nil, userID, raceID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("race %s already planned: %w", raceID, ErrConflict)
	}

	created, err := s.racePlanRepo.Create(ctx, nil, &types.UserRacePlan{
		UserID: userID,
		RaceID: raceID,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *racePlanService) Remove(ctx context.Context, userID, raceID uuid.UUID) error {
	deleted, err := s.racePlanRepo.Delete(ctx, nil, userID, raceID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("race %s not in plan: %w", raceID, ErrNotFound)
	}
	return nil
}

func (s *racePlanService) List(ctx context.Context, userID uuid.UUID) ([]*types.UserRacePlan, error) {
	return s.racePlanRepo.ListByUser(ctx, nil, userID)
}
