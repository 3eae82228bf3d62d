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

type RaceService interface {
	List(ctx context.Context, filter repos.RaceFilter) ([]*types.Race, error)
	Get(ctx context.Context, raceID uuid.UUID) (*types.Race, error)
}

type raceService struct {
	db       *gorm.DB
	log      *logger.Logger
	raceRepo repos.RaceRepo
}

func NewRaceService(db *gorm.DB, baseLog *logger.Logger, raceRepo repos.RaceRepo) RaceService {
	return &raceService{
		db:       db,
		log:      baseLog.With("service", "RaceService"),
		raceRepo: raceRepo,
	}
}

func (s *raceService) List(ctx context.Context, filter repos.RaceFilter) ([]*types.Race, error) {
	if filter.Distance != "" && !types.IsRaceDistance(filter.Distance) {
		return nil, fmt.Errorf("unknown distance %q: %w", filter.Distance, ErrValidation)
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.raceRepo.List(ctx, nil, filter)
}

func (s *raceService) Get(ctx context.Context, raceID uuid.UUID) (*types.Race, error) {
	race, err := s.raceRepo.GetByID(ctx, nil, raceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("race %s: %w", raceID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.raceRepo.IncrementViewCount(ctx, nil, raceID); err != nil {
		s.log.Warn("Failed to bump race view count", "race_id", raceID, "error", err)
	}
	return race, nil
}
