package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

// PRInput is the validated shape of a PR create or update.
type PRInput struct {
	Distance      string
	Date          string
	TimeInSeconds int
	RaceID        *uuid.UUID
	IsOfficial    *bool
	RaceName      string
}

type PRService interface {
	Create(ctx context.Context, userID uuid.UUID, in PRInput) (*types.UserPR, error)
	Update(ctx context.Context, userID, prID uuid.UUID, in PRInput) (*types.UserPR, error)
	Delete(ctx context.Context, userID, prID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, distance string) ([]*types.UserPR, error)
}

type prService struct {
	db           *gorm.DB
	log          *logger.Logger
	prRepo       repos.UserPRRepo
	achievements AchievementService
}

func NewPRService(db *gorm.DB, baseLog *logger.Logger, prRepo repos.UserPRRepo, achievements AchievementService) PRService {
	return &prService{
		db:           db,
		log:          baseLog.With("service", "PRService"),
		prRepo:       prRepo,
		achievements: achievements,
	}
}

func validatePRInput(in PRInput) error {
	if !types.IsRaceDistance(in.Distance) {
		return fmt.Errorf("unknown distance %q: %w", in.Distance, ErrValidation)
	}
	if in.TimeInSeconds <= 0 {
		return fmt.Errorf("time_in_seconds must be positive: %w", ErrValidation)
	}
	if _, err := time.Parse(plan.DateLayout, in.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", ErrValidation)
	}
	return nil
}

func (s *prService) Create(ctx context.Context, userID uuid.UUID, in PRInput) (*types.UserPR, error) {
	if err := validatePRInput(in); err != nil {
		return nil, err
	}

	history, err := s.prRepo.ListByUser(ctx, nil, userID, "")
	if err != nil {
		return nil, err
	}

	record := &types.UserPR{
		UserID:        userID,
		Distance:      in.Distance,
		Date:          in.Date,
		TimeInSeconds: in.TimeInSeconds,
		RaceID:        in.RaceID,
		IsOfficial:    true,
		RaceName:      in.RaceName,
	}
	if in.IsOfficial != nil {
		record.IsOfficial = *in.IsOfficial
	}

	created, err := s.prRepo.Create(ctx, nil, record)
	if err != nil {
		return nil, err
	}

	s.achievements.ScoreAsync(userID, created, history)
	return created, nil
}

func (s *prService) Update(ctx context.Context, userID, prID uuid.UUID, in PRInput) (*types.UserPR, error) {
	if err := validatePRInput(in); err != nil {
		return nil, err
	}

	record, err := s.ownedPR(ctx, userID, prID)
	if err != nil {
		return nil, err
	}

	history, err := s.prRepo.ListByUser(ctx, nil, userID, "")
	if err != nil {
		return nil, err
	}

	record.Distance = in.Distance
	record.Date = in.Date
	record.TimeInSeconds = in.TimeInSeconds
	record.RaceID = in.RaceID
	record.RaceName = in.RaceName
	if in.IsOfficial != nil {
		record.IsOfficial = *in.IsOfficial
	}

	updated, err := s.prRepo.Update(ctx, nil, record)
	if err != nil {
		return nil, err
	}

	s.achievements.ScoreAsync(userID, updated, history)
	return updated, nil
}

func (s *prService) Delete(ctx context.Context, userID, prID uuid.UUID) error {
	if _, err := s.ownedPR(ctx, userID, prID); err != nil {
		return err
	}
	return s.prRepo.Delete(ctx, nil, prID)
}

func (s *prService) List(ctx context.Context, userID uuid.UUID, distance string) ([]*types.UserPR, error) {
	if distance != "" && !types.IsRaceDistance(distance) {
		return nil, fmt.Errorf("unknown distance %q: %w", distance, ErrValidation)
	}
	return s.prRepo.ListByUser(ctx, nil, userID, distance)
}

func (s *prService) ownedPR(ctx context.Context, userID, prID uuid.UUID) (*types.UserPR, error) {
	record, err := s.prRepo.GetByID(ctx, nil, prID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("pr %s: %w", prID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, fmt.Errorf("pr %s: %w", prID, ErrForbidden)
	}
	return record, nil
}
