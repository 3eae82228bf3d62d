package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

const recommendationLimit = 5

// RecommendationService suggests upcoming races suited to PR attempts. When
// the user has a goal, candidates are narrowed to the goal distance and
// window; otherwise the next batch of upcoming races is ranked.
type RecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID) ([]*types.Race, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	raceRepo     repos.RaceRepo
	userGoalRepo repos.UserGoalRepo
	now          func() time.Time
}

func NewRecommendationService(db *gorm.DB, baseLog *logger.Logger, raceRepo repos.RaceRepo, userGoalRepo repos.UserGoalRepo) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          baseLog.With("service", "RecommendationService"),
		raceRepo:     raceRepo,
		userGoalRepo: userGoalRepo,
		now:          time.Now,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID uuid.UUID) ([]*types.Race, error) {
	today := s.now().UTC().Format(plan.DateLayout)

	goal, err := s.userGoalRepo.GetByUser(ctx, nil, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var candidates []*types.Race
	if goal != nil && goal.GoalDistance != "" {
		filter := repos.RaceFilter{
			Distance:  goal.GoalDistance,
			AfterDate: today,
			Limit:     50,
		}
		if goal.GoalRaceDate != "" {
			filter.BeforeDate = goal.GoalRaceDate
		}
		candidates, err = s.raceRepo.List(ctx, nil, filter)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 {
		candidates, err = s.raceRepo.ListUpcoming(ctx, nil, today, 20)
		if err != nil {
			return nil, err
		}
	}

	rankRaces(candidates)
	if len(candidates) > recommendationLimit {
		candidates = candidates[:recommendationLimit]
	}
	return candidates, nil
}

// rankRaces orders flattest first, breaking ties on PR potential. Races
// without scores sink to the end.
func rankRaces(races []*types.Race) {
	sort.SliceStable(races, func(i, j int) bool {
		fi, fj := scoreOrMin(races[i].FlatnessScore), scoreOrMin(races[j].FlatnessScore)
		if fi != fj {
			return fi > fj
		}
		return prPotentialOrMin(races[i]) > prPotentialOrMin(races[j])
	})
}

func scoreOrMin(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}

func prPotentialOrMin(r *types.Race) float64 {
	if r.PRPotentialScore == nil {
		return -1
	}
	return *r.PRPotentialScore
}
