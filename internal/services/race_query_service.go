package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

// Elevation gain cutoffs, in feet, for terrain words in the question.
const (
	flatElevationCeiling = 500
	hillyElevationFloor  = 800
)

// RaceQueryResult pairs matched races with the filter the model derived, so
// the client can show what the search actually did.
type RaceQueryResult struct {
	Races  []*types.Race    `json:"races"`
	Filter repos.RaceFilter `json:"filter"`
}

// RaceQueryService turns a natural language question into a structured race
// search. The model only produces the filter; matching always runs against
// the database.
type RaceQueryService interface {
	Query(ctx context.Context, query string) (*RaceQueryResult, error)
}

type raceQueryService struct {
	db       *gorm.DB
	log      *logger.Logger
	raceRepo repos.RaceRepo
	gemini   GeminiClient
	now      func() time.Time
}

func NewRaceQueryService(db *gorm.DB, baseLog *logger.Logger, raceRepo repos.RaceRepo, gemini GeminiClient) RaceQueryService {
	return &raceQueryService{
		db:       db,
		log:      baseLog.With("service", "RaceQueryService"),
		raceRepo: raceRepo,
		gemini:   gemini,
		now:      time.Now,
	}
}

func (s *raceQueryService) Query(ctx context.Context, query string) (*RaceQueryResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", ErrValidation)
	}
	if len(query) > 500 {
		return nil, fmt.Errorf("query too long: %w", ErrValidation)
	}

	filter, err := s.deriveFilter(ctx, query)
	if err != nil {
		s.log.Warn("Race query filter derivation failed, using text search", "error", err)
		filter = repos.RaceFilter{Search: query}
	}
	if filter.AfterDate == "" {
		filter.AfterDate = s.now().UTC().Format(plan.DateLayout)
	}
	filter.Limit = 50

	races, err := s.raceRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	return &RaceQueryResult{Races: races, Filter: filter}, nil
}

func (s *raceQueryService) deriveFilter(ctx context.Context, query string) (repos.RaceFilter, error) {
	prompt := fmt.Sprintf(`Convert this race search question into a JSON filter.
Question: %q
Today's date: %s

Respond with only a JSON object of this shape (omit fields that do not apply):
`+"```json"+`
{"distance": "Marathon", "city": "Chicago", "state": "IL", "after_date": "2026-01-01", "before_date": "2026-06-30", "terrain": "flat", "search": "trail"}
`+"```"+`
"distance" must be one of: %s.
"state" is a two-letter US state code.
"terrain" is "flat" or "hilly" when the question implies a course profile.
Dates are YYYY-MM-DD.`, query, s.now().UTC().Format(plan.DateLayout), strings.Join(types.RaceDistances, ", "))

	raw, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return repos.RaceFilter{}, err
	}

	payload, err := plan.ExtractJSON(raw)
	if err != nil {
		return repos.RaceFilter{}, err
	}

	var parsed struct {
		Distance   string `json:"distance"`
		City       string `json:"city"`
		State      string `json:"state"`
		AfterDate  string `json:"after_date"`
		BeforeDate string `json:"before_date"`
		Terrain    string `json:"terrain"`
		Search     string `json:"search"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return repos.RaceFilter{}, err
	}

	filter := repos.RaceFilter{
		City:       strings.TrimSpace(parsed.City),
		State:      strings.ToUpper(strings.TrimSpace(parsed.State)),
		AfterDate:  validDateOrEmpty(parsed.AfterDate),
		BeforeDate: validDateOrEmpty(parsed.BeforeDate),
		Search:     strings.TrimSpace(parsed.Search),
	}
	if types.IsRaceDistance(parsed.Distance) {
		filter.Distance = parsed.Distance
	}
	if len(filter.State) != 2 {
		filter.State = ""
	}
	switch strings.ToLower(strings.TrimSpace(parsed.Terrain)) {
	case "flat":
		filter.MaxElevationGain = flatElevationCeiling
	case "hilly":
		filter.MinElevationGain = hillyElevationFloor
	}
	return filter, nil
}

func validDateOrEmpty(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(plan.DateLayout, s); err != nil {
		return ""
	}
	return s
}
