package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

// PlanService owns the detailed training plan lifecycle. Generate never
// persists; the client reviews the draft and saves it explicitly.
type PlanService interface {
	Generate(ctx context.Context, userID, raceID uuid.UUID, prefs plan.Preferences) (*plan.DetailedPlan, error)
	Save(ctx context.Context, userID, raceID uuid.UUID, doc json.RawMessage) (*types.GeneratedPlan, error)
	Get(ctx context.Context, userID, raceID uuid.UUID) (*plan.DetailedPlan, error)
	UpdateDayStatus(ctx context.Context, userID, raceID uuid.UUID, date string, status plan.DayStatus) (*plan.Day, error)
	ReplaceStructure(ctx context.Context, userID, raceID uuid.UUID, doc json.RawMessage) (*plan.DetailedPlan, error)
	Delete(ctx context.Context, userID, raceID uuid.UUID) error
}

type planService struct {
	db       *gorm.DB
	log      *logger.Logger
	raceRepo repos.RaceRepo
	prRepo   repos.UserPRRepo
	planRepo repos.GeneratedPlanRepo
	gemini   GeminiClient
	now      func() time.Time
}

func NewPlanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	raceRepo repos.RaceRepo,
	prRepo repos.UserPRRepo,
	planRepo repos.GeneratedPlanRepo,
	gemini GeminiClient,
) PlanService {
	return &planService{
		db:       db,
		log:      baseLog.With("service", "PlanService"),
		raceRepo: raceRepo,
		prRepo:   prRepo,
		planRepo: planRepo,
		gemini:   gemini,
		now:      time.Now,
	}
}

func (s *planService) Generate(ctx context.Context, userID, raceID uuid.UUID, prefs plan.Preferences) (*plan.DetailedPlan, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	race, err := s.raceRepo.GetByID(ctx, nil, raceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("race %s: %w", raceID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if race.Date == "" {
		return nil, &plan.InvalidInputError{Reason: "race has no date, cannot generate plan"}
	}
	raceDate, err := time.Parse(plan.DateLayout, race.Date)
	if err != nil {
		return nil, &plan.InvalidInputError{Reason: "race has an invalid date: " + race.Date}
	}

	win, err := plan.CalculateWindow(raceDate, s.now().UTC())
	if err != nil {
		return nil, err
	}

	prSummary := ""
	if best, err := s.prRepo.BestByUserAndDistance(ctx, nil, userID, race.Distance); err != nil {
		return nil, err
	} else if best != nil {
		prSummary = formatTimeFromSeconds(best.TimeInSeconds)
	}

	prompt := plan.BuildPrompt(plan.PromptInput{
		RaceName:     race.Name,
		RaceDistance: race.Distance,
		RaceDate:     race.Date,
		PRSummary:    prSummary,
		Weeks:        win.Weeks,
		Prefs:        prefs,
	})

	s.log.Info("Generating training plan", "user_id", userID, "race_id", raceID, "weeks", win.Weeks)
	raw, err := s.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("plan generation call failed: %w", err)
	}

	repaired, err := plan.RepairResponse(raw, win.Weeks, s.log)
	if err != nil {
		return nil, err
	}

	return plan.Assemble(repaired, win, plan.AssembleMeta{
		UserID:       userID,
		RaceID:       raceID,
		RaceName:     race.Name,
		RaceDistance: race.Distance,
		RaceDate:     race.Date,
		PRSummary:    prSummary,
		Prefs:        prefs,
	})
}

func (s *planService) Save(ctx context.Context, userID, raceID uuid.UUID, doc json.RawMessage) (*types.GeneratedPlan, error) {
	parsed, err := plan.ParseStored(doc)
	if err != nil {
		return nil, err
	}
	if parsed.UserID != userID {
		return nil, fmt.Errorf("plan belongs to another user: %w", ErrForbidden)
	}
	if parsed.RaceID != raceID {
		return nil, &plan.InvalidInputError{Reason: "plan race_id does not match the path"}
	}
	record, err := s.upsert(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if err := s.raceRepo.IncrementPlanCount(ctx, nil, raceID); err != nil {
		s.log.Warn("Failed to bump race plan count", "race_id", raceID, "error", err)
	}
	return record, nil
}

func (s *planService) Get(ctx context.Context, userID, raceID uuid.UUID) (*plan.DetailedPlan, error) {
	record, err := s.planRepo.GetByUserAndRace(ctx, nil, userID, raceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no plan for race %s: %w", raceID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return plan.ParseStored(record.GeneratedPlan)
}

func (s *planService) UpdateDayStatus(ctx context.Context, userID, raceID uuid.UUID, date string, status plan.DayStatus) (*plan.Day, error) {
	p, err := s.Get(ctx, userID, raceID)
	if err != nil {
		return nil, err
	}

	day := p.FindDay(date)
	if day == nil {
		return nil, fmt.Errorf("no day %s in plan: %w", date, ErrNotFound)
	}
	if day.Status == status {
		return day, nil
	}

	day.Status = status
	if _, err := s.upsert(ctx, p); err != nil {
		return nil, err
	}
	return day, nil
}

func (s *planService) ReplaceStructure(ctx context.Context, userID, raceID uuid.UUID, doc json.RawMessage) (*plan.DetailedPlan, error) {
	// An outdated stored plan can still be replaced wholesale.
	if _, err := s.Get(ctx, userID, raceID); err != nil && !errors.Is(err, plan.ErrOutdatedFormat) {
		return nil, err
	}

	parsed, err := plan.ParseStored(doc)
	if err != nil {
		return nil, err
	}
	if parsed.UserID != userID {
		return nil, fmt.Errorf("plan belongs to another user: %w", ErrForbidden)
	}
	if parsed.RaceID != raceID {
		return nil, &plan.InvalidInputError{Reason: "plan race_id does not match the path"}
	}
	if _, err := s.upsert(ctx, parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (s *planService) Delete(ctx context.Context, userID, raceID uuid.UUID) error {
	deleted, err := s.planRepo.Delete(ctx, nil, userID, raceID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		s.log.Debug("Delete of absent plan", "user_id", userID, "race_id", raceID)
	}
	return nil
}

func (s *planService) upsert(ctx context.Context, p *plan.DetailedPlan) (*types.GeneratedPlan, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal plan document: %w", err)
	}
	return s.planRepo.Upsert(ctx, nil, &types.GeneratedPlan{
		UserID:        p.UserID,
		RaceID:        p.RaceID,
		GeneratedPlan: datatypes.JSON(doc),
		PlanVersion:   p.PlanVersion,
	})
}

// formatTimeFromSeconds renders a PR as h:mm:ss, or m:ss under an hour.
func formatTimeFromSeconds(total int) string {
	if total <= 0 {
		return ""
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
