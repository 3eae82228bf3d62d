package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ourpr/ourpr-backend/internal/logger"
	"github.com/ourpr/ourpr-backend/internal/plan"
	"github.com/ourpr/ourpr-backend/internal/repos"
	"github.com/ourpr/ourpr-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeRaceRepo struct {
	races map[uuid.UUID]*types.Race
}

func (f *fakeRaceRepo) GetByID(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) (*types.Race, error) {
	race, ok := f.races[raceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return race, nil
}

func (f *fakeRaceRepo) List(ctx context.Context, tx *gorm.DB, filter repos.RaceFilter) ([]*types.Race, error) {
	var out []*types.Race
	for _, r := range f.races {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRaceRepo) ListUpcoming(ctx context.Context, tx *gorm.DB, afterDate string, limit int) ([]*types.Race, error) {
	return f.List(ctx, tx, repos.RaceFilter{})
}

func (f *fakeRaceRepo) IncrementPlanCount(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) error {
	return nil
}

func (f *fakeRaceRepo) IncrementViewCount(ctx context.Context, tx *gorm.DB, raceID uuid.UUID) error {
	return nil
}

type fakePRRepo struct {
	best map[string]*types.UserPR
}

func (f *fakePRRepo) Create(ctx context.Context, tx *gorm.DB, pr *types.UserPR) (*types.UserPR, error) {
	return pr, nil
}

func (f *fakePRRepo) Update(ctx context.Context, tx *gorm.DB, pr *types.UserPR) (*types.UserPR, error) {
	return pr, nil
}

func (f *fakePRRepo) Delete(ctx context.Context, tx *gorm.DB, prID uuid.UUID) error { return nil }

func (f *fakePRRepo) GetByID(ctx context.Context, tx *gorm.DB, prID uuid.UUID) (*types.UserPR, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePRRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, distance string) ([]*types.UserPR, error) {
	return nil, nil
}

func (f *fakePRRepo) BestByUserAndDistance(ctx context.Context, tx *gorm.DB, userID uuid.UUID, distance string) (*types.UserPR, error) {
	return f.best[distance], nil
}

type fakePlanRepo struct {
	records map[string]*types.GeneratedPlan
	upserts int
}

func planKey(userID, raceID uuid.UUID) string {
	return userID.String() + "/" + raceID.String()
}

func (f *fakePlanRepo) Upsert(ctx context.Context, tx *gorm.DB, p *types.GeneratedPlan) (*types.GeneratedPlan, error) {
	if f.records == nil {
		f.records = map[string]*types.GeneratedPlan{}
	}
	f.upserts++
	f.records[planKey(p.UserID, p.RaceID)] = p
	return p, nil
}

func (f *fakePlanRepo) GetByUserAndRace(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (*types.GeneratedPlan, error) {
	record, ok := f.records[planKey(userID, raceID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, tx *gorm.DB, userID, raceID uuid.UUID) (int64, error) {
	key := planKey(userID, raceID)
	if _, ok := f.records[key]; !ok {
		return 0, nil
	}
	delete(f.records, key)
	return 1, nil
}

type fakeGemini struct {
	response string
	prompt   string
	err      error
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func modelPlanJSON(weeks int) string {
	var wk []string
	for w := 1; w <= weeks; w++ {
		var days []string
		for _, name := range plan.DayNames {
			days = append(days, fmt.Sprintf(`{"day_of_week": %q, "workout_type": "Easy Run", "description": "4 miles"}`, name))
		}
		wk = append(wk, fmt.Sprintf(`{"week_number": %d, "focus": "Build", "days": [%s]}`, w, strings.Join(days, ",")))
	}
	return fmt.Sprintf("```json\n{\"weeks\": [%s]}\n```", strings.Join(wk, ","))
}

func newTestPlanService(race *types.Race, gemini *fakeGemini) (*planService, *fakePlanRepo) {
	raceRepo := &fakeRaceRepo{races: map[uuid.UUID]*types.Race{race.ID: race}}
	planRepo := &fakePlanRepo{}
	svc := &planService{
		log:      testLogger(),
		raceRepo: raceRepo,
		prRepo:   &fakePRRepo{best: map[string]*types.UserPR{"Marathon": {TimeInSeconds: 3*3600 + 45*60}}},
		planRepo: planRepo,
		gemini:   gemini,
		now:      func() time.Time { return time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC) },
	}
	return svc, planRepo
}

func testRace() *types.Race {
	return &types.Race{
		ID:       uuid.New(),
		Name:     "Spring Marathon",
		Distance: "Marathon",
		Date:     "2026-05-11",
	}
}

func TestPlanServiceGenerate(t *testing.T) {
	race := testRace()
	gemini := &fakeGemini{response: modelPlanJSON(10)}
	svc, planRepo := newTestPlanService(race, gemini)
	userID := uuid.New()

	p, err := svc.Generate(context.Background(), userID, race.ID, plan.Preferences{GoalTime: "3:30:00"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if p.TotalWeeks != 10 {
		t.Errorf("total_weeks = %d, want 10", p.TotalWeeks)
	}
	if p.PlanStartDate != "2026-03-02" {
		t.Errorf("plan_start_date = %s", p.PlanStartDate)
	}
	if p.UserID != userID || p.RaceID != race.ID {
		t.Error("identity fields not stamped")
	}
	if !strings.Contains(gemini.prompt, "Spring Marathon") {
		t.Error("prompt missing race name")
	}
	if !strings.Contains(gemini.prompt, "3:45:00") {
		t.Error("prompt missing PR summary")
	}
	if len(planRepo.records) != 0 {
		t.Error("generate persisted a plan")
	}
}

func TestPlanServiceGenerateRaceNotFound(t *testing.T) {
	svc, _ := newTestPlanService(testRace(), &fakeGemini{})
	_, err := svc.Generate(context.Background(), uuid.New(), uuid.New(), plan.Preferences{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanServiceGenerateInvalidPreferences(t *testing.T) {
	race := testRace()

	tests := []struct {
		name  string
		prefs plan.Preferences
	}{
		{name: "too many running days", prefs: plan.Preferences{PreferredRunningDays: 9}},
		{name: "too few running days", prefs: plan.Preferences{PreferredRunningDays: 2}},
		{name: "midweek long run day", prefs: plan.Preferences{PreferredLongRunDay: "Wednesday"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gemini := &fakeGemini{response: modelPlanJSON(10)}
			svc, _ := newTestPlanService(race, gemini)

			_, err := svc.Generate(context.Background(), uuid.New(), race.ID, tc.prefs)
			var invalid *plan.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if gemini.prompt != "" {
				t.Error("model was called despite invalid preferences")
			}
		})
	}
}

func TestPlanServiceGenerateIncompleteModel(t *testing.T) {
	race := testRace()
	svc, _ := newTestPlanService(race, &fakeGemini{response: modelPlanJSON(6)})

	_, err := svc.Generate(context.Background(), uuid.New(), race.ID, plan.Preferences{})
	var incomplete *plan.IncompleteGenerationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteGenerationError, got %v", err)
	}
	if incomplete.MissingWeek != 7 {
		t.Errorf("missing week = %d, want 7", incomplete.MissingWeek)
	}
}

func savedPlan(t *testing.T, svc *planService, userID uuid.UUID, race *types.Race) *plan.DetailedPlan {
	t.Helper()
	p, err := svc.Generate(context.Background(), userID, race.ID, plan.Preferences{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := svc.Save(context.Background(), userID, race.ID, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	return p
}

func TestPlanServiceSaveAndGet(t *testing.T) {
	race := testRace()
	svc, planRepo := newTestPlanService(race, &fakeGemini{response: modelPlanJSON(10)})
	userID := uuid.New()

	savedPlan(t, svc, userID, race)
	if len(planRepo.records) != 1 {
		t.Fatalf("expected one stored plan, got %d", len(planRepo.records))
	}

	got, err := svc.Get(context.Background(), userID, race.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RaceName != "Spring Marathon" {
		t.Errorf("race_name = %s", got.RaceName)
	}
}

func TestPlanServiceSaveWrongUser(t *testing.T) {
	race := testRace()
	svc, _ := newTestPlanService(race, &fakeGemini{response: modelPlanJSON(10)})

	p, err := svc.Generate(context.Background(), uuid.New(), race.ID, plan.Preferences{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc, _ := json.Marshal(p)

	_, err = svc.Save(context.Background(), uuid.New(), race.ID, doc)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPlanServiceGetOutdatedFormat(t *testing.T) {
	race := testRace()
	svc, planRepo := newTestPlanService(race, &fakeGemini{})
	userID := uuid.New()

	legacy := []byte(`{"race_name": "Spring Marathon", "weeks": [{"week_number": 1, "summary": "Base"}]}`)
	planRepo.Upsert(context.Background(), nil, &types.GeneratedPlan{
		UserID:        userID,
		RaceID:        race.ID,
		GeneratedPlan: datatypes.JSON(legacy),
		PlanVersion:   1,
	})

	_, err := svc.Get(context.Background(), userID, race.ID)
	if !errors.Is(err, plan.ErrOutdatedFormat) {
		t.Fatalf("expected ErrOutdatedFormat, got %v", err)
	}
}

func TestPlanServiceUpdateDayStatus(t *testing.T) {
	race := testRace()
	svc, _ := newTestPlanService(race, &fakeGemini{response: modelPlanJSON(10)})
	userID := uuid.New()
	savedPlan(t, svc, userID, race)

	day, err := svc.UpdateDayStatus(context.Background(), userID, race.ID, "2026-03-04", plan.DayStatusCompleted)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if day.Status != plan.DayStatusCompleted {
		t.Errorf("status = %s", day.Status)
	}

	got, err := svc.Get(context.Background(), userID, race.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FindDay("2026-03-04").Status != plan.DayStatusCompleted {
		t.Error("status change not persisted")
	}

	if _, err := svc.UpdateDayStatus(context.Background(), userID, race.ID, "2030-01-01", plan.DayStatusSkipped); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for out-of-plan date, got %v", err)
	}
}

func TestPlanServiceUpdateDayStatusNoOp(t *testing.T) {
	race := testRace()
	svc, planRepo := newTestPlanService(race, &fakeGemini{response: modelPlanJSON(10)})
	userID := uuid.New()
	savedPlan(t, svc, userID, race)

	if _, err := svc.UpdateDayStatus(context.Background(), userID, race.ID, "2026-03-04", plan.DayStatusCompleted); err != nil {
		t.Fatalf("first update: %v", err)
	}
	writesAfterFirst := planRepo.upserts

	day, err := svc.UpdateDayStatus(context.Background(), userID, race.ID, "2026-03-04", plan.DayStatusCompleted)
	if err != nil {
		t.Fatalf("repeated update: %v", err)
	}
	if day.Status != plan.DayStatusCompleted {
		t.Errorf("status = %s", day.Status)
	}
	if planRepo.upserts != writesAfterFirst {
		t.Errorf("repeated update wrote %d extra times", planRepo.upserts-writesAfterFirst)
	}
}

func TestPlanServiceDeleteIdempotent(t *testing.T) {
	race := testRace()
	svc, planRepo := newTestPlanService(race, &fakeGemini{response: modelPlanJSON(10)})
	userID := uuid.New()
	savedPlan(t, svc, userID, race)

	if err := svc.Delete(context.Background(), userID, race.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(planRepo.records) != 0 {
		t.Fatal("plan still stored after delete")
	}
	if err := svc.Delete(context.Background(), userID, race.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFormatTimeFromSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, ""},
		{59, "0:59"},
		{25 * 60, "25:00"},
		{3600, "1:00:00"},
		{3*3600 + 45*60 + 9, "3:45:09"},
	}
	for _, tc := range tests {
		if got := formatTimeFromSeconds(tc.seconds); got != tc.want {
			t.Errorf("formatTimeFromSeconds(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
