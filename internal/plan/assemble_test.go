package plan

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func buildRawPlan(weeks int) *RawPlan {
	p := &RawPlan{}
	for w := 1; w <= weeks; w++ {
		week := RawWeek{WeekNumber: w, Focus: "Base"}
		for _, name := range DayNames {
			week.Days = append(week.Days, RawDay{
				DayOfWeek:   name,
				WorkoutType: "Easy Run",
				Description: "4 miles easy",
			})
		}
		p.Weeks = append(p.Weeks, week)
	}
	return p
}

func TestAssemble(t *testing.T) {
	win := Window{StartDate: date(2026, time.March, 2), Weeks: 4}
	meta := AssembleMeta{
		UserID:       uuid.New(),
		RaceID:       uuid.New(),
		RaceName:     "Spring Classic",
		RaceDistance: "Half Marathon",
		RaceDate:     "2026-03-29",
		PRSummary:    "1:45:00",
		Prefs:        Preferences{GoalTime: "1:40:00", CurrentWeeklyMileage: 25},
	}

	p, err := Assemble(buildRawPlan(4), win, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.PlanVersion != CurrentVersion {
		t.Errorf("plan_version = %d, want %d", p.PlanVersion, CurrentVersion)
	}
	if p.TotalWeeks != 4 || len(p.Weeks) != 4 {
		t.Fatalf("total_weeks = %d with %d weeks", p.TotalWeeks, len(p.Weeks))
	}
	if p.PlanStartDate != "2026-03-02" {
		t.Errorf("plan_start_date = %s", p.PlanStartDate)
	}

	for wi, w := range p.Weeks {
		wantStart := win.StartDate.AddDate(0, 0, 7*wi)
		if w.StartDate != wantStart.Format(DateLayout) {
			t.Errorf("week %d start = %s, want %s", w.WeekNumber, w.StartDate, wantStart.Format(DateLayout))
		}
		for di, d := range w.Days {
			want := wantStart.AddDate(0, 0, di).Format(DateLayout)
			if d.Date != want {
				t.Errorf("week %d day %d date = %s, want %s", w.WeekNumber, di, d.Date, want)
			}
			if d.Status != DayStatusPending {
				t.Errorf("week %d day %d status = %s", w.WeekNumber, di, d.Status)
			}
		}
	}

	details := p.PersonalizationDetails
	if details["pr_summary"] != "1:45:00" {
		t.Errorf("pr_summary = %q", details["pr_summary"])
	}
	if details["goal_time"] != "1:40:00" {
		t.Errorf("goal_time = %q", details["goal_time"])
	}
	if details["current_weekly_mileage"] != "25" {
		t.Errorf("current_weekly_mileage = %q", details["current_weekly_mileage"])
	}
	if _, ok := details["peak_weekly_mileage"]; ok {
		t.Error("peak_weekly_mileage present despite zero input")
	}
}

func TestAssembleOmitsEmptyPersonalization(t *testing.T) {
	win := Window{StartDate: date(2026, time.March, 2), Weeks: 1}
	p, err := Assemble(buildRawPlan(1), win, AssembleMeta{
		UserID:   uuid.New(),
		RaceID:   uuid.New(),
		RaceName: "Local 5K",
		RaceDate: "2026-03-08",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PersonalizationDetails != nil {
		t.Errorf("personalization_details = %v, want nil", p.PersonalizationDetails)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := doc["personalization_details"]; ok {
		t.Error("personalization_details serialized despite being empty")
	}
}

func TestAssembleWeekCountMismatch(t *testing.T) {
	win := Window{StartDate: date(2026, time.March, 2), Weeks: 4}
	_, err := Assemble(buildRawPlan(3), win, AssembleMeta{RaceName: "Spring Classic"})
	var asm *AssemblyError
	if !errors.As(err, &asm) {
		t.Fatalf("expected AssemblyError, got %T: %v", err, err)
	}
}

func TestParseStored(t *testing.T) {
	win := Window{StartDate: date(2026, time.March, 2), Weeks: 2}
	p, err := Assemble(buildRawPlan(2), win, AssembleMeta{
		UserID:   uuid.New(),
		RaceID:   uuid.New(),
		RaceName: "Local 10K",
		RaceDate: "2026-03-15",
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ParseStored(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.TotalWeeks != 2 || got.RaceName != "Local 10K" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestParseStoredOutdatedFormat(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "legacy outline without version",
			doc:  `{"race_name": "Old Race", "weeks": [{"week_number": 1, "summary": "Build base"}]}`,
		},
		{
			name: "explicit version 1",
			doc:  `{"plan_version": 1, "race_name": "Old Race"}`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStored([]byte(tc.doc))
			if !errors.Is(err, ErrOutdatedFormat) {
				t.Fatalf("expected ErrOutdatedFormat, got %v", err)
			}
		})
	}
}

func TestFindDay(t *testing.T) {
	win := Window{StartDate: date(2026, time.March, 2), Weeks: 2}
	p, err := Assemble(buildRawPlan(2), win, AssembleMeta{RaceName: "Local 10K", RaceDate: "2026-03-15"})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	day := p.FindDay("2026-03-10")
	if day == nil {
		t.Fatal("expected to find day 2026-03-10")
	}
	if day.DayOfWeek != "Tuesday" {
		t.Errorf("day_of_week = %s, want Tuesday", day.DayOfWeek)
	}
	if p.FindDay("2026-06-01") != nil {
		t.Error("found a day outside the plan window")
	}
}
