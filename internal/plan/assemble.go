package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AssembleMeta carries the trusted inputs stamped onto the final document.
type AssembleMeta struct {
	UserID       uuid.UUID
	RaceID       uuid.UUID
	RaceName     string
	RaceDistance string
	RaceDate     string
	PRSummary    string
	Prefs        Preferences
}

// Assemble attaches calendar dates, statuses, and metadata to a repaired plan
// and validates the result. The repaired input is assumed to already satisfy
// the per-week invariants; any violation found here is an internal defect.
func Assemble(raw *RawPlan, win Window, meta AssembleMeta) (*DetailedPlan, error) {
	if len(raw.Weeks) != win.Weeks {
		return nil, &AssemblyError{Reason: fmt.Sprintf("repaired plan has %d weeks, window has %d", len(raw.Weeks), win.Weeks)}
	}

	p := &DetailedPlan{
		PlanVersion:   CurrentVersion,
		UserID:        meta.UserID,
		RaceID:        meta.RaceID,
		RaceName:      meta.RaceName,
		RaceDistance:  meta.RaceDistance,
		RaceDate:      meta.RaceDate,
		GoalTime:      meta.Prefs.GoalTime,
		PlanStartDate: win.StartDate.Format(DateLayout),
		TotalWeeks:    win.Weeks,
		OverallNotes:  raw.OverallNotes,
		GeneratedAt:   time.Now().UTC(),
	}

	for wi, rw := range raw.Weeks {
		weekStart := win.StartDate.AddDate(0, 0, 7*wi)
		week := Week{
			WeekNumber:       wi + 1,
			StartDate:        weekStart.Format(DateLayout),
			EndDate:          weekStart.AddDate(0, 0, 6).Format(DateLayout),
			Focus:            rw.Focus,
			EstimatedMileage: rw.EstimatedMileage,
		}
		for di, rd := range rw.Days {
			week.Days = append(week.Days, Day{
				Date:        weekStart.AddDate(0, 0, di).Format(DateLayout),
				DayOfWeek:   rd.DayOfWeek,
				WorkoutType: rd.WorkoutType,
				Description: rd.Description,
				Distance:    rd.Distance,
				Duration:    rd.Duration,
				Intensity:   rd.Intensity,
				Notes:       rd.Notes,
				Status:      DayStatusPending,
			})
		}
		p.Weeks = append(p.Weeks, week)
	}

	p.PersonalizationDetails = personalization(meta.PRSummary, meta.Prefs)

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func personalization(prSummary string, prefs Preferences) map[string]string {
	d := map[string]string{}
	if prSummary != "" {
		d["pr_summary"] = prSummary
	}
	if prefs.GoalTime != "" {
		d["goal_time"] = prefs.GoalTime
	}
	if prefs.CurrentWeeklyMileage > 0 {
		d["current_weekly_mileage"] = strconv.Itoa(prefs.CurrentWeeklyMileage)
	}
	if prefs.PeakWeeklyMileage > 0 {
		d["peak_weekly_mileage"] = strconv.Itoa(prefs.PeakWeeklyMileage)
	}
	if prefs.PreferredRunningDays > 0 {
		d["preferred_running_days"] = strconv.Itoa(prefs.PreferredRunningDays)
	}
	if prefs.PreferredLongRunDay != "" {
		d["preferred_long_run_day"] = prefs.PreferredLongRunDay
	}
	if len(d) == 0 {
		return nil
	}
	return d
}

// Validate checks every structural invariant of a version-2 plan document.
func Validate(p *DetailedPlan) error {
	if p.PlanVersion != CurrentVersion {
		return &AssemblyError{Reason: fmt.Sprintf("plan_version %d, want %d", p.PlanVersion, CurrentVersion)}
	}
	if p.TotalWeeks != len(p.Weeks) {
		return &AssemblyError{Reason: fmt.Sprintf("total_weeks %d but %d weeks present", p.TotalWeeks, len(p.Weeks))}
	}
	start, err := time.Parse(DateLayout, p.PlanStartDate)
	if err != nil {
		return &AssemblyError{Reason: "plan_start_date is not a valid date: " + p.PlanStartDate}
	}
	if start.Weekday() != time.Monday {
		return &AssemblyError{Reason: "plan_start_date is not a Monday: " + p.PlanStartDate}
	}

	for wi, w := range p.Weeks {
		if w.WeekNumber != wi+1 {
			return &AssemblyError{Reason: fmt.Sprintf("week at position %d numbered %d", wi, w.WeekNumber)}
		}
		if len(w.Days) != 7 {
			return &AssemblyError{Reason: fmt.Sprintf("week %d has %d days", w.WeekNumber, len(w.Days))}
		}
		weekStart := start.AddDate(0, 0, 7*wi)
		if w.StartDate != weekStart.Format(DateLayout) {
			return &AssemblyError{Reason: fmt.Sprintf("week %d start_date %s, want %s", w.WeekNumber, w.StartDate, weekStart.Format(DateLayout))}
		}
		if w.EndDate != weekStart.AddDate(0, 0, 6).Format(DateLayout) {
			return &AssemblyError{Reason: fmt.Sprintf("week %d end_date %s misaligned", w.WeekNumber, w.EndDate)}
		}
		for di, d := range w.Days {
			want := weekStart.AddDate(0, 0, di).Format(DateLayout)
			if d.Date != want {
				return &AssemblyError{Reason: fmt.Sprintf("week %d day %d date %s, want %s", w.WeekNumber, di, d.Date, want)}
			}
			if d.DayOfWeek != DayNames[di] {
				return &AssemblyError{Reason: fmt.Sprintf("week %d day %d named %s, want %s", w.WeekNumber, di, d.DayOfWeek, DayNames[di])}
			}
			if !IsWorkoutType(d.WorkoutType) {
				return &AssemblyError{Reason: fmt.Sprintf("week %d day %s has unknown workout_type %s", w.WeekNumber, d.DayOfWeek, d.WorkoutType)}
			}
			if !IsDayStatus(string(d.Status)) {
				return &AssemblyError{Reason: fmt.Sprintf("week %d day %s has invalid status %s", w.WeekNumber, d.DayOfWeek, d.Status)}
			}
		}
	}
	return nil
}

// ParseStored decodes a persisted plan document. Documents from before the
// current schema (the outline era) surface ErrOutdatedFormat so the caller can
// ask the user to regenerate.
func ParseStored(doc []byte) (*DetailedPlan, error) {
	var probe struct {
		PlanVersion int `json:"plan_version"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return nil, fmt.Errorf("unmarshal stored plan: %w", err)
	}
	if probe.PlanVersion < CurrentVersion {
		return nil, ErrOutdatedFormat
	}

	var p DetailedPlan
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal stored plan: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
