package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CurrentVersion tags documents produced by this package. Version 1 was the
// old outline format (week summaries only, no days) and is read-detected but
// never migrated.
const CurrentVersion = 2

// DateLayout is the calendar-date wire format used throughout plan documents.
const DateLayout = "2006-01-02"

type DayStatus string

const (
	DayStatusPending   DayStatus = "pending"
	DayStatusCompleted DayStatus = "completed"
	DayStatusSkipped   DayStatus = "skipped"
)

func IsDayStatus(s string) bool {
	switch DayStatus(s) {
	case DayStatusPending, DayStatusCompleted, DayStatusSkipped:
		return true
	}
	return false
}

// WorkoutTypes is the closed enum a generated day must use.
var WorkoutTypes = []string{
	"Easy Run", "Tempo Run", "Intervals", "Speed Work", "Long Run", "Rest",
	"Cross-Training", "Strength", "Race Pace", "Warm-up", "Cool-down", "Other",
}

func IsWorkoutType(s string) bool {
	for _, v := range WorkoutTypes {
		if v == s {
			return true
		}
	}
	return false
}

// DayNames in canonical week order: index 0 is Monday, index 6 is Sunday.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayIndex returns the canonical position of a day name, or -1.
func DayIndex(name string) int {
	for i, d := range DayNames {
		if d == name {
			return i
		}
	}
	return -1
}

type Day struct {
	Date          string    `json:"date"`
	DayOfWeek     string    `json:"day_of_week"`
	WorkoutType   string    `json:"workout_type"`
	Description   string    `json:"description"`
	Distance      string    `json:"distance,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	Intensity     string    `json:"intensity,omitempty"`
	Notes         []string  `json:"notes,omitempty"`
	Status        DayStatus `json:"status"`
	GoogleEventID string    `json:"google_event_id,omitempty"`
}

type Week struct {
	WeekNumber       int    `json:"week_number"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Focus            string `json:"focus,omitempty"`
	EstimatedMileage string `json:"estimated_weekly_mileage,omitempty"`
	Days             []Day  `json:"days"`
}

// DetailedPlan is the canonical plan document persisted per (user, race).
type DetailedPlan struct {
	PlanVersion            int               `json:"plan_version"`
	UserID                 uuid.UUID         `json:"user_id"`
	RaceID                 uuid.UUID         `json:"race_id"`
	RaceName               string            `json:"race_name"`
	RaceDistance           string            `json:"race_distance"`
	RaceDate               string            `json:"race_date"`
	GoalTime               string            `json:"goal_time,omitempty"`
	PlanStartDate          string            `json:"plan_start_date"`
	TotalWeeks             int               `json:"total_weeks"`
	Weeks                  []Week            `json:"weeks"`
	OverallNotes           string            `json:"overall_notes,omitempty"`
	PersonalizationDetails map[string]string `json:"personalization_details,omitempty"`
	GeneratedAt            time.Time         `json:"generated_at"`
}

// FindDay returns the day with the given calendar date, or nil.
func (p *DetailedPlan) FindDay(date string) *Day {
	for wi := range p.Weeks {
		for di := range p.Weeks[wi].Days {
			if p.Weeks[wi].Days[di].Date == date {
				return &p.Weeks[wi].Days[di]
			}
		}
	}
	return nil
}

// Preferences are the per-request generation inputs. Zero values mean unset.
type Preferences struct {
	GoalTime             string
	CurrentWeeklyMileage int
	PeakWeeklyMileage    int
	PreferredRunningDays int
	PreferredLongRunDay  string
}

// Validate rejects preference values outside the accepted sets. Zero values
// pass, they mean unset.
func (p Preferences) Validate() error {
	if p.PreferredRunningDays != 0 && (p.PreferredRunningDays < 3 || p.PreferredRunningDays > 6) {
		return &InvalidInputError{Reason: fmt.Sprintf("preferred_running_days must be between 3 and 6, got %d", p.PreferredRunningDays)}
	}
	if p.PreferredLongRunDay != "" && p.PreferredLongRunDay != "Saturday" && p.PreferredLongRunDay != "Sunday" {
		return &InvalidInputError{Reason: "preferred_long_run_day must be Saturday or Sunday, got " + p.PreferredLongRunDay}
	}
	return nil
}

// RawDay/RawWeek/RawPlan hold the repaired-but-not-yet-dated model output.
type RawDay struct {
	DayOfWeek   string
	WorkoutType string
	Description string
	Distance    string
	Duration    string
	Intensity   string
	Notes       []string
}

type RawWeek struct {
	WeekNumber       int
	Focus            string
	EstimatedMileage string
	Days             []RawDay
}

type RawPlan struct {
	Weeks        []RawWeek
	OverallNotes string
}
