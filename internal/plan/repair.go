package plan

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ourpr/ourpr-backend/internal/logger"
)

const snippetLimit = 200

// ExtractJSON pulls the JSON payload out of raw model output. It prefers a
// fenced ```json block, then any fenced block, then falls back to the first
// '{' through the last '}'.
func ExtractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if idx := strings.Index(s, "```json"); idx >= 0 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
		s = strings.TrimSpace(rest)
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end]), nil
		}
		s = strings.TrimSpace(rest)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", &MalformedResponseError{Snippet: snippet(raw)}
	}
	return s[start : end+1], nil
}

// RepairResponse turns raw model output into a RawPlan with the hard
// invariants restored. Per-day defects (bad day names, unknown workout types,
// empty descriptions) are repaired in place and logged; structural defects
// that repair cannot fix return typed errors. Running the repair over already
// clean input changes nothing.
func RepairResponse(raw string, weeks int, log *logger.Logger) (*RawPlan, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, &MalformedResponseError{Snippet: snippet(payload)}
	}

	rawWeeks, ok := doc["weeks"].([]any)
	if !ok {
		return nil, &SchemaViolationError{WeekNumber: 0, Reason: "missing weeks array"}
	}

	out := &RawPlan{OverallNotes: stringFromAny(doc["overall_notes"])}

	for i, rw := range rawWeeks {
		wm, ok := rw.(map[string]any)
		if !ok {
			return nil, &SchemaViolationError{WeekNumber: i + 1, Reason: "week is not an object"}
		}

		week := RawWeek{
			WeekNumber:       intFromAny(wm["week_number"], i+1),
			Focus:            stringFromAny(wm["focus"]),
			EstimatedMileage: stringFromAny(wm["estimated_weekly_mileage"]),
		}
		if week.Focus == "" {
			week.Focus = stringFromAny(wm["summary"])
		}

		rawDays, _ := wm["days"].([]any)
		for di, rd := range rawDays {
			dm, ok := rd.(map[string]any)
			if !ok {
				continue
			}
			day := RawDay{
				DayOfWeek:   stringFromAny(dm["day_of_week"]),
				WorkoutType: stringFromAny(dm["workout_type"]),
				Description: stringFromAny(dm["description"]),
				Distance:    stringFromAny(dm["distance"]),
				Duration:    stringFromAny(dm["duration"]),
				Intensity:   stringFromAny(dm["intensity"]),
				Notes:       toStringSlice(dm["notes"]),
			}

			if DayIndex(day.DayOfWeek) < 0 {
				repaired := DayNames[di%7]
				log.Warn("Repairing invalid day_of_week", "week", week.WeekNumber, "got", day.DayOfWeek, "using", repaired)
				day.DayOfWeek = repaired
			}
			if !IsWorkoutType(day.WorkoutType) {
				log.Warn("Repairing invalid workout_type", "week", week.WeekNumber, "day", day.DayOfWeek, "got", day.WorkoutType)
				day.WorkoutType = "Other"
			}
			if strings.TrimSpace(day.Description) == "" {
				day.Description = day.WorkoutType
			}

			week.Days = append(week.Days, day)
		}

		if len(week.Days) != 7 {
			return nil, &SchemaViolationError{
				WeekNumber: week.WeekNumber,
				Reason:     fmt.Sprintf("expected 7 days, got %d", len(week.Days)),
			}
		}

		sort.SliceStable(week.Days, func(a, b int) bool {
			return DayIndex(week.Days[a].DayOfWeek) < DayIndex(week.Days[b].DayOfWeek)
		})

		out.Weeks = append(out.Weeks, week)
	}

	if len(out.Weeks) > weeks {
		log.Warn("Model returned extra weeks, truncating", "got", len(out.Weeks), "want", weeks)
		out.Weeks = out.Weeks[:weeks]
	}
	if len(out.Weeks) < weeks {
		return nil, &IncompleteGenerationError{MissingWeek: len(out.Weeks) + 1}
	}

	for i := range out.Weeks {
		out.Weeks[i].WeekNumber = i + 1
	}

	return out, nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > snippetLimit {
		return s[:snippetLimit] + "..."
	}
	return s
}

func stringFromAny(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int(t)) {
			return fmt.Sprintf("%d", int(t))
		}
		return fmt.Sprintf("%g", t)
	}
	return ""
}

func intFromAny(v any, fallback int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		var n int
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%d", &n); err == nil {
			return n
		}
	}
	return fallback
}

func toStringSlice(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s := stringFromAny(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
	}
	return nil
}
