package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ourpr/ourpr-backend/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func weekJSON(n int, days []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"week_number": %d, "focus": "Week %d", "days": [`, n, n)
	for i, d := range days {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"day_of_week": %q, "workout_type": "Easy Run", "description": "4 miles"}`, d)
	}
	b.WriteString("]}")
	return b.String()
}

func fullWeekJSON(n int) string {
	return weekJSON(n, DayNames[:])
}

func planJSON(weeks int) string {
	parts := make([]string, weeks)
	for i := range parts {
		parts[i] = fullWeekJSON(i + 1)
	}
	return fmt.Sprintf(`{"total_weeks": %d, "weeks": [%s]}`, weeks, strings.Join(parts, ","))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "fenced json block",
			raw:  "Here is your plan:\n```json\n{\"weeks\": []}\n```\nGood luck!",
			want: `{"weeks": []}`,
		},
		{
			name: "plain fence",
			raw:  "```\n{\"weeks\": []}\n```",
			want: `{"weeks": []}`,
		},
		{
			name: "bare object with chatter",
			raw:  "Sure! {\"weeks\": []} Let me know if you need changes.",
			want: `{"weeks": []}`,
		},
		{
			name:    "no json at all",
			raw:     "I cannot generate a plan right now.",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.raw)
			if tc.wantErr {
				var malformed *MalformedResponseError
				if !errors.As(err, &malformed) {
					t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRepairResponseCleanInput(t *testing.T) {
	raw, err := RepairResponse(planJSON(3), 3, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(raw.Weeks))
	}
	for i, w := range raw.Weeks {
		if w.WeekNumber != i+1 {
			t.Errorf("week %d numbered %d", i, w.WeekNumber)
		}
		for di, d := range w.Days {
			if d.DayOfWeek != DayNames[di] {
				t.Errorf("week %d day %d is %s, want %s", i+1, di, d.DayOfWeek, DayNames[di])
			}
		}
	}
}

func TestRepairResponseInvalidDayName(t *testing.T) {
	days := append([]string(nil), DayNames[:]...)
	days[3] = "Funday"
	doc := fmt.Sprintf(`{"weeks": [%s]}`, weekJSON(1, days))

	raw, err := RepairResponse(doc, 1, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := raw.Weeks[0].Days[3].DayOfWeek; got != "Thursday" {
		t.Errorf("repaired day = %q, want Thursday", got)
	}
}

func TestRepairResponseInvalidWorkoutType(t *testing.T) {
	doc := `{"weeks": [{"week_number": 1, "days": [
		{"day_of_week": "Monday", "workout_type": "5 mile tempo", "description": ""},
		{"day_of_week": "Tuesday", "workout_type": "Rest", "description": "Rest"},
		{"day_of_week": "Wednesday", "workout_type": "Easy Run", "description": "4 miles"},
		{"day_of_week": "Thursday", "workout_type": "Rest", "description": "Rest"},
		{"day_of_week": "Friday", "workout_type": "Easy Run", "description": "3 miles"},
		{"day_of_week": "Saturday", "workout_type": "Long Run", "description": "8 miles"},
		{"day_of_week": "Sunday", "workout_type": "Rest", "description": "Rest"}
	]}]}`

	raw, err := RepairResponse(doc, 1, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day := raw.Weeks[0].Days[0]
	if day.WorkoutType != "Other" {
		t.Errorf("workout_type = %q, want Other", day.WorkoutType)
	}
	if day.Description != "Other" {
		t.Errorf("description = %q, want Other", day.Description)
	}
}

func TestRepairResponseReordersDays(t *testing.T) {
	shuffled := []string{"Sunday", "Monday", "Wednesday", "Tuesday", "Friday", "Thursday", "Saturday"}
	doc := fmt.Sprintf(`{"weeks": [%s]}`, weekJSON(1, shuffled))

	raw, err := RepairResponse(doc, 1, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, d := range raw.Weeks[0].Days {
		got = append(got, d.DayOfWeek)
	}
	if !reflect.DeepEqual(got, DayNames[:]) {
		t.Errorf("day order = %v, want %v", got, DayNames)
	}
}

func TestRepairResponseWrongDayCount(t *testing.T) {
	doc := fmt.Sprintf(`{"weeks": [%s]}`, weekJSON(1, DayNames[:6]))
	_, err := RepairResponse(doc, 1, testLogger())
	var violation *SchemaViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolationError, got %T: %v", err, err)
	}
	if violation.WeekNumber != 1 {
		t.Errorf("week = %d, want 1", violation.WeekNumber)
	}
}

func TestRepairResponseMissingWeeks(t *testing.T) {
	_, err := RepairResponse(planJSON(9), 10, testLogger())
	var incomplete *IncompleteGenerationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteGenerationError, got %T: %v", err, err)
	}
	if incomplete.MissingWeek != 10 {
		t.Errorf("missing week = %d, want 10", incomplete.MissingWeek)
	}
}

func TestRepairResponseExtraWeeksTruncated(t *testing.T) {
	raw, err := RepairResponse(planJSON(12), 10, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw.Weeks) != 10 {
		t.Errorf("got %d weeks, want 10", len(raw.Weeks))
	}
}

func TestRepairResponseNotJSON(t *testing.T) {
	_, err := RepairResponse("{this is not json}", 1, testLogger())
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestRepairResponseIdempotent(t *testing.T) {
	days := append([]string(nil), DayNames[:]...)
	days[2] = "Someday"
	doc := fmt.Sprintf(`{"weeks": [%s, %s]}`, weekJSON(1, days), fullWeekJSON(2))

	first, err := RepairResponse(doc, 2, testLogger())
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	reencoded := rawPlanToJSON(t, first)
	second, err := RepairResponse(reencoded, 2, testLogger())
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repair not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func rawPlanToJSON(t *testing.T, p *RawPlan) string {
	t.Helper()
	doc := map[string]any{"overall_notes": p.OverallNotes}
	var weeks []map[string]any
	for _, w := range p.Weeks {
		var days []map[string]any
		for _, d := range w.Days {
			days = append(days, map[string]any{
				"day_of_week":  d.DayOfWeek,
				"workout_type": d.WorkoutType,
				"description":  d.Description,
			})
		}
		weeks = append(weeks, map[string]any{
			"week_number": w.WeekNumber,
			"focus":       w.Focus,
			"days":        days,
		})
	}
	doc["weeks"] = weeks
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}
