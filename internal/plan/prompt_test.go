package plan

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	in := PromptInput{
		RaceName:     "Chicago Marathon",
		RaceDistance: "Marathon",
		RaceDate:     "2026-10-11",
		PRSummary:    "3:32:10",
		Weeks:        16,
		Prefs: Preferences{
			GoalTime:            "3:25:00",
			PreferredLongRunDay: "Sunday",
		},
	}
	got := BuildPrompt(in)

	for _, want := range []string{
		"Chicago Marathon",
		"2026-10-11",
		"3:32:10",
		"3:25:00",
		"exactly 16 weeks",
		"exactly 7 days",
		"long run on Sunday",
		"```json",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	for _, wt := range WorkoutTypes {
		if !strings.Contains(got, wt) {
			t.Errorf("prompt missing workout type %q", wt)
		}
	}
}

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name    string
		prefs   Preferences
		wantErr bool
	}{
		{name: "empty", prefs: Preferences{}},
		{name: "all set and valid", prefs: Preferences{GoalTime: "3:25:00", PreferredRunningDays: 5, PreferredLongRunDay: "Sunday"}},
		{name: "running days lower bound", prefs: Preferences{PreferredRunningDays: 3}},
		{name: "running days upper bound", prefs: Preferences{PreferredRunningDays: 6}},
		{name: "running days too few", prefs: Preferences{PreferredRunningDays: 2}, wantErr: true},
		{name: "running days too many", prefs: Preferences{PreferredRunningDays: 9}, wantErr: true},
		{name: "long run day Saturday", prefs: Preferences{PreferredLongRunDay: "Saturday"}},
		{name: "long run day midweek", prefs: Preferences{PreferredLongRunDay: "Wednesday"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.prefs.Validate()
			if tc.wantErr {
				var invalid *InvalidInputError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidInputError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	got := BuildPrompt(PromptInput{RaceName: "Local 5K", RaceDate: "2026-04-04", Weeks: 4})

	if !strings.Contains(got, "Not available") {
		t.Error("prompt missing PR placeholder")
	}
	if !strings.Contains(got, "long run on Saturday") {
		t.Error("prompt missing default long run day")
	}
	if strings.Contains(got, "Goal finish time") {
		t.Error("prompt includes goal time despite none set")
	}
}
