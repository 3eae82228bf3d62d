package plan

import (
	"fmt"
	"strings"
)

// PromptInput carries everything the prompt embeds. RaceName and RaceDate are
// the store's values so the model cannot hallucinate them.
type PromptInput struct {
	RaceName     string
	RaceDistance string
	RaceDate     string
	PRSummary    string
	Weeks        int
	Prefs        Preferences
}

// BuildPrompt renders the generation instruction. Pure; always returns a
// usable prompt string.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	distance := in.RaceDistance
	if distance == "" {
		distance = "Unknown"
	}
	prSummary := in.PRSummary
	if prSummary == "" {
		prSummary = "Not available"
	}

	fmt.Fprintf(&b, "Generate a detailed day-by-day training plan for a runner preparing for the '%s'.\n", in.RaceName)
	b.WriteString("Race Details:\n")
	fmt.Fprintf(&b, "- Distance: %s\n", distance)
	fmt.Fprintf(&b, "- Race Date: %s\n", in.RaceDate)
	fmt.Fprintf(&b, "- Weeks Until Race: %d\n", in.Weeks)
	fmt.Fprintf(&b, "Runner's Personal Record (PR) for %s: %s\n", distance, prSummary)

	b.WriteString("Runner Preferences:\n")
	if in.Prefs.GoalTime != "" {
		fmt.Fprintf(&b, "- Goal finish time: %s\n", in.Prefs.GoalTime)
	}
	if in.Prefs.CurrentWeeklyMileage > 0 {
		fmt.Fprintf(&b, "- Current weekly mileage: %d miles\n", in.Prefs.CurrentWeeklyMileage)
	}
	if in.Prefs.PeakWeeklyMileage > 0 {
		fmt.Fprintf(&b, "- Peak weekly mileage: %d miles\n", in.Prefs.PeakWeeklyMileage)
	}
	if in.Prefs.PreferredRunningDays > 0 {
		fmt.Fprintf(&b, "- Preferred running days per week: %d\n", in.Prefs.PreferredRunningDays)
	}
	longRunDay := in.Prefs.PreferredLongRunDay
	if longRunDay == "" {
		longRunDay = "Saturday"
	}
	fmt.Fprintf(&b, "- Preferred long run day: %s\n", longRunDay)

	b.WriteString("\nInstructions:\n")
	fmt.Fprintf(&b, "- Produce exactly %d weeks, numbered 1 through %d.\n", in.Weeks, in.Weeks)
	b.WriteString("- Every week must contain exactly 7 days, in order Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday.\n")
	b.WriteString("- Each day must include these fields: \"day_of_week\", \"workout_type\", \"description\". It may also include \"distance\", \"duration\", \"intensity\", and \"notes\" (a list of strings).\n")
	fmt.Fprintf(&b, "- \"workout_type\" must be exactly one of: %s.\n", strings.Join(WorkoutTypes, ", "))
	b.WriteString("- Use the runner's PR and goal time to choose realistic paces and volume.\n")
	b.WriteString("- Include at least 1-2 rest days per week.\n")
	fmt.Fprintf(&b, "- Schedule the long run on %s each week.\n", longRunDay)
	b.WriteString("- Include a taper of 1-3 weeks before the race, appropriate for the distance.\n")
	b.WriteString("- Keep descriptions concise and actionable.\n")

	b.WriteString("\nStructure the output as a single JSON object in the following shape:\n\n")
	b.WriteString("```json\n")
	fmt.Fprintf(&b, `{
  "race_name": %q,
  "race_distance": %q,
  "total_weeks": %d,
  "weeks": [
    {
      "week_number": 1,
      "focus": "Base building",
      "estimated_weekly_mileage": "20-25 miles",
      "days": [
        {"day_of_week": "Monday", "workout_type": "Easy Run", "description": "4 miles easy", "distance": "4 miles", "intensity": "easy"},
        {"day_of_week": "Tuesday", "workout_type": "Rest", "description": "Rest day"}
      ]
    }
  ],
  "overall_notes": "Optional notes such as 'Adjust based on feel.'"
}`, in.RaceName, distance, in.Weeks)
	b.WriteString("\n```\n\nJSON Output:\n")

	return b.String()
}
