package plan

import (
	"fmt"
	"time"
)

// MaxPlanWeeks caps how far out a plan may start.
const MaxPlanWeeks = 20

// Window is the computed calendar frame for a plan: the Monday it starts on
// and how many full weeks it runs.
type Window struct {
	StartDate time.Time
	Weeks     int
}

// CalculateWindow derives the plan window from the race date and today.
// StartDate is always a Monday, and StartDate + 7*Weeks days is the Monday of
// race week.
func CalculateWindow(raceDate, today time.Time) (Window, error) {
	raceDate = dateOnly(raceDate)
	today = dateOnly(today)

	if !raceDate.After(today) {
		return Window{}, &InvalidInputError{Reason: "race date is in the past, cannot generate plan"}
	}

	sundayBeforeRace := previousSundayOrSame(raceDate.AddDate(0, 0, -1))
	mondayThisWeek := mondayOf(today)

	days := int(sundayBeforeRace.Sub(mondayThisWeek).Hours() / 24)
	weeks := floorDiv(days, 7) + 1

	if weeks < 1 {
		return Window{}, &InvalidInputError{Reason: "race is less than a week away, cannot generate plan"}
	}
	if weeks > MaxPlanWeeks {
		return Window{}, &InvalidInputError{Reason: fmt.Sprintf("race is too far out: plans are capped at %d weeks", MaxPlanWeeks)}
	}

	start := mondayOf(raceDate).AddDate(0, 0, -7*weeks)
	return Window{StartDate: start, Weeks: weeks}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// previousSundayOrSame returns t when t is a Sunday, else the Sunday before it.
func previousSundayOrSame(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// floorDiv divides rounding toward negative infinity; Go's / truncates toward
// zero, which is wrong for the races-in-the-past-week case.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
