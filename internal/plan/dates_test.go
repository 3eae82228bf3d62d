package plan

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateWindow(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		raceDate  time.Time
		wantWeeks int
		wantStart time.Time
		wantErr   bool
	}{
		{
			name:      "race ten weeks out from a monday",
			today:     date(2026, time.March, 2),
			raceDate:  date(2026, time.May, 11),
			wantWeeks: 10,
			wantStart: date(2026, time.March, 2),
		},
		{
			name:      "race on a sunday",
			today:     date(2026, time.March, 2),
			raceDate:  date(2026, time.April, 26),
			wantWeeks: 7,
			wantStart: date(2026, time.March, 2),
		},
		{
			name:      "midweek today still starts on monday",
			today:     date(2026, time.March, 5),
			raceDate:  date(2026, time.May, 11),
			wantWeeks: 10,
			wantStart: date(2026, time.March, 2),
		},
		{
			name:     "race two days away",
			today:    date(2026, time.March, 2),
			raceDate: date(2026, time.March, 4),
			wantErr:  true,
		},
		{
			name:     "race in the past",
			today:    date(2026, time.March, 2),
			raceDate: date(2026, time.February, 1),
			wantErr:  true,
		},
		{
			name:     "race today",
			today:    date(2026, time.March, 2),
			raceDate: date(2026, time.March, 2),
			wantErr:  true,
		},
		{
			name:     "race beyond the cap",
			today:    date(2026, time.March, 2),
			raceDate: date(2027, time.March, 2),
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			win, err := CalculateWindow(tc.raceDate, tc.today)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got window %+v", win)
				}
				var invalid *InvalidInputError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidInputError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if win.Weeks != tc.wantWeeks {
				t.Errorf("weeks = %d, want %d", win.Weeks, tc.wantWeeks)
			}
			if !win.StartDate.Equal(tc.wantStart) {
				t.Errorf("start = %s, want %s", win.StartDate.Format(DateLayout), tc.wantStart.Format(DateLayout))
			}
		})
	}
}

func TestCalculateWindowStartIsAlwaysMonday(t *testing.T) {
	today := date(2026, time.March, 2)
	for offset := 7; offset <= 140; offset++ {
		raceDate := today.AddDate(0, 0, offset)
		win, err := CalculateWindow(raceDate, today)
		if err != nil {
			continue
		}
		if win.StartDate.Weekday() != time.Monday {
			t.Fatalf("race %s: start %s is a %s", raceDate.Format(DateLayout), win.StartDate.Format(DateLayout), win.StartDate.Weekday())
		}
		end := win.StartDate.AddDate(0, 0, 7*win.Weeks)
		if !raceDate.Before(end.AddDate(0, 0, 7)) || raceDate.Before(end) {
			t.Fatalf("race %s falls outside the week after plan end %s", raceDate.Format(DateLayout), end.Format(DateLayout))
		}
	}
}
