package timeline

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestGenerateDaysMonth(t *testing.T) {
	cases := []struct {
		ref  time.Time
		want int
	}{
		{date(2024, time.June, 15), 30},
		{date(2024, time.February, 1), 29}, // leap year
		{date(2023, time.February, 28), 28},
		{date(2024, time.December, 31), 31},
	}
	for _, tc := range cases {
		days := generateDaysAt(tc.ref, ViewMonth, date(2020, time.January, 1))
		if len(days) != tc.want {
			t.Fatalf("month of %s: expected %d cells, got %d", tc.ref, tc.want, len(days))
		}
		for i, d := range days {
			if d.DayOfMonth != i+1 {
				t.Fatalf("cell %d: expected day %d, got %d", i, i+1, d.DayOfMonth)
			}
			if i > 0 && DaysBetween(days[i-1].Date, d.Date) != 1 {
				t.Fatalf("cells %d and %d are not consecutive", i-1, i)
			}
		}
	}
}

func TestGenerateDaysWeek(t *testing.T) {
	// Any reference day of the week must produce Sunday..Saturday.
	for offset := 0; offset < 7; offset++ {
		ref := date(2024, time.June, 9).AddDate(0, 0, offset) // Sun 9th onward
		days := generateDaysAt(ref, ViewWeek, ref)
		if len(days) != 7 {
			t.Fatalf("expected 7 cells, got %d", len(days))
		}
		if days[0].Date.Weekday() != time.Sunday {
			t.Fatalf("ref %s: first cell is %s, expected Sunday", ref, days[0].Date.Weekday())
		}
		if days[6].Date.Weekday() != time.Saturday {
			t.Fatalf("ref %s: last cell is %s, expected Saturday", ref, days[6].Date.Weekday())
		}
	}
}

func TestGenerateDaysDay(t *testing.T) {
	ref := date(2024, time.June, 15)
	days := generateDaysAt(ref, ViewDay, ref)
	if len(days) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(days))
	}
	if !days[0].Date.Equal(ref) {
		t.Fatalf("expected cell date %s, got %s", ref, days[0].Date)
	}
}

func TestTodayFlagExclusive(t *testing.T) {
	now := date(2024, time.June, 15)
	days := generateDaysAt(now, ViewMonth, now)

	todayCount := 0
	for _, d := range days {
		if d.Today {
			todayCount++
			if d.DayOfMonth != 15 {
				t.Fatalf("today flag on day %d, expected 15", d.DayOfMonth)
			}
		}
	}
	if todayCount != 1 {
		t.Fatalf("expected exactly one today cell, got %d", todayCount)
	}

	// Clock in a different month: no cell is today.
	days = generateDaysAt(now, ViewMonth, date(2024, time.July, 1))
	for _, d := range days {
		if d.Today {
			t.Fatalf("unexpected today flag on %s", d.Date)
		}
	}
}

func TestWeekendFlags(t *testing.T) {
	days := generateDaysAt(date(2024, time.June, 15), ViewMonth, date(2024, time.June, 15))
	for _, d := range days {
		want := d.Date.Weekday() == time.Saturday || d.Date.Weekday() == time.Sunday
		if d.Weekend != want {
			t.Fatalf("%s: weekend=%v, expected %v", d.Date, d.Weekend, want)
		}
	}
	// 2024-06-15 is a Saturday.
	if !days[14].Weekend {
		t.Fatalf("expected 2024-06-15 to be flagged weekend")
	}
}

func TestViewModeRoundTrip(t *testing.T) {
	for _, mode := range []ViewMode{ViewDay, ViewWeek, ViewMonth} {
		if got := ParseViewMode(mode.String()); got != mode {
			t.Fatalf("round trip of %s gave %s", mode, got)
		}
	}
	if ParseViewMode("bogus") != ViewMonth {
		t.Fatalf("expected month fallback for unknown mode")
	}
	if ViewDay.Next() != ViewWeek || ViewWeek.Next() != ViewMonth || ViewMonth.Next() != ViewDay {
		t.Fatalf("view mode cycle broken")
	}
}
