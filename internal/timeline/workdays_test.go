package timeline

import (
	"testing"
	"time"
)

func TestWorkingDayDifference(t *testing.T) {
	mon := date(2024, time.June, 10)
	fri := date(2024, time.June, 14)
	sat := date(2024, time.June, 15)
	sun := date(2024, time.June, 16)

	cases := []struct {
		name  string
		a, b  time.Time
		want  int
	}{
		{"mon to fri same week", mon, fri, 5},
		{"sat to sun", sat, sun, 0},
		{"single weekday", mon, mon, 1},
		{"single weekend day", sat, sat, 0},
		{"fri across weekend to mon", fri, date(2024, time.June, 17), 2},
		{"two full weeks", mon, date(2024, time.June, 23), 10},
	}
	for _, tc := range cases {
		if got := WorkingDayDifference(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestWorkingDayDifferenceSymmetry(t *testing.T) {
	base := date(2024, time.June, 1)
	for i := 0; i < 40; i++ {
		a := base.AddDate(0, 0, i)
		for j := 0; j < 40; j += 7 {
			b := base.AddDate(0, 0, j)
			if WorkingDayDifference(a, b) != WorkingDayDifference(b, a) {
				t.Fatalf("asymmetry for %s / %s", a, b)
			}
		}
	}
}

func TestParseDateSafe(t *testing.T) {
	got := ParseDateSafe("2024-06-15")
	if !got.Equal(date(2024, time.June, 15)) {
		t.Fatalf("expected 2024-06-15, got %s", got)
	}

	// Time-of-day is always stripped.
	got = ParseDateSafe("2024-06-15T13:45:00")
	if !got.Equal(date(2024, time.June, 15)) {
		t.Fatalf("expected midnight normalization, got %s", got)
	}

	// Garbage falls back to today.
	today := Normalize(time.Now())
	if got := ParseDateSafe("not-a-date"); !got.Equal(today) {
		t.Fatalf("expected today fallback, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := date(2024, time.June, 1)
	if got := DaysBetween(a, date(2024, time.June, 10)); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := DaysBetween(date(2024, time.June, 10), a); got != -9 {
		t.Fatalf("expected -9, got %d", got)
	}
	// Sub-day offsets must not shift the count.
	noon := time.Date(2024, time.June, 5, 12, 30, 0, 0, time.Local)
	if got := DaysBetween(a, noon); got != 4 {
		t.Fatalf("expected 4 with time-of-day stripped, got %d", got)
	}
}
