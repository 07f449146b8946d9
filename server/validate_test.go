package server

import "testing"

func TestParseDateRange(t *testing.T) {
	s, e, err := parseDateRange("2024-06-10", "2024-06-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.After(e) {
		t.Fatalf("parsed range inverted")
	}

	// Same-day spans are valid.
	if _, _, err := parseDateRange("2024-06-10", "2024-06-10"); err != nil {
		t.Fatalf("single-day range rejected: %v", err)
	}

	if _, _, err := parseDateRange("2024-06-12", "2024-06-10"); err != errInvertedDates {
		t.Fatalf("expected inverted-dates error, got %v", err)
	}
	if _, _, err := parseDateRange("12/06/2024", "2024-06-13"); err != errBadDate {
		t.Fatalf("expected bad-date error, got %v", err)
	}
	if _, _, err := parseDateRange("2024-06-10", ""); err != errBadDate {
		t.Fatalf("expected bad-date error for empty end, got %v", err)
	}
}

func TestFieldValidators(t *testing.T) {
	for _, p := range []int{1, 3, 5} {
		if !validPriority(p) {
			t.Fatalf("priority %d should be valid", p)
		}
	}
	for _, p := range []int{0, 6, -1} {
		if validPriority(p) {
			t.Fatalf("priority %d should be invalid", p)
		}
	}
	if !validProgress(0) || !validProgress(100) {
		t.Fatalf("progress bounds should be valid")
	}
	if validProgress(-1) || validProgress(101) {
		t.Fatalf("out-of-range progress should be invalid")
	}
}
