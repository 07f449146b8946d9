package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/launchforge/phaseline/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestFundingRequestRoundTrip(t *testing.T) {
	c := openTestCache(t)

	req := model.FundingRequest{
		IdeaID:        "idea-1",
		ItemType:      "task",
		ItemID:        "t1",
		Amount:        2500,
		Justification: "prototype parts",
		Status:        model.FundingRequested,
	}
	if err := c.SaveFundingRequest(req); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := c.FundingRequest("task", "t1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected cached request")
	}
	if got.Amount != 2500 || got.Status != model.FundingRequested {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Resubmitting replaces the record, not duplicates it.
	req.Amount = 3000
	if err := c.SaveFundingRequest(req); err != nil {
		t.Fatalf("resave failed: %v", err)
	}
	got, _ = c.FundingRequest("task", "t1")
	if got.Amount != 3000 {
		t.Fatalf("expected replaced amount, got %v", got.Amount)
	}

	if err := c.ClearFundingRequests("idea-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	got, _ = c.FundingRequest("task", "t1")
	if got != nil {
		t.Fatalf("expected record cleared, got %+v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := openTestCache(t)

	phases, at, err := c.Snapshot("idea-1")
	if err != nil || phases != nil || !at.IsZero() {
		t.Fatalf("expected empty snapshot, got %v %v %v", phases, at, err)
	}

	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	in := []model.Phase{
		{
			ID:   "p1",
			Name: "Validation",
			Tasks: []model.Task{
				{ID: "t1", Name: "Interviews", StartDate: start, EndDate: start.AddDate(0, 0, 4)},
			},
		},
	}
	if err := c.SaveSnapshot("idea-1", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	phases, at, err = c.Snapshot("idea-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if at.IsZero() {
		t.Fatalf("expected fetch time to be recorded")
	}
	if len(phases) != 1 || len(phases[0].Tasks) != 1 {
		t.Fatalf("unexpected tree: %+v", phases)
	}
	if !phases[0].Tasks[0].EndDate.Equal(start.AddDate(0, 0, 4)) {
		t.Fatalf("dates did not survive the round trip: %+v", phases[0].Tasks[0])
	}
}
