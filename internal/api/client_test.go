package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchforge/phaseline/internal/model"
)

func TestFetchPhasesDecodesTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ideas/idea-1/phases" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}
		json.NewEncoder(w).Encode([]model.Phase{
			{
				ID:   "p1",
				Name: "Validation",
				Tasks: []model.Task{
					{ID: "t1", Name: "Interviews"},
					{ID: "t2", Name: "Landing page"},
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClientAt(srv.URL)
	c.session.Token = "tok"

	phases, err := c.FetchPhases("idea-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(phases) != 1 || len(phases[0].Tasks) != 2 {
		t.Fatalf("unexpected tree shape: %+v", phases)
	}
	if phases[0].Tasks[1].Name != "Landing page" {
		t.Fatalf("unexpected task: %+v", phases[0].Tasks[1])
	}
}

func TestUpdateTaskDatesWireFormat(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/tasks/t1/dates" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClientAt(srv.URL)
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local)
	if err := c.UpdateTaskDates("t1", start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["start_date"] != "2024-06-10" || got["end_date"] != "2024-06-12" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestBackendErrorPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "timeline is locked"})
	}))
	defer srv.Close()

	c := NewClientAt(srv.URL)
	err := c.SubmitTimeline("idea-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "timeline is locked" {
		t.Fatalf("expected server message to pass through, got %q", err.Error())
	}
}

func TestNonJSONErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClientAt(srv.URL)
	_, err := c.ListIdeas()
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetPhaseEvaluationMissingIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "evaluation not found"})
	}))
	defer srv.Close()

	c := NewClientAt(srv.URL)
	eval, err := c.GetPhaseEvaluation("idea-1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != nil {
		t.Fatalf("expected nil evaluation, got %+v", eval)
	}
}
