package tui

import (
	"time"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/model"
)

// Backend is the slice of the API client the editor needs. The TUI
// never talks to the network directly; everything goes through here so
// the persist/re-fetch cycle is testable.
type Backend interface {
	GetIdea(ideaID string) (*model.Idea, error)
	FetchPhases(ideaID string) ([]model.Phase, error)
	CreatePhase(ideaID string, fields api.PhaseFields) (*model.Phase, error)
	DeletePhase(phaseID string) error
	CreateTask(phaseID string, fields api.TaskFields) (*model.Task, error)
	UpdateTask(taskID string, fields api.TaskFields) (*model.Task, error)
	UpdateTaskDates(taskID string, start, end time.Time) error
	DeleteTask(taskID string) error
	SubmitTimeline(ideaID string) error
	SubmitFundingRequest(req model.FundingRequest) (*model.FundingRequest, error)
}

var _ Backend = (*api.Client)(nil)
