package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/launchforge/phaseline/internal/model"
)

const dateWire = "2006-01-02"

// ListIdeas returns the caller's ideas
func (c *Client) ListIdeas() ([]model.Idea, error) {
	var ideas []model.Idea
	if err := c.do(http.MethodGet, "/api/v1/ideas", nil, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// CreateIdea registers a new idea in draft state
func (c *Client) CreateIdea(name string) (*model.Idea, error) {
	var idea model.Idea
	err := c.do(http.MethodPost, "/api/v1/ideas", map[string]string{"name": name}, &idea)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// GetIdea fetches a single idea, including its lock status
func (c *Client) GetIdea(ideaID string) (*model.Idea, error) {
	var idea model.Idea
	err := c.do(http.MethodGet, "/api/v1/ideas/"+url.PathEscape(ideaID), nil, &idea)
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

// FetchPhases returns the full phase+task tree for an idea, ordered by
// phase start date. This is the canonical state the TUI re-pulls after
// every persist attempt.
func (c *Client) FetchPhases(ideaID string) ([]model.Phase, error) {
	var phases []model.Phase
	err := c.do(http.MethodGet, "/api/v1/ideas/"+url.PathEscape(ideaID)+"/phases", nil, &phases)
	if err != nil {
		return nil, err
	}
	return phases, nil
}

// PhaseFields are the writable fields of a phase
type PhaseFields struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Priority    int    `json:"priority"`
}

// CreatePhase adds a phase to an idea's timeline
func (c *Client) CreatePhase(ideaID string, fields PhaseFields) (*model.Phase, error) {
	var phase model.Phase
	err := c.do(http.MethodPost, "/api/v1/ideas/"+url.PathEscape(ideaID)+"/phases", fields, &phase)
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

// UpdatePhase rewrites a phase's fields
func (c *Client) UpdatePhase(phaseID string, fields PhaseFields) (*model.Phase, error) {
	var phase model.Phase
	err := c.do(http.MethodPut, "/api/v1/phases/"+url.PathEscape(phaseID), fields, &phase)
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

// DeletePhase removes a phase and its tasks
func (c *Client) DeletePhase(phaseID string) error {
	return c.do(http.MethodDelete, "/api/v1/phases/"+url.PathEscape(phaseID), nil, nil)
}

// TaskFields are the writable fields of a task
type TaskFields struct {
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	ProgressPercentage int    `json:"progress_percentage"`
	Priority           int    `json:"priority"`
	ColorToken         string `json:"color_token,omitempty"`
}

// CreateTask adds a task to a phase
func (c *Client) CreateTask(phaseID string, fields TaskFields) (*model.Task, error) {
	var task model.Task
	err := c.do(http.MethodPost, "/api/v1/phases/"+url.PathEscape(phaseID)+"/tasks", fields, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask rewrites a task's form-editable fields
func (c *Client) UpdateTask(taskID string, fields TaskFields) (*model.Task, error) {
	var task model.Task
	err := c.do(http.MethodPut, "/api/v1/tasks/"+url.PathEscape(taskID), fields, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskDates persists a drag/resize result. Only the two dates
// travel; everything else is untouched.
func (c *Client) UpdateTaskDates(taskID string, start, end time.Time) error {
	return c.do(http.MethodPatch, "/api/v1/tasks/"+url.PathEscape(taskID)+"/dates", map[string]string{
		"start_date": start.Format(dateWire),
		"end_date":   end.Format(dateWire),
	}, nil)
}

// DeleteTask removes a task
func (c *Client) DeleteTask(taskID string) error {
	return c.do(http.MethodDelete, "/api/v1/tasks/"+url.PathEscape(taskID), nil, nil)
}

// SubmitTimeline locks the idea's timeline for committee review
func (c *Client) SubmitTimeline(ideaID string) error {
	return c.do(http.MethodPost, "/api/v1/ideas/"+url.PathEscape(ideaID)+"/submit", nil, nil)
}

// GetPhaseEvaluation returns the committee review for a phase, or nil
// if none has been recorded yet
func (c *Client) GetPhaseEvaluation(ideaID, phaseID string) (*model.Evaluation, error) {
	var eval model.Evaluation
	path := fmt.Sprintf("/api/v1/ideas/%s/phases/%s/evaluation",
		url.PathEscape(ideaID), url.PathEscape(phaseID))
	err := c.do(http.MethodGet, path, nil, &eval)
	if err != nil {
		if err.Error() == "evaluation not found" {
			return nil, nil
		}
		return nil, err
	}
	return &eval, nil
}
