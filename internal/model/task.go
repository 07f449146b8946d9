package model

import "time"

// Priority levels for phases and tasks
const (
	PriorityCritical = 1 // Red - Critical path
	PriorityHigh     = 2 // Orange - High
	PriorityMedium   = 3 // Yellow - Medium (default)
	PriorityLow      = 4 // Blue - Low
	PriorityOptional = 5 // Gray - Nice to have
)

// Task is a schedulable unit of work inside a phase.
type Task struct {
	ID                 string         `json:"id"`
	PhaseID            string         `json:"phase_id"`
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	ProgressPercentage int            `json:"progress_percentage"`
	Priority           int            `json:"priority"`
	ColorToken         string         `json:"color_token,omitempty"`
	FundingStatus      FundingStatus  `json:"funding_status,omitempty"`
	RequestedAmount    float64        `json:"requested_amount,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// NewTask creates a task with defaults. Dates default to a single-day
// span starting today.
func NewTask(id, phaseID, name string) Task {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return Task{
		ID:        id,
		PhaseID:   phaseID,
		Name:      name,
		StartDate: today,
		EndDate:   today,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DurationDays returns the inclusive calendar-day span of the task.
func (t *Task) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}
