package model

import "time"

// Idea statuses controlling timeline mutability
const (
	IdeaStatusDraft     = "draft"
	IdeaStatusSubmitted = "submitted"
	IdeaStatusApproved  = "approved"
	IdeaStatusRejected  = "rejected"
)

// Idea is a startup project owned by an incubator member.
type Idea struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Locked reports whether the idea's timeline can no longer be edited.
// Once submitted for committee review the whole tree is read-only.
func (i *Idea) Locked() bool {
	return i.Status != IdeaStatusDraft
}

// Phase groups tasks under a named, dated container within an idea's timeline.
type Phase struct {
	ID              string     `json:"id"`
	IdeaID          string     `json:"idea_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Priority        int        `json:"priority"`
	EvaluationScore *float64   `json:"evaluation_score,omitempty"`
	Comments        string     `json:"comments,omitempty"`
	Tasks           []Task     `json:"tasks"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Evaluation is a committee review attached to a phase.
type Evaluation struct {
	ID        string    `json:"id"`
	PhaseID   string    `json:"phase_id"`
	Score     float64   `json:"score"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
