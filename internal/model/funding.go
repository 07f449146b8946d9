package model

import "time"

// FundingStatus tags a task or phase with the state of its funding ask.
type FundingStatus string

const (
	FundingNone      FundingStatus = ""
	FundingRequested FundingStatus = "requested"
	FundingApproved  FundingStatus = "approved"
	FundingRejected  FundingStatus = "rejected"
	FundingDisbursed FundingStatus = "disbursed"
)

// Valid reports whether s is one of the known funding states.
func (s FundingStatus) Valid() bool {
	switch s {
	case FundingNone, FundingRequested, FundingApproved, FundingRejected, FundingDisbursed:
		return true
	}
	return false
}

// FundingRequest records a funding ask against a phase or task.
// The client keeps an optimistic copy keyed by (ItemType, ItemID) until
// the next full refetch supersedes it with server data.
type FundingRequest struct {
	ID            string        `json:"id,omitempty"`
	IdeaID        string        `json:"idea_id"`
	ItemType      string        `json:"item_type"` // "phase" or "task"
	ItemID        string        `json:"item_id"`
	Amount        float64       `json:"amount"`
	Justification string        `json:"justification,omitempty"`
	Status        FundingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
}
