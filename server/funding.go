package server

import (
	"database/sql"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/launchforge/phaseline/internal/model"
)

// handleCreateFundingRequest files a funding ask against a phase or task
func (s *Server) handleCreateFundingRequest(c echo.Context) error {
	var req model.FundingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	idea := s.ownedIdea(c, req.IdeaID)
	if idea == nil {
		return nil
	}

	if req.ItemType != "phase" && req.ItemType != "task" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item_type must be phase or task"})
	}
	if req.ItemID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item_id required"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "amount must be positive"})
	}

	var created model.FundingRequest
	var status string
	err := s.db.QueryRow(`
		INSERT INTO funding_requests (id, idea_id, item_type, item_id, amount, justification)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, idea_id, item_type, item_id, amount, justification, status, created_at`,
		uuid.NewString(), req.IdeaID, req.ItemType, req.ItemID, req.Amount, req.Justification,
	).Scan(&created.ID, &created.IdeaID, &created.ItemType, &created.ItemID,
		&created.Amount, &created.Justification, &status, &created.CreatedAt)

	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	created.Status = model.FundingStatus(status)
	return c.JSON(http.StatusOK, created)
}

// handleListFundingRequests returns the funding requests for an idea
func (s *Server) handleListFundingRequests(c echo.Context) error {
	ideaID := c.QueryParam("idea_id")
	if ideaID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "idea_id required"})
	}

	idea := s.ownedIdea(c, ideaID)
	if idea == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT id, idea_id, item_type, item_id, amount, justification, status, created_at
		FROM funding_requests WHERE idea_id = $1
		ORDER BY created_at ASC`,
		idea.ID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	reqs := []model.FundingRequest{}
	for rows.Next() {
		var r model.FundingRequest
		var status string
		if err := rows.Scan(&r.ID, &r.IdeaID, &r.ItemType, &r.ItemID, &r.Amount,
			&r.Justification, &status, &r.CreatedAt); err != nil {
			continue
		}
		r.Status = model.FundingStatus(status)
		reqs = append(reqs, r)
	}

	return c.JSON(http.StatusOK, reqs)
}

// handleGetEvaluation returns the committee review for a phase
func (s *Server) handleGetEvaluation(c echo.Context) error {
	idea := s.ownedIdea(c, c.Param("id"))
	if idea == nil {
		return nil
	}

	var eval model.Evaluation
	err := s.db.QueryRow(`
		SELECT e.id, e.phase_id, e.score, e.comments, e.created_at
		FROM evaluations e JOIN phases p ON p.id = e.phase_id
		WHERE e.phase_id = $1 AND p.idea_id = $2`,
		c.Param("phaseID"), idea.ID,
	).Scan(&eval.ID, &eval.PhaseID, &eval.Score, &eval.Comments, &eval.CreatedAt)

	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "evaluation not found"})
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, eval)
}

// handleCreateEvaluation records a committee review for a phase.
// Committee members only; one evaluation per phase, latest wins.
func (s *Server) handleCreateEvaluation(c echo.Context) error {
	if c.Get("user_role") != "committee" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "committee role required"})
	}

	var req struct {
		PhaseID  string  `json:"phase_id"`
		Score    float64 `json:"score"`
		Comments string  `json:"comments"`
	}
	if err := c.Bind(&req); err != nil || req.PhaseID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "phase_id required"})
	}
	if req.Score < 0 || req.Score > 100 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "score must be 0-100"})
	}

	evaluatorID := c.Get("user_id").(string)

	var eval model.Evaluation
	err := s.db.QueryRow(`
		INSERT INTO evaluations (id, phase_id, evaluator_id, score, comments)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (phase_id) DO UPDATE SET
			evaluator_id = $3, score = $4, comments = $5
		RETURNING id, phase_id, score, comments, created_at`,
		uuid.NewString(), req.PhaseID, evaluatorID, req.Score, req.Comments,
	).Scan(&eval.ID, &eval.PhaseID, &eval.Score, &eval.Comments, &eval.CreatedAt)

	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, eval)
}
