package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/launchforge/phaseline/internal/model"
)

// ownedIdea loads an idea and verifies the caller owns it. Returns nil
// and writes the error response when the check fails.
func (s *Server) ownedIdea(c echo.Context, ideaID string) *model.Idea {
	userID := c.Get("user_id").(string)

	var idea model.Idea
	err := s.db.QueryRow(`
		SELECT id, owner_id, name, status, created_at, updated_at
		FROM ideas WHERE id = $1`,
		ideaID,
	).Scan(&idea.ID, &idea.OwnerID, &idea.Name, &idea.Status, &idea.CreatedAt, &idea.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, map[string]string{"error": "idea not found"})
		return nil
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return nil
	}

	// Committee members may read and evaluate any idea
	if idea.OwnerID != userID && c.Get("user_role") != "committee" {
		c.JSON(http.StatusForbidden, map[string]string{"error": "not your idea"})
		return nil
	}

	return &idea
}

// handleListIdeas returns the caller's ideas
func (s *Server) handleListIdeas(c echo.Context) error {
	userID := c.Get("user_id").(string)

	rows, err := s.db.Query(`
		SELECT id, owner_id, name, status, created_at, updated_at
		FROM ideas WHERE owner_id = $1
		ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	ideas := []model.Idea{}
	for rows.Next() {
		var idea model.Idea
		if err := rows.Scan(&idea.ID, &idea.OwnerID, &idea.Name, &idea.Status,
			&idea.CreatedAt, &idea.UpdatedAt); err != nil {
			continue
		}
		ideas = append(ideas, idea)
	}

	return c.JSON(http.StatusOK, ideas)
}

// handleCreateIdea registers a new idea in draft state
func (s *Server) handleCreateIdea(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name required"})
	}

	var idea model.Idea
	err := s.db.QueryRow(`
		INSERT INTO ideas (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, status, created_at, updated_at`,
		uuid.NewString(), userID, req.Name,
	).Scan(&idea.ID, &idea.OwnerID, &idea.Name, &idea.Status, &idea.CreatedAt, &idea.UpdatedAt)

	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, idea)
}

// handleGetIdea returns a single idea
func (s *Server) handleGetIdea(c echo.Context) error {
	idea := s.ownedIdea(c, c.Param("id"))
	if idea == nil {
		return nil
	}
	return c.JSON(http.StatusOK, idea)
}

// handleSubmitTimeline locks an idea's timeline for committee review.
// After this every phase/task mutation is rejected with 409.
func (s *Server) handleSubmitTimeline(c echo.Context) error {
	idea := s.ownedIdea(c, c.Param("id"))
	if idea == nil {
		return nil
	}

	if idea.Status != model.IdeaStatusDraft {
		return c.JSON(http.StatusConflict, map[string]string{"error": "timeline already submitted"})
	}

	// Reject empty timelines
	var phaseCount int
	s.db.QueryRow(`SELECT COUNT(*) FROM phases WHERE idea_id = $1`, idea.ID).Scan(&phaseCount)
	if phaseCount == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cannot submit an empty timeline"})
	}

	_, err := s.db.Exec(`
		UPDATE ideas SET status = $1, updated_at = $2 WHERE id = $3`,
		model.IdeaStatusSubmitted, time.Now(), idea.ID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": model.IdeaStatusSubmitted})
}
