package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/launchforge/phaseline/internal/model"
)

type phaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Priority    int    `json:"priority"`
}

// ideaForPhase resolves a phase's parent idea with the same ownership
// checks as ownedIdea
func (s *Server) ideaForPhase(c echo.Context, phaseID string) *model.Idea {
	var ideaID string
	err := s.db.QueryRow(`SELECT idea_id FROM phases WHERE id = $1`, phaseID).Scan(&ideaID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, map[string]string{"error": "phase not found"})
		return nil
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return nil
	}
	return s.ownedIdea(c, ideaID)
}

// rejectLocked writes a 409 when the idea's timeline is submitted.
// Mutating a locked timeline is refused server-side no matter what the
// client shows.
func rejectLocked(c echo.Context, idea *model.Idea) bool {
	if idea.Locked() {
		c.JSON(http.StatusConflict, map[string]string{"error": "timeline is locked"})
		return true
	}
	return false
}

// handleListPhases returns the full phase+task tree for an idea,
// ordered by start date, with any committee evaluations attached
func (s *Server) handleListPhases(c echo.Context) error {
	idea := s.ownedIdea(c, c.Param("id"))
	if idea == nil {
		return nil
	}

	rows, err := s.db.Query(`
		SELECT p.id, p.idea_id, p.name, p.description, p.start_date, p.end_date,
		       p.priority, p.created_at, p.updated_at, e.score, e.comments
		FROM phases p
		LEFT JOIN evaluations e ON e.phase_id = p.id
		WHERE p.idea_id = $1
		ORDER BY p.start_date ASC, p.created_at ASC`,
		idea.ID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	phases := []model.Phase{}
	index := map[string]int{}
	for rows.Next() {
		var p model.Phase
		var score sql.NullFloat64
		var comments sql.NullString
		if err := rows.Scan(&p.ID, &p.IdeaID, &p.Name, &p.Description, &p.StartDate,
			&p.EndDate, &p.Priority, &p.CreatedAt, &p.UpdatedAt, &score, &comments); err != nil {
			continue
		}
		if score.Valid {
			v := score.Float64
			p.EvaluationScore = &v
			p.Comments = comments.String
		}
		p.Tasks = []model.Task{}
		index[p.ID] = len(phases)
		phases = append(phases, p)
	}

	taskRows, err := s.db.Query(`
		SELECT t.id, t.phase_id, t.name, t.description, t.start_date, t.end_date,
		       t.progress, t.priority, t.color_token, t.created_at, t.updated_at
		FROM tasks t
		JOIN phases p ON p.id = t.phase_id
		WHERE p.idea_id = $1
		ORDER BY t.start_date ASC, t.created_at ASC`,
		idea.ID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var t model.Task
		if err := taskRows.Scan(&t.ID, &t.PhaseID, &t.Name, &t.Description, &t.StartDate,
			&t.EndDate, &t.ProgressPercentage, &t.Priority, &t.ColorToken,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			continue
		}
		if i, ok := index[t.PhaseID]; ok {
			phases[i].Tasks = append(phases[i].Tasks, t)
		}
	}

	return c.JSON(http.StatusOK, phases)
}

// handleCreatePhase adds a phase to an idea's timeline
func (s *Server) handleCreatePhase(c echo.Context) error {
	idea := s.ownedIdea(c, c.Param("id"))
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	var req phaseRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name required"})
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if req.Priority == 0 {
		req.Priority = model.PriorityMedium
	}
	if !validPriority(req.Priority) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "priority must be 1-5"})
	}

	var p model.Phase
	err = s.db.QueryRow(`
		INSERT INTO phases (id, idea_id, name, description, start_date, end_date, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, idea_id, name, description, start_date, end_date, priority, created_at, updated_at`,
		uuid.NewString(), idea.ID, req.Name, req.Description, start, end, req.Priority,
	).Scan(&p.ID, &p.IdeaID, &p.Name, &p.Description, &p.StartDate, &p.EndDate,
		&p.Priority, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	p.Tasks = []model.Task{}
	return c.JSON(http.StatusOK, p)
}

// handleUpdatePhase rewrites a phase's fields
func (s *Server) handleUpdatePhase(c echo.Context) error {
	phaseID := c.Param("id")
	idea := s.ideaForPhase(c, phaseID)
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	var req phaseRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name required"})
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if !validPriority(req.Priority) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "priority must be 1-5"})
	}

	var p model.Phase
	err = s.db.QueryRow(`
		UPDATE phases
		SET name = $1, description = $2, start_date = $3, end_date = $4, priority = $5, updated_at = $6
		WHERE id = $7
		RETURNING id, idea_id, name, description, start_date, end_date, priority, created_at, updated_at`,
		req.Name, req.Description, start, end, req.Priority, time.Now(), phaseID,
	).Scan(&p.ID, &p.IdeaID, &p.Name, &p.Description, &p.StartDate, &p.EndDate,
		&p.Priority, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, p)
}

// handleDeletePhase removes a phase and its tasks
func (s *Server) handleDeletePhase(c echo.Context) error {
	phaseID := c.Param("id")
	idea := s.ideaForPhase(c, phaseID)
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	if _, err := s.db.Exec(`DELETE FROM phases WHERE id = $1`, phaseID); err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
