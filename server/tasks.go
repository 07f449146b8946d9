package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/launchforge/phaseline/internal/model"
)

type taskRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	ProgressPercentage int    `json:"progress_percentage"`
	Priority           int    `json:"priority"`
	ColorToken         string `json:"color_token"`
}

type taskDatesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ideaForTask resolves a task's parent idea with ownership checks
func (s *Server) ideaForTask(c echo.Context, taskID string) *model.Idea {
	var ideaID string
	err := s.db.QueryRow(`
		SELECT p.idea_id FROM tasks t JOIN phases p ON p.id = t.phase_id
		WHERE t.id = $1`,
		taskID,
	).Scan(&ideaID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
		return nil
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return nil
	}
	return s.ownedIdea(c, ideaID)
}

const taskReturning = `RETURNING id, phase_id, name, description, start_date, end_date,
	progress, priority, color_token, created_at, updated_at`

func scanTask(row *sql.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.PhaseID, &t.Name, &t.Description, &t.StartDate, &t.EndDate,
		&t.ProgressPercentage, &t.Priority, &t.ColorToken, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// handleCreateTask adds a task to a phase
func (s *Server) handleCreateTask(c echo.Context) error {
	phaseID := c.Param("id")
	idea := s.ideaForPhase(c, phaseID)
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	var req taskRequest
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
	if !validProgress(req.ProgressPercentage) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "progress must be 0-100"})
	}

	task, err := scanTask(s.db.QueryRow(`
		INSERT INTO tasks (id, phase_id, name, description, start_date, end_date, progress, priority, color_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) `+taskReturning,
		uuid.NewString(), phaseID, req.Name, req.Description, start, end,
		req.ProgressPercentage, req.Priority, req.ColorToken,
	))
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, task)
}

// handleUpdateTask rewrites a task's form-editable fields
func (s *Server) handleUpdateTask(c echo.Context) error {
	taskID := c.Param("id")
	idea := s.ideaForTask(c, taskID)
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	var req taskRequest
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
	if !validProgress(req.ProgressPercentage) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "progress must be 0-100"})
	}

	task, err := scanTask(s.db.QueryRow(`
		UPDATE tasks
		SET name = $1, description = $2, start_date = $3, end_date = $4,
		    progress = $5, priority = $6, color_token = $7, updated_at = $8
		WHERE id = $9 `+taskReturning,
		req.Name, req.Description, start, end, req.ProgressPercentage,
		req.Priority, req.ColorToken, time.Now(), taskID,
	))
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, task)
}

// handleUpdateTaskDates persists a drag/resize result. Only the dates
// change; start <= end is enforced here as well as in the client.
func (s *Server) handleUpdateTaskDates(c echo.Context) error {
	taskID := c.Param("id")
	idea := s.ideaForTask(c, taskID)
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	var req taskDatesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	task, err := scanTask(s.db.QueryRow(`
		UPDATE tasks SET start_date = $1, end_date = $2, updated_at = $3
		WHERE id = $4 `+taskReturning,
		start, end, time.Now(), taskID,
	))
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, task)
}

// handleDeleteTask removes a task
func (s *Server) handleDeleteTask(c echo.Context) error {
	taskID := c.Param("id")
	idea := s.ideaForTask(c, taskID)
	if idea == nil {
		return nil
	}
	if rejectLocked(c, idea) {
		return nil
	}

	if _, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, taskID); err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
