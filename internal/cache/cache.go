// Package cache is the client-side sqlite store: optimistic funding
// request records and the last-fetched phase tree per idea, so offline
// listings and TUI startup have something to show before the live fetch
// lands. Server data always supersedes it on the next refetch.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/launchforge/phaseline/internal/model"
	_ "modernc.org/sqlite"
)

// Cache wraps the local sqlite database
type Cache struct {
	*sql.DB
}

// DefaultPath returns the default cache location (~/.phaseline/cache.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".phaseline", "cache.db"), nil
}

// Open opens or creates the cache database
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	c := &Cache{DB: db}
	if err := c.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run cache migrations: %w", err)
	}

	return c, nil
}

// OpenDefault opens the cache at the default path
func OpenDefault() (*Cache, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

func (c *Cache) migrate() error {
	migrations := []string{
		migrationFundingRequests,
		migrationSnapshots,
	}

	for i, m := range migrations {
		if _, err := c.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationFundingRequests = `
CREATE TABLE IF NOT EXISTS funding_requests (
    item_type TEXT NOT NULL,
    item_id TEXT NOT NULL,
    idea_id TEXT NOT NULL,
    amount REAL NOT NULL,
    justification TEXT,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (item_type, item_id)
);
`

const migrationSnapshots = `
CREATE TABLE IF NOT EXISTS snapshots (
    idea_id TEXT PRIMARY KEY,
    phases_json TEXT NOT NULL,
    fetched_at TEXT NOT NULL
);
`

// SaveFundingRequest records an optimistic funding ask, replacing any
// previous record for the same item
func (c *Cache) SaveFundingRequest(req model.FundingRequest) error {
	_, err := c.Exec(`
		INSERT OR REPLACE INTO funding_requests
		(item_type, item_id, idea_id, amount, justification, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.ItemType, req.ItemID, req.IdeaID, req.Amount,
		req.Justification, string(req.Status), time.Now().Format(time.RFC3339),
	)
	return err
}

// FundingRequest returns the cached record for an item, if any
func (c *Cache) FundingRequest(itemType, itemID string) (*model.FundingRequest, error) {
	row := c.QueryRow(`
		SELECT item_type, item_id, idea_id, amount, justification, status, created_at
		FROM funding_requests WHERE item_type = ? AND item_id = ?`,
		itemType, itemID,
	)

	var req model.FundingRequest
	var status, createdAt string
	err := row.Scan(&req.ItemType, &req.ItemID, &req.IdeaID, &req.Amount,
		&req.Justification, &status, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	req.Status = model.FundingStatus(status)
	req.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &req, nil
}

// ClearFundingRequests drops the optimistic records for an idea once
// server data has superseded them
func (c *Cache) ClearFundingRequests(ideaID string) error {
	_, err := c.Exec(`DELETE FROM funding_requests WHERE idea_id = ?`, ideaID)
	return err
}

// SaveSnapshot stores the last-fetched phase tree for an idea
func (c *Cache) SaveSnapshot(ideaID string, phases []model.Phase) error {
	data, err := json.Marshal(phases)
	if err != nil {
		return err
	}

	_, err = c.Exec(`
		INSERT OR REPLACE INTO snapshots (idea_id, phases_json, fetched_at)
		VALUES (?, ?, ?)`,
		ideaID, string(data), time.Now().Format(time.RFC3339),
	)
	return err
}

// Snapshot returns the cached phase tree and its fetch time, or nil if
// no snapshot exists for the idea
func (c *Cache) Snapshot(ideaID string) ([]model.Phase, time.Time, error) {
	row := c.QueryRow(`SELECT phases_json, fetched_at FROM snapshots WHERE idea_id = ?`, ideaID)

	var data, fetchedAt string
	err := row.Scan(&data, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var phases []model.Phase
	if err := json.Unmarshal([]byte(data), &phases); err != nil {
		return nil, time.Time{}, err
	}
	at, _ := time.Parse(time.RFC3339, fetchedAt)
	return phases, at, nil
}
