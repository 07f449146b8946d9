package api

import (
	"sync"
	"time"

	"github.com/launchforge/phaseline/internal/logger"
	"github.com/launchforge/phaseline/internal/model"
)

// Poller periodically re-fetches an idea's phase tree so the TUI picks
// up committee evaluations and edits from other sessions. Reconciliation
// is last-full-fetch-wins; the consumer decides when to apply a snapshot
// (the TUI defers while a gesture is active).
type Poller struct {
	client   *Client
	ideaID   string
	interval time.Duration
	onFetch  func([]model.Phase)
	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
}

// NewPoller creates a poller for the given idea. Call Start to begin.
func NewPoller(client *Client, ideaID string, onFetch func([]model.Phase)) *Poller {
	return &Poller{
		client:   client,
		ideaID:   ideaID,
		interval: 30 * time.Second,
		onFetch:  onFetch,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the background poll loop. No-op when already running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	go p.loop()
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			phases, err := p.client.FetchPhases(p.ideaID)
			if err != nil {
				logger.Debug("background refresh failed", logger.F("error", err))
				continue
			}
			p.onFetch(phases)
		case <-p.stopCh:
			return
		}
	}
}

// Stop ends the poll loop
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.stopCh)
}
