// Package sync polls the backend schedule feeds in the background and
// delivers normalized events to the Bubble Tea runtime as messages.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/schedule"
	"github.com/prepline/prepline/internal/store"
)

// SyncState represents the current state of a feed sync operation.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the sync state for a single feed.
type SyncStatus struct {
	Feed     string
	State    SyncState
	LastSync time.Time
	Error    error
}

// SyncResultMsg is a tea.Msg sent when a poll of both feeds completes.
// Events carries the normalized union of the cleaning and recipe feeds
// for the polled window.
type SyncResultMsg struct {
	Events    []model.Event
	Window    [2]time.Time
	Error     error
	AuthError *AuthErrorMsg
}

// AuthErrorMsg is a tea.Msg sent when the backend rejects the token.
type AuthErrorMsg struct {
	Message string
}

// fetchTimeout is the maximum time allowed for a single poll.
const fetchTimeout = 30 * time.Second

// Poller fetches the cleaning and recipe schedule feeds for the current
// calendar window on an interval, normalizes them, upserts the results
// into the local cache, and emits messages on a result channel.
type Poller struct {
	client *api.Client
	store  store.Store

	departmentID string
	interval     time.Duration

	mu       gosync.Mutex
	from, to time.Time
	statuses map[string]*SyncStatus
	running  bool

	resultCh  chan SyncResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
}

// New creates a Poller. The window defaults to the current week until
// SetWindow is called.
func New(client *api.Client, s store.Store, departmentID string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 120 * time.Second
	}

	now := time.Now()
	return &Poller{
		client:       client,
		store:        s,
		departmentID: departmentID,
		interval:     interval,
		from:         now.AddDate(0, 0, -7),
		to:           now.AddDate(0, 0, 7),
		statuses: map[string]*SyncStatus{
			schedule.TypeCleaning: {Feed: schedule.TypeCleaning},
			schedule.TypeRecipe:   {Feed: schedule.TypeRecipe},
		},
		resultCh:  make(chan SyncResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// SetWindow updates the polled date window and triggers an immediate
// refresh so navigation is reflected without waiting for the interval.
func (p *Poller) SetWindow(from, to time.Time) tea.Cmd {
	p.mu.Lock()
	p.from, p.to = from, to
	p.mu.Unlock()
	return p.Refresh()
}

// Start returns a tea.Cmd that starts the polling goroutine and
// subscribes to results.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate poll without waiting for the interval.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// Channel full; a poll is already queued.
	}
	return nil
}

// Statuses returns the current sync status of both feeds.
func (p *Poller) Statuses() []SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]SyncStatus, 0, len(p.statuses))
	for _, s := range p.statuses {
		out = append(out, *s)
	}
	return out
}

// loop runs the polling cycle until stopped.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial fetch immediately so the first render has data.
	p.poll()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.poll()
		case <-p.triggerCh:
			p.poll()
		}
	}
}

// poll fetches both feeds for the current window, normalizes the union,
// upserts it into the cache, and sends one result message.
func (p *Poller) poll() {
	p.mu.Lock()
	from, to := p.from, p.to
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	fetchedAt := time.Now()
	var records []schedule.Record

	p.setStatus(schedule.TypeCleaning, SyncRunning, nil)
	cleaning, err := p.client.ListCleaningSchedule(ctx, p.departmentID, from, to)
	if err != nil {
		p.setStatus(schedule.TypeCleaning, SyncError, err)
		p.sendError(err)
		return
	}
	p.setStatus(schedule.TypeCleaning, SyncIdle, nil)
	for _, t := range cleaning {
		records = append(records, schedule.FromCleaningTask(t))
	}

	p.setStatus(schedule.TypeRecipe, SyncRunning, nil)
	production, err := p.client.ListProductionSchedule(ctx, from, to)
	if err != nil {
		p.setStatus(schedule.TypeRecipe, SyncError, err)
		p.sendError(err)
		return
	}
	p.setStatus(schedule.TypeRecipe, SyncIdle, nil)
	for _, r := range production {
		records = append(records, schedule.FromProductionRun(r))
	}

	events := schedule.NormalizeAll(records, fetchedAt)

	if len(events) > 0 && p.store != nil {
		if upsertErr := p.store.UpsertEvents(ctx, events); upsertErr != nil {
			p.sendError(upsertErr)
			return
		}
	}

	p.sendResult(SyncResultMsg{Events: events, Window: [2]time.Time{from, to}})
}

// sendError emits an error result, flagging token problems separately
// so the UI can prompt for reconfiguration.
func (p *Poller) sendError(err error) {
	msg := SyncResultMsg{Error: err}
	if api.IsAuthError(err) {
		msg.AuthError = &AuthErrorMsg{
			Message: fmt.Sprintf("authentication expired: %v. Press 'c' to reconfigure.", err),
		}
	}
	p.sendResult(msg)
}

// setStatus updates the sync status for a feed.
func (p *Poller) setStatus(feed string, state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[feed]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a result message without blocking the poll loop.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller.
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next sync
// result. Call it after processing a SyncResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
