package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homereno/renoterm/internal/api"
	"github.com/homereno/renoterm/internal/model"
	"github.com/homereno/renoterm/internal/store"
)

// State represents the current state of a background refresh.
type State int

const (
	Idle State = iota
	Running
	Error
)

// Status holds the refresher's current state and the time of the last
// successful refresh.
type Status struct {
	State    State
	LastSync time.Time
	Error    error
}

// RefreshResultMsg is a tea.Msg sent when a refresh cycle completes.
type RefreshResultMsg struct {
	Projects    []model.Project
	Contractors []model.Contractor
	Error       error
	AuthError   *AuthErrorMsg
}

// AuthErrorMsg is a tea.Msg sent when the API rejects the session token.
type AuthErrorMsg struct {
	Message string
}

// fetchTimeout is the maximum time allowed for a single refresh cycle.
const fetchTimeout = 30 * time.Second

// Refresher periodically pulls the project list and contractor roster
// from the API, writes them into the local cache, and publishes the
// result to the Bubble Tea runtime.
type Refresher struct {
	client   *api.Client
	store    store.Store
	interval time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	status  Status
	running bool
}

// New creates a Refresher polling at the given interval. A non-positive
// interval falls back to two minutes.
func New(client *api.Client, s store.Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &Refresher{
		client:    client,
		store:     s,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a subscription
// command that delivers RefreshResultMsg messages to the runtime.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return r.waitForResult()
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.waitForResult()
}

// Stop halts the polling goroutine.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// Refresh triggers an immediate refresh cycle.
func (r *Refresher) Refresh() tea.Cmd {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// A refresh is already queued.
	}
	return nil
}

// Status returns the refresher's current status.
func (r *Refresher) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Initial fetch so the UI has data right away.
	r.fetch()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.fetch()
		case <-r.triggerCh:
			r.fetch()
		}
	}
}

// fetch performs one refresh cycle: pull projects and roster, replace
// the local cache, publish the result.
func (r *Refresher) fetch() {
	r.setStatus(Running, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	projects, err := r.client.ListProjects(ctx)
	if err != nil {
		r.fail(err)
		return
	}

	contractors, err := r.client.ListContractors(ctx)
	if err != nil {
		r.fail(err)
		return
	}

	if r.store != nil {
		if err := r.store.ReplaceProjects(ctx, projects); err != nil {
			r.fail(err)
			return
		}
		if err := r.store.ReplaceContractors(ctx, contractors); err != nil {
			r.fail(err)
			return
		}
	}

	r.setStatus(Idle, nil)
	r.sendResult(RefreshResultMsg{
		Projects:    projects,
		Contractors: contractors,
	})
}

func (r *Refresher) fail(err error) {
	r.setStatus(Error, err)

	msg := RefreshResultMsg{Error: err}
	if api.IsAuthError(err) {
		msg.AuthError = &AuthErrorMsg{
			Message: "Session expired. Please log in again.",
		}
	}
	r.sendResult(msg)
}

func (r *Refresher) setStatus(state State, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.State = state
	r.status.Error = err
	if state == Idle && err == nil {
		r.status.LastSync = time.Now()
	}
}

// sendResult sends a message on the result channel without blocking.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the loop.
	}
}

func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next refresh
// result. Call it after processing a RefreshResultMsg to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}
