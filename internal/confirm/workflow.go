// Package confirm implements the propose/confirm/cancel workflow that gates
// sensitive mutations in the CLI.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yigit/placement/internal/app/auth"
	"github.com/yigit/placement/internal/app/models"
)

// State of a workflow
type State int

const (
	Idle State = iota
	PendingConfirmation
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case PendingConfirmation:
		return "PendingConfirmation"
	case Confirmed:
		return "Confirmed"
	case Cancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Action tags a confirmation request
type Action string

const (
	ActionDelete   Action = "delete"
	ActionVerify   Action = "verify"
	ActionUnverify Action = "unverify"
	ActionRole     Action = "role"
	ActionPlace    Action = "place"
)

// PolicyAction maps a to the server-side action it triggers
func (a Action) PolicyAction() auth.Action {
	switch a {
	case ActionDelete:
		return auth.ActionDeleteUser
	case ActionVerify, ActionUnverify:
		return auth.ActionVerifyUser
	case ActionRole:
		return auth.ActionSetRole
	case ActionPlace:
		return auth.ActionPlaceUser
	}
	return ""
}

// Target is the row a request acts on
type Target struct {
	ID         string
	Name       string
	IsVerified bool
}

// Request is a pending mutation awaiting confirmation
type Request struct {
	Target      Target
	Action      Action
	Role        models.Role
	CompanyID   string
	CompanyName string
}

// Prompt is the question shown before the request executes
func (r Request) Prompt() string {
	switch r.Action {
	case ActionDelete:
		return fmt.Sprintf("Are you sure you want to delete %s?", r.Target.Name)
	case ActionVerify:
		return fmt.Sprintf("Are you sure you want to verify %s?", r.Target.Name)
	case ActionUnverify:
		return fmt.Sprintf("Are you sure you want to unverify %s?", r.Target.Name)
	case ActionRole:
		return fmt.Sprintf("Are you sure you want to change the role of %s to %s?", r.Target.Name, r.Role.Label())
	case ActionPlace:
		company := r.CompanyName
		if r.CompanyID == models.NotPlaced {
			company = "not placed"
		} else if company == "" {
			company = r.CompanyID
		}
		return fmt.Sprintf("Are you sure you want to set the placement of %s to %s?", r.Target.Name, company)
	}
	return fmt.Sprintf("Are you sure you want to %s %s?", r.Action, r.Target.Name)
}

// Executor performs a confirmed request and returns the server's message
type Executor interface {
	Execute(ctx context.Context, req Request) (string, error)
}

// ExecutorFunc adapts a function to Executor
type ExecutorFunc func(ctx context.Context, req Request) (string, error)

func (f ExecutorFunc) Execute(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Notifier shows the outcome of a confirmed request
type Notifier interface {
	Success(message string)
	Failure(message string)
	Warning(message string)
}

var (
	// ErrNothingPending is returned by Confirm when no request is pending
	ErrNothingPending = errors.New("no pending confirmation")
	// ErrInFlight is returned by Confirm while a confirmed request is executing
	ErrInFlight = errors.New("a confirmed request is still executing")
)

// Workflow holds at most one pending request. Proposing while a request is
// pending replaces it.
type Workflow struct {
	mu       sync.Mutex
	state    State
	pending  *Request
	inFlight bool

	exec    Executor
	notify  Notifier
	refresh func(ctx context.Context) error

	// OnTransition, if set, observes every state change
	OnTransition func(from, to State)
}

// New creates an idle workflow. refresh runs after every successful
// execution and may be nil.
func New(exec Executor, notify Notifier, refresh func(ctx context.Context) error) *Workflow {
	return &Workflow{exec: exec, notify: notify, refresh: refresh}
}

func (w *Workflow) transition(to State) {
	from := w.state
	w.state = to
	if w.OnTransition != nil {
		w.OnTransition(from, to)
	}
}

// State returns the current state
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Pending returns the pending request, if any
func (w *Workflow) Pending() (Request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return Request{}, false
	}
	return *w.pending, true
}

// Propose makes req the pending request and returns the request it
// replaced, if any.
func (w *Workflow) Propose(req Request) (replaced *Request) {
	w.mu.Lock()
	defer w.mu.Unlock()

	replaced = w.pending
	w.pending = &req
	if w.state != PendingConfirmation {
		w.transition(PendingConfirmation)
	}
	return replaced
}

// Cancel discards the pending request without contacting the server
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending == nil {
		return
	}
	w.pending = nil
	w.transition(Cancelled)
	w.transition(Idle)
}

// Confirm executes the pending request. On success the server message is
// shown and the list refreshed; on failure the server message is shown and
// nothing is refreshed. A failed refresh is only a warning since the
// mutation has already been applied. The workflow is idle again when
// Confirm returns.
func (w *Workflow) Confirm(ctx context.Context) error {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return ErrInFlight
	}
	if w.pending == nil {
		w.mu.Unlock()
		return ErrNothingPending
	}
	w.inFlight = true
	req := *w.pending
	w.pending = nil
	w.transition(Confirmed)
	w.mu.Unlock()

	msg, err := w.exec.Execute(ctx, req)

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		// A request proposed during execution stays pending.
		if w.pending == nil {
			w.transition(Idle)
		}
		w.mu.Unlock()
	}()

	if err != nil {
		w.notify.Failure(err.Error())
		return err
	}

	w.notify.Success(msg)
	if w.refresh != nil {
		if rerr := w.refresh(ctx); rerr != nil {
			w.notify.Warning(fmt.Sprintf("could not refresh after %s: %v", req.Action, rerr))
		}
	}
	return nil
}
