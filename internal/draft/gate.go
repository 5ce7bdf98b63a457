package draft

import (
	"errors"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
)

// GateState is the confirmation gate's current position
type GateState int

const (
	// GateIdle accepts submission requests
	GateIdle GateState = iota
	// GateAwaitingConfirmation holds a validated payload until the user
	// confirms or cancels
	GateAwaitingConfirmation
)

// ErrNotAwaiting is returned by Confirm or Cancel outside of
// AwaitingConfirmation
var ErrNotAwaiting = errors.New("gate is not awaiting confirmation")

// ConfirmationGate sequences validate-confirm-submit for one draft.
//
// Scalar-only drafts pass straight through: Submit validates, builds the
// payload, and returns it in one step. Asset-bearing drafts stop in
// AwaitingConfirmation with the draft frozen, so the payload the user
// reviews is exactly the payload that ships; Confirm releases it, Cancel
// returns to Idle with no side effects.
type ConfirmationGate struct {
	draft   *Draft
	state   GateState
	payload *backoffice.Payload
}

// NewConfirmationGate creates a gate for the given draft
func NewConfirmationGate(d *Draft) *ConfirmationGate {
	return &ConfirmationGate{draft: d}
}

// State returns the gate's current state
func (g *ConfirmationGate) State() GateState {
	return g.state
}

// Required reports whether this draft must pass through
// AwaitingConfirmation before submission
func (g *ConfirmationGate) Required() bool {
	return g.draft.AssetBearing()
}

// Submit runs validation and moves the draft toward submission.
//
// On validation failure it returns the accumulated errors and nothing
// changes state. For scalar-only drafts it returns the payload immediately.
// For asset-bearing drafts it snapshots the payload, freezes the draft,
// enters AwaitingConfirmation, and returns (nil, nil) - the caller shows
// the confirmation step and later calls Confirm or Cancel.
func (g *ConfirmationGate) Submit() (*backoffice.Payload, []error) {
	if g.state != GateIdle {
		return nil, []error{ErrNotAwaiting}
	}

	if errs := g.draft.Validate(); len(errs) > 0 {
		return nil, errs
	}

	payload, err := g.draft.BuildPayload()
	if err != nil {
		return nil, []error{err}
	}

	if !g.Required() {
		return payload, nil
	}

	g.payload = payload
	g.draft.freeze()
	g.state = GateAwaitingConfirmation
	return nil, nil
}

// Confirm releases the held payload for submission and returns the gate to
// Idle. The draft stays intact; the caller discards it only after the
// submission succeeds.
func (g *ConfirmationGate) Confirm() (*backoffice.Payload, error) {
	if g.state != GateAwaitingConfirmation {
		return nil, ErrNotAwaiting
	}

	payload := g.payload
	g.payload = nil
	g.state = GateIdle
	g.draft.unfreeze()
	return payload, nil
}

// Cancel abandons the held payload and unfreezes the draft with no other
// side effects; the user is back where they were before pressing submit.
func (g *ConfirmationGate) Cancel() error {
	if g.state != GateAwaitingConfirmation {
		return ErrNotAwaiting
	}

	g.payload = nil
	g.state = GateIdle
	g.draft.unfreeze()
	return nil
}
