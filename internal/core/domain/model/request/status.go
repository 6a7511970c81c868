package request

import (
	"fmt"
	"strings"

	"waterdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a request.
//
// State transitions:
//
//	Pending ──assign──> Assigned ──process──> InProgress ──complete──> Completed
//	   │                   │                      │
//	   └──────cancel───────┴────────cancel────────┴──────────────────> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	UnknownStatus Status = iota

	// Pending is the initial status. The request waits for a locality.
	Pending

	// Assigned means capacity was reserved and a ticket was issued.
	Assigned

	// InProgress means the requester arrived or part of the water was delivered.
	InProgress

	// Completed means the delivery finished.
	Completed

	// Cancelled means the request will not be served.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "pending",
	Assigned:   "assigned",
	InProgress: "in_progress",
	Completed:  "completed",
	Cancelled:  "cancelled",
}

// Action is a trigger of the request state machine.
type Action string

const (
	ActionAssign   Action = "assign"
	ActionProcess  Action = "process"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// transitions is the single source of truth for legal edges. Manual status
// changes and cascades from tickets both go through Transition.
var transitions = map[Status]map[Action]Status{
	Pending: {
		ActionAssign: Assigned,
		ActionCancel: Cancelled,
	},
	Assigned: {
		ActionProcess: InProgress,
		ActionCancel:  Cancelled,
	},
	InProgress: {
		ActionComplete: Completed,
		ActionCancel:   Cancelled,
	},
}

// Transition returns the status reached from current by action. An action with
// no outgoing edge returns an *errs.InvalidTransitionError and never a no-op.
func Transition(current Status, action Action) (Status, error) {
	if next, ok := transitions[current][action]; ok {
		return next, nil
	}
	return UnknownStatus, errs.NewInvalidTransitionError("request", current.String(), string(action))
}

// StatusFromString parses the persisted status name.
func StatusFromString(s string) (Status, error) {
	for st, n := range statusNames {
		if n == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// ActionFromString parses an action name.
func ActionFromString(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionAssign, ActionProcess, ActionComplete, ActionCancel:
		return a, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid action", s))
	}
}

// String returns the persisted name, or "unknown".
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no action leaves s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}
