// Package reporting runs report generation through an undoable command log.
//
// The Invoker keeps a linear history: executing a command after an undo
// discards every command that was ahead of the cursor. It is not safe for
// concurrent use; callers serialize Execute, Undo and Redo.
package reporting

import (
	"context"
	"time"
)

// Command is a reversible unit of work.
type Command interface {
	// Execute performs the work and returns a one-line result summary. It is
	// called again on redo.
	Execute(ctx context.Context) (string, error)

	// Undo reverts the effect of the last Execute.
	Undo(ctx context.Context) error

	// Describe returns a human-readable description of the command.
	Describe() string
}

// Action is what the invoker did with a command.
type Action string

const (
	ActionExecuted Action = "executed"
	ActionUndone   Action = "undone"
	ActionRedone   Action = "redone"
)

// AuditEntry records one successful invoker operation.
type AuditEntry struct {
	At          time.Time
	Action      Action
	Description string
	Result      string
}

// HistoryEntry is a command in the log. Active is false for commands that
// were undone and can still be redone.
type HistoryEntry struct {
	Position    int
	Description string
	Active      bool
}
