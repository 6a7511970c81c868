package reporting

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"go.uber.org/zap"
)

// Invoker executes commands and keeps the undo/redo history.
//
// entries is only ever appended to or overwritten in place. validLen marks
// how many of its leading entries belong to the current history, and cursor
// is the index of the last executed command, -1 when there is none. The
// invariant is -1 <= cursor < validLen <= len(entries).
type Invoker struct {
	entries  []Command
	validLen int
	cursor   int

	audit  []AuditEntry
	clock  kernel.Clock
	logger *zap.Logger
}

// NewInvoker creates an empty command log.
func NewInvoker(clock kernel.Clock, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		cursor: -1,
		clock:  clock,
		logger: logger.Named("commandlog"),
	}
}

// Execute runs cmd and records it right after the cursor, discarding any
// commands that could have been redone. A failed command leaves the log as
// it was.
func (i *Invoker) Execute(ctx context.Context, cmd Command) (string, error) {
	result, err := cmd.Execute(ctx)
	if err != nil {
		return "", err
	}

	next := i.cursor + 1
	if next < len(i.entries) {
		i.entries[next] = cmd
	} else {
		i.entries = append(i.entries, cmd)
	}
	i.cursor = next
	i.validLen = next + 1

	i.record(ActionExecuted, cmd, result)
	return result, nil
}

// Undo reverts the command at the cursor. It returns errs.ErrNothingToUndo
// when the log has no executed command left.
func (i *Invoker) Undo(ctx context.Context) (string, error) {
	if i.cursor < 0 {
		return "", errs.ErrNothingToUndo
	}

	cmd := i.entries[i.cursor]
	if err := cmd.Undo(ctx); err != nil {
		return "", err
	}
	i.cursor--

	description := cmd.Describe()
	i.record(ActionUndone, cmd, "undone: "+description)
	return description, nil
}

// Redo executes the command after the cursor again. It returns
// errs.ErrNothingToRedo when the cursor is at the end of the history.
func (i *Invoker) Redo(ctx context.Context) (string, error) {
	next := i.cursor + 1
	if next >= i.validLen {
		return "", errs.ErrNothingToRedo
	}

	cmd := i.entries[next]
	result, err := cmd.Execute(ctx)
	if err != nil {
		return "", err
	}
	i.cursor = next

	i.record(ActionRedone, cmd, result)
	return result, nil
}

// History lists the commands of the current history, oldest first.
func (i *Invoker) History() []HistoryEntry {
	history := make([]HistoryEntry, 0, i.validLen)
	for pos := range i.validLen {
		history = append(history, HistoryEntry{
			Position:    pos,
			Description: i.entries[pos].Describe(),
			Active:      pos <= i.cursor,
		})
	}
	return history
}

// Audit returns a copy of the audit trail.
func (i *Invoker) Audit() []AuditEntry {
	out := make([]AuditEntry, len(i.audit))
	copy(out, i.audit)
	return out
}

// Cursor returns the index of the last executed command, -1 if none.
func (i *Invoker) Cursor() int {
	return i.cursor
}

func (i *Invoker) record(action Action, cmd Command, result string) {
	entry := AuditEntry{
		At:          i.clock.Now().UTC(),
		Action:      action,
		Description: cmd.Describe(),
		Result:      result,
	}
	i.audit = append(i.audit, entry)

	i.logger.Info("command "+string(action),
		zap.String("description", entry.Description),
		zap.String("result", entry.Result),
		zap.Int("cursor", i.cursor),
		zap.Int("historyLength", i.validLen),
	)
}
