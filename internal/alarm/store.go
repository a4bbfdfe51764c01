package alarm

import (
	"context"
	"errors"
)

// ErrNotFound is returned by store operations referencing an unknown alarm ID.
var ErrNotFound = errors.New("alarm not found")

// Edit describes a partial update. Nil fields are left unchanged.
type Edit struct {
	Time    *string
	Label   *string
	Enabled *bool
}

// IsEmpty reports whether the edit carries no fields. An empty edit is an
// explicit no-op, not an error.
func (e Edit) IsEmpty() bool {
	return e.Time == nil && e.Label == nil && e.Enabled == nil
}

// Store is the persistence port for alarms. The trigger evaluator and the
// ring session are the only callers that must sequence MarkLastTriggered and
// Edit relative to session lifecycle; everything else is fire-and-forget
// request/response.
type Store interface {
	// Create persists a new alarm and returns its ID. An empty label
	// defaults to DefaultLabel.
	Create(ctx context.Context, clockTime, label string) (string, error)

	// Get returns the alarm with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Alarm, error)

	// List returns all alarms ascending by Time (lexicographic on the
	// fixed-width "HH:MM" strings), then by CreatedAt.
	List(ctx context.Context) ([]Alarm, error)

	// Delete removes the alarm with the given ID.
	Delete(ctx context.Context, id string) error

	// ToggleEnabled flips the enabled flag and returns the new value.
	ToggleEnabled(ctx context.Context, id string) (bool, error)

	// Update applies a partial edit. An empty edit returns (false, nil)
	// without touching the store; a successful update returns (true, nil).
	Update(ctx context.Context, id string, edit Edit) (bool, error)

	// MarkLastTriggered records the minute the alarm fired at and clears
	// the Triggered flag. Idempotent for a given minute.
	MarkLastTriggered(ctx context.Context, id, minute string) error

	// SetTriggered sets the Triggered flag. Written when a session opens;
	// no consumer reads it back.
	SetTriggered(ctx context.Context, id string, triggered bool) error

	// ClearLastTriggered resets the minute guard so the trigger evaluator
	// can fire the alarm again. Used by snooze after moving the time.
	ClearLastTriggered(ctx context.Context, id string) error
}
