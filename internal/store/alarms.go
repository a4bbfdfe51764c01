package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wakey/internal/alarm"
)

// AlarmRepo implements alarm.Store on sqlite.
type AlarmRepo struct {
	db *sql.DB
}

var _ alarm.Store = (*AlarmRepo)(nil)

// Create persists a new alarm and returns its ID.
func (r *AlarmRepo) Create(ctx context.Context, clockTime, label string) (string, error) {
	canonical, err := alarm.ParseClockTime(clockTime)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(label) == "" {
		label = alarm.DefaultLabel
	}

	id := uuid.New().String()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO alarms (id, time, label, enabled, triggered, last_triggered, created_at)
		 VALUES (?, ?, ?, 1, 0, '', ?)`,
		id, canonical, label, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert alarm: %w", err)
	}
	return id, nil
}

// Get returns the alarm with the given ID.
func (r *AlarmRepo) Get(ctx context.Context, id string) (*alarm.Alarm, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, time, label, enabled, triggered, last_triggered, created_at
		 FROM alarms WHERE id = ?`, id)
	a, err := scanAlarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, alarm.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get alarm: %w", err)
	}
	return a, nil
}

// List returns all alarms ascending by time, then creation order.
func (r *AlarmRepo) List(ctx context.Context) ([]alarm.Alarm, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, time, label, enabled, triggered, last_triggered, created_at
		 FROM alarms ORDER BY time ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()

	var alarms []alarm.Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}
		alarms = append(alarms, *a)
	}
	return alarms, rows.Err()
}

// Delete removes the alarm with the given ID.
func (r *AlarmRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	return requireRow(res)
}

// ToggleEnabled flips the enabled flag and returns the new value.
func (r *AlarmRepo) ToggleEnabled(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alarms SET enabled = NOT enabled WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle alarm: %w", err)
	}
	if err := requireRow(res); err != nil {
		return false, err
	}

	var enabled bool
	err = r.db.QueryRowContext(ctx, `SELECT enabled FROM alarms WHERE id = ?`, id).Scan(&enabled)
	if err != nil {
		return false, fmt.Errorf("read toggled alarm: %w", err)
	}
	return enabled, nil
}

// Update applies a partial edit. An empty edit is a no-op, reported via the
// boolean rather than an error.
func (r *AlarmRepo) Update(ctx context.Context, id string, edit alarm.Edit) (bool, error) {
	if edit.IsEmpty() {
		return false, nil
	}

	var sets []string
	var args []any
	if edit.Time != nil {
		canonical, err := alarm.ParseClockTime(*edit.Time)
		if err != nil {
			return false, err
		}
		sets = append(sets, "time = ?")
		args = append(args, canonical)
	}
	if edit.Label != nil {
		sets = append(sets, "label = ?")
		args = append(args, *edit.Label)
	}
	if edit.Enabled != nil {
		sets = append(sets, "enabled = ?")
		args = append(args, *edit.Enabled)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE alarms SET %s WHERE id = ?`, strings.Join(sets, ", ")), args...)
	if err != nil {
		return false, fmt.Errorf("update alarm: %w", err)
	}
	if err := requireRow(res); err != nil {
		return false, err
	}
	return true, nil
}

// MarkLastTriggered records the minute the alarm fired at and clears the
// triggered flag. Writing the same minute twice is harmless.
func (r *AlarmRepo) MarkLastTriggered(ctx context.Context, id, minute string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alarms SET last_triggered = ?, triggered = 0 WHERE id = ?`, minute, id)
	if err != nil {
		return fmt.Errorf("mark last triggered: %w", err)
	}
	return requireRow(res)
}

// SetTriggered sets the triggered flag.
func (r *AlarmRepo) SetTriggered(ctx context.Context, id string, triggered bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alarms SET triggered = ? WHERE id = ?`, triggered, id)
	if err != nil {
		return fmt.Errorf("set triggered: %w", err)
	}
	return requireRow(res)
}

// ClearLastTriggered resets the minute guard.
func (r *AlarmRepo) ClearLastTriggered(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alarms SET last_triggered = '' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("clear last triggered: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlarm(row rowScanner) (*alarm.Alarm, error) {
	var a alarm.Alarm
	err := row.Scan(&a.ID, &a.Time, &a.Label, &a.Enabled, &a.Triggered, &a.LastTriggered, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return alarm.ErrNotFound
	}
	return nil
}
