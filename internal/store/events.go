package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LLMRequestEventData captures one LLM API call for the event log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// Ring event kinds.
const (
	RingOpened  = "opened"
	RingStopped = "stopped"
	RingSnoozed = "snoozed"
)

// RingEventData captures one ring-session lifecycle event.
type RingEventData struct {
	AlarmID   string
	SessionID string
	// Kind is one of RingOpened, RingStopped, RingSnoozed.
	Kind string
	// Detail carries kind-specific context: the minute fired for opened,
	// the new alarm time for snoozed.
	Detail string
}

// RingEventRecord is a stored ring event.
type RingEventRecord struct {
	ID        int
	Timestamp time.Time
	RingEventData
}

// RingStats summarizes the ring event log for the stats command.
type RingStats struct {
	Rings   int
	Stops   int
	Snoozes int

	// MeanTimeToClose is the average opened-to-closed interval across
	// sessions that were closed. Zero when no session closed yet.
	MeanTimeToClose time.Duration
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// EventRepo provides access to the append-only event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event by ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// AppendRingEvent records a ring-session lifecycle event.
	AppendRingEvent(ctx context.Context, data RingEventData) error

	// QueryRingEvents returns ring events, newest first.
	QueryRingEvents(ctx context.Context, opts QueryOpts) ([]RingEventRecord, error)

	// Stats summarizes the ring event log.
	Stats(ctx context.Context) (*RingStats, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	q := `SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, response_body
	      FROM llm_events ORDER BY id DESC`
	args := []any{}
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEventRecord
	for rows.Next() {
		var e LLMRequestEventRecord
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan llm event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	var e LLMRequestEventRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, response_body
		 FROM llm_events WHERE id = ?`, id).
		Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("llm event %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	return &e, nil
}

func (r *eventRepo) AppendRingEvent(ctx context.Context, data RingEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ring_events (timestamp, alarm_id, session_id, kind, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.AlarmID, data.SessionID, data.Kind, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("append ring event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRingEvents(ctx context.Context, opts QueryOpts) ([]RingEventRecord, error) {
	q := `SELECT id, timestamp, alarm_id, session_id, kind, detail
	      FROM ring_events ORDER BY id DESC`
	args := []any{}
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query ring events: %w", err)
	}
	defer rows.Close()

	var events []RingEventRecord
	for rows.Next() {
		var e RingEventRecord
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.AlarmID, &e.SessionID, &e.Kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan ring event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) Stats(ctx context.Context) (*RingStats, error) {
	stats := &RingStats{}
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(CASE WHEN kind = ? THEN 1 END),
			COUNT(CASE WHEN kind = ? THEN 1 END),
			COUNT(CASE WHEN kind = ? THEN 1 END)
		 FROM ring_events`, RingOpened, RingStopped, RingSnoozed).
		Scan(&stats.Rings, &stats.Stops, &stats.Snoozes)
	if err != nil {
		return nil, fmt.Errorf("ring stats: %w", err)
	}

	// Average dismissal delay: pair each close with the open of the same
	// session.
	var meanSeconds sql.NullFloat64
	err = r.db.QueryRowContext(ctx,
		`SELECT AVG(strftime('%s', closed.timestamp) - strftime('%s', opened.timestamp))
		 FROM ring_events closed
		 JOIN ring_events opened
		   ON opened.session_id = closed.session_id AND opened.kind = ?
		 WHERE closed.kind IN (?, ?)`, RingOpened, RingStopped, RingSnoozed).
		Scan(&meanSeconds)
	if err != nil {
		return nil, fmt.Errorf("ring stats mean: %w", err)
	}
	if meanSeconds.Valid {
		stats.MeanTimeToClose = time.Duration(meanSeconds.Float64 * float64(time.Second))
	}
	return stats, nil
}
