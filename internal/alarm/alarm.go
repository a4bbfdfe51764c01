package alarm

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultLabel is used when an alarm is created without one.
const DefaultLabel = "Alarm"

// Alarm is a single scheduled alarm as persisted by the store.
type Alarm struct {
	// ID is an opaque unique identifier (UUID).
	ID string

	// Time is the wall-clock firing time as zero-padded "HH:MM" (24-hour).
	// Fixed width makes it comparable and sortable lexicographically.
	Time string

	// Label is the display text shown while the alarm rings.
	Label string

	// Enabled gates triggering. Disabled alarms never fire.
	Enabled bool

	// Triggered is set while the alarm's session is open and cleared by
	// MarkLastTriggered. Nothing reads it back; it is kept for store parity.
	Triggered bool

	// LastTriggered is the "HH:MM" minute at which this alarm last fired.
	// It is the sole re-entrancy guard: an alarm never fires twice within
	// the same minute.
	LastTriggered string

	// CreatedAt is when the alarm was created. Used for audit and as the
	// tie-breaker when several alarms match the same minute.
	CreatedAt time.Time
}

// ParseClockTime validates s as zero-padded 24-hour "HH:MM" and returns it
// in canonical form.
func ParseClockTime(s string) (string, error) {
	h, m, err := splitClockTime(s)
	if err != nil {
		return "", err
	}
	return formatClockTime(h, m), nil
}

// MinuteOf formats t as the "HH:MM" minute the trigger evaluator compares
// alarm times against.
func MinuteOf(t time.Time) string {
	return t.Format("15:04")
}

// AddMinutes adds delta minutes to a "HH:MM" clock time, wrapping within the
// 24-hour day. Only time-of-day is stored, so day rollover is not tracked:
// "23:58" + 5 yields "00:03".
func AddMinutes(clock string, delta int) (string, error) {
	h, m, err := splitClockTime(clock)
	if err != nil {
		return "", err
	}
	total := h*60 + m + delta
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return formatClockTime(total/60, total%60), nil
}

func splitClockTime(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in clock time %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in clock time %q", s)
	}
	return hour, minute, nil
}

func formatClockTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
