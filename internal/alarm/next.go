package alarm

import "time"

// Next returns the enabled alarm that rings soonest after now, together
// with the instant it will ring. ok is false when no alarm is enabled.
// Ties on the ring instant go to the earliest-created alarm.
func Next(alarms []Alarm, now time.Time) (next Alarm, at time.Time, ok bool) {
	for _, a := range alarms {
		if !a.Enabled {
			continue
		}
		h, m, err := splitClockTime(a.Time)
		if err != nil {
			continue
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.Add(24 * time.Hour)
		}
		if !ok || candidate.Before(at) ||
			(candidate.Equal(at) && a.CreatedAt.Before(next.CreatedAt)) {
			next, at, ok = a, candidate, true
		}
	}
	return next, at, ok
}
