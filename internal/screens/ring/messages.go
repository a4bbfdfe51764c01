package ring

import "time"

// livenessTickMsg refreshes the eye-openness readout.
type livenessTickMsg time.Time

// retryElapsedMsg ends the wrong-answer lockout and requests a fresh question.
type retryElapsedMsg struct{}

// questionReadyMsg is sent once the replacement question is in place.
type questionReadyMsg struct{}

// actionResultMsg carries the outcome of a stop or snooze attempt.
type actionResultMsg struct {
	snoozed bool
	err     error
}

// ClosedMsg tells the application the session ended and the screen can be
// torn down.
type ClosedMsg struct {
	Snoozed bool
}
