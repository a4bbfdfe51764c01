package audio

import "testing"

func TestCmdPlayerNoCommand(t *testing.T) {
	p := NewCmdPlayer("", "alarm.wav")
	if err := p.Play(true); err == nil {
		t.Error("expected error when no audio command is configured")
	}
}

func TestCmdPlayerStopIdempotent(t *testing.T) {
	p := NewCmdPlayer("true", "alarm.wav")
	p.Stop()
	p.Stop()
}
