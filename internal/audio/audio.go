// Package audio is the alarm-sound capability. Playback runs through an
// external player process; no Go audio stack is linked in.
package audio

// Player is the audio playback port. Play with loop restarts the sound
// until Stop is called.
type Player interface {
	Play(loop bool) error
	Stop()
}

// NopPlayer is a silent Player for tests and headless use.
type NopPlayer struct{}

func (NopPlayer) Play(bool) error { return nil }
func (NopPlayer) Stop()           {}
