package audio

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// CmdPlayer plays a sound file by running an external player command
// (aplay, afplay, ffplay...). Looping is done by relaunching the process
// when it exits, until Stop.
type CmdPlayer struct {
	command string
	file    string

	mu      sync.Mutex
	playing bool
	cmd     *exec.Cmd
}

// NewCmdPlayer creates a player that runs `command file` for each playback.
func NewCmdPlayer(command, file string) *CmdPlayer {
	return &CmdPlayer{command: command, file: file}
}

// Play starts playback. With loop the sound repeats until Stop.
func (p *CmdPlayer) Play(loop bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return nil
	}
	if p.command == "" {
		return fmt.Errorf("no audio command configured")
	}
	p.playing = true
	go p.run(loop)
	return nil
}

// Stop kills the current player process and ends looping.
func (p *CmdPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
}

func (p *CmdPlayer) run(loop bool) {
	for {
		p.mu.Lock()
		if !p.playing {
			p.mu.Unlock()
			return
		}
		cmd := exec.Command(p.command, p.file)
		p.cmd = cmd
		p.mu.Unlock()

		if err := cmd.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: start audio player: %v\n", err)
			p.Stop()
			return
		}
		cmd.Wait()

		if !loop {
			p.Stop()
			return
		}
	}
}
