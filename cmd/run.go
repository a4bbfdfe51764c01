package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/wakey/internal/app"
	"github.com/abhisek/wakey/internal/audio"
	"github.com/abhisek/wakey/internal/config"
	"github.com/abhisek/wakey/internal/llm"
	"github.com/abhisek/wakey/internal/quiz"
	"github.com/abhisek/wakey/internal/vision"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Config:    &cfg,
		Alarms:    st.AlarmRepo(),
		EventRepo: st.Events(),
		NewMonitor: func() *vision.Monitor {
			client := vision.NewClient(cfg.DetectorURL)
			return vision.NewMonitor(client, client, vision.MonitorConfig{
				EARThreshold:      cfg.EARThreshold,
				PollInterval:      cfg.LivenessPollInterval,
				ConsecutiveFrames: cfg.AwakeConsecutiveFrames,
			})
		},
		NewPlayer: func() audio.Player {
			return audio.NewCmdPlayer(cfg.AudioCommand, cfg.AudioFile)
		},
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.Events())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The knowledge gate will serve its built-in question.")
	} else {
		opts.Questions = quiz.New(provider, quiz.DefaultConfig())
	}

	return app.Run(opts)
}
