package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/wakey/internal/config"
	"github.com/abhisek/wakey/internal/vision"
	"github.com/spf13/cobra"
)

const calibrateSamples = 10

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate the eyes-open threshold against your camera",
	Long: "Samples your eye-aspect-ratio with eyes open and with eyes closed,\n" +
		"then stores the midpoint as the liveness threshold in the config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		client := vision.NewClient(cfg.DetectorURL)
		monitor := vision.NewMonitor(client, client, vision.MonitorConfig{
			EARThreshold:      cfg.EARThreshold,
			PollInterval:      cfg.LivenessPollInterval,
			ConsecutiveFrames: 1,
		})

		ctx := cmd.Context()
		if err := monitor.Start(ctx); err != nil {
			return fmt.Errorf("start camera: %w", err)
		}
		defer monitor.Stop()

		stdin := bufio.NewReader(os.Stdin)

		fmt.Println("Look at the camera with your eyes OPEN and press Enter.")
		if _, err := stdin.ReadString('\n'); err != nil {
			return err
		}
		open, err := sampleMeanEAR(ctx, monitor)
		if err != nil {
			return err
		}
		fmt.Printf("Eyes open:   mean EAR %.3f\n", open)

		fmt.Println("Now CLOSE your eyes and press Enter.")
		if _, err := stdin.ReadString('\n'); err != nil {
			return err
		}
		closed, err := sampleMeanEAR(ctx, monitor)
		if err != nil {
			return err
		}
		fmt.Printf("Eyes closed: mean EAR %.3f\n", closed)

		if open <= closed {
			return fmt.Errorf("open-eye EAR (%.3f) not above closed-eye EAR (%.3f), calibration aborted", open, closed)
		}

		threshold := (open + closed) / 2
		cfg.EARThreshold = threshold

		path, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		if err := cfg.Save(path); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Printf("Threshold %.3f written to %s\n", threshold, path)
		return nil
	},
}

// sampleMeanEAR takes a burst of frames and averages the readings where a
// face was found. Faceless frames report EAR 0 and would drag the mean down.
func sampleMeanEAR(ctx context.Context, monitor *vision.Monitor) (float64, error) {
	var sum float64
	var n int
	for i := 0; i < calibrateSamples; i++ {
		r := monitor.Sample(ctx)
		if r.EAR > 0 {
			sum += r.EAR
			n++
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	if n == 0 {
		return 0, fmt.Errorf("no face detected, check the camera and detector service")
	}
	return sum / float64(n), nil
}
