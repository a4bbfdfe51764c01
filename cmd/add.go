package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <HH:MM> [label...]",
	Short: "Add an alarm",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clockTime, err := alarm.ParseClockTime(args[0])
		if err != nil {
			return err
		}
		label := strings.Join(args[1:], " ")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		id, err := s.AlarmRepo().Create(context.Background(), clockTime, label)
		if err != nil {
			return fmt.Errorf("create alarm: %w", err)
		}

		a, err := s.AlarmRepo().Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("read back alarm: %w", err)
		}
		fmt.Printf("Added %s  %s  (%s)\n", a.Time, a.Label, a.ID)
		return nil
	},
}
