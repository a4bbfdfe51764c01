package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/wakey/internal/alarm"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List alarms",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		alarms, err := s.AlarmRepo().List(context.Background())
		if err != nil {
			return fmt.Errorf("list alarms: %w", err)
		}
		if len(alarms) == 0 {
			fmt.Println("No alarms. Add one with: wakey add 07:30 Work")
			return nil
		}

		fmt.Printf("%-36s  %-5s  %-5s  %s\n", "ID", "Time", "State", "Label")
		for _, a := range alarms {
			state := "off"
			if a.Enabled {
				state = "on"
			}
			fmt.Printf("%-36s  %-5s  %-5s  %s\n", a.ID, a.Time, state, a.Label)
		}

		if next, at, ok := alarm.Next(alarms, time.Now()); ok {
			fmt.Printf("\nNext: %s %s (in %s)\n", next.Time, next.Label, time.Until(at).Round(time.Minute))
		}
		return nil
	},
}
