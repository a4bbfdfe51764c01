package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Enable or disable an alarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		enabled, err := s.AlarmRepo().ToggleEnabled(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("toggle alarm: %w", err)
		}
		if enabled {
			fmt.Println("Alarm enabled")
		} else {
			fmt.Println("Alarm disabled")
		}
		return nil
	},
}
