package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an alarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.AlarmRepo().Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete alarm: %w", err)
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}
