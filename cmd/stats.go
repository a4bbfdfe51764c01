package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wake-up statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		st, err := s.Events().Stats(context.Background())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		if st.Rings == 0 {
			fmt.Println("No ring sessions recorded yet.")
			return nil
		}

		fmt.Printf("Rings:    %d\n", st.Rings)
		fmt.Printf("Stopped:  %d\n", st.Stops)
		fmt.Printf("Snoozed:  %d\n", st.Snoozes)
		if st.MeanTimeToClose > 0 {
			fmt.Printf("Avg wake-up time: %s\n", st.MeanTimeToClose.Round(time.Second))
		}
		return nil
	},
}
