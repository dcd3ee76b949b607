package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show counts for each stage",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	svc, err := funnelService()
	if err != nil {
		return err
	}

	sum, err := svc.Summary(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Funnel summary:")
	fmt.Printf("- Total contacted: %d\n", sum.Total)
	fmt.Printf("- Joined community: %d\n", sum.Joined)
	fmt.Printf("- Took 7-day challenge: %d\n", sum.Challenge)
	fmt.Printf("- Submitted contact for 90-day program: %d\n", sum.ContactSubmitted)
	return nil
}
