package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all contacts",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	svc, err := funnelService()
	if err != nil {
		return err
	}

	if err := svc.Reset(context.Background()); err != nil {
		return err
	}

	fmt.Println("Data store reset. All contacts removed.")
	return nil
}
