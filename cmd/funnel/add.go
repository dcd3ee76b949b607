package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/speakergym/funnel-tracker/internal/services"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new contact",
	Long: `Add a new contact to the funnel.

Names are unique ignoring case and surrounding whitespace; adding a name
that already exists leaves the store as it was.

Examples:
  funnel add "Alice Papadaki"
  funnel add "Alice Papadaki" --notes="met at tuesday open mic"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var addNotes string

func init() {
	addCmd.Flags().StringVar(&addNotes, "notes", "", "optional notes about the contact")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	svc, err := funnelService()
	if err != nil {
		return err
	}

	contact, err := svc.Add(context.Background(), name, addNotes)
	if errors.Is(err, services.ErrContactExists) {
		fmt.Printf("Contact '%s' already exists. Use the update command instead.\n", name)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Added contact: %s\n", contact.Name)
	return nil
}
