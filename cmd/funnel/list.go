package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/speakergym/funnel-tracker/internal/domain"
	"github.com/speakergym/funnel-tracker/internal/services"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Long: `List contacts with their stage markers, in the order they were added.

Examples:
  funnel list
  funnel list --filter=joined
  funnel list --filter=contact_submitted`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFilter string

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "only show contacts at a specific stage (joined, challenge, contact_submitted)")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := services.ParseStageFilter(listFilter)
	if errors.Is(err, services.ErrUnknownFilter) {
		return fmt.Errorf("invalid --filter value %q (expected joined, challenge or contact_submitted)", listFilter)
	}
	if err != nil {
		return err
	}

	svc, err := funnelService()
	if err != nil {
		return err
	}

	contacts, err := svc.List(context.Background(), filter)
	if err != nil {
		return err
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found.")
		return nil
	}

	for _, contact := range contacts {
		fmt.Println(formatContactLine(contact))
	}
	return nil
}

// formatContactLine renders one list row: the name, the three stage markers,
// and a notes suffix when notes are present.
func formatContactLine(c domain.Contact) string {
	markers := []string{
		stageMarker(c.Joined, "joined"),
		stageMarker(c.Challenge, "challenge"),
		stageMarker(c.ContactSubmitted, "90-day contact"),
	}
	notes := ""
	if c.Notes != "" {
		notes = " | notes: " + c.Notes
	}
	return fmt.Sprintf("- %s (%s)%s", c.Name, strings.Join(markers, ", "), notes)
}

func stageMarker(done bool, label string) string {
	if done {
		return "✔ " + label
	}
	return "✖ " + label
}
