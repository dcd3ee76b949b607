package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/speakergym/funnel-tracker/internal/services"
)

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update an existing contact",
	Long: `Update the stage flags or notes of an existing contact.

Each stage has a paired flag: --joined marks the stage, --no-joined clears
it, and leaving both out keeps the stored value. --notes replaces the notes.

Examples:
  funnel update "Alice Papadaki" --joined
  funnel update "Alice Papadaki" --challenge --notes="crushed day 3"
  funnel update "Alice Papadaki" --no-contact-submitted`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyContactUpdate(args[0], contactUpdateFromFlags(cmd.Flags()))
	},
}

func init() {
	registerUpdateFlags(updateCmd.Flags())

	updateCmd.MarkFlagsMutuallyExclusive("joined", "no-joined")
	updateCmd.MarkFlagsMutuallyExclusive("challenge", "no-challenge")
	updateCmd.MarkFlagsMutuallyExclusive("contact-submitted", "no-contact-submitted")

	rootCmd.AddCommand(updateCmd)
}

// registerUpdateFlags declares the update flag vocabulary. The stage flags
// are plain bools; what matters is whether each one was provided at all,
// which contactUpdateFromFlags reads back via Changed.
func registerUpdateFlags(flags *pflag.FlagSet) {
	flags.Bool("joined", false, "mark as joined the community")
	flags.Bool("no-joined", false, "mark as not joined")
	flags.Bool("challenge", false, "mark as took the 7-day challenge")
	flags.Bool("no-challenge", false, "mark as not taking the 7-day challenge")
	flags.Bool("contact-submitted", false, "mark as submitted contact for the 90-day program")
	flags.Bool("no-contact-submitted", false, "mark as not submitted contact")
	flags.String("notes", "", "replace notes for the contact")
}

// contactUpdateFromFlags maps the paired stage flags onto tri-state pointers.
// A pair left untouched stays nil so the stored value survives the update.
func contactUpdateFromFlags(flags *pflag.FlagSet) services.ContactUpdate {
	upd := services.ContactUpdate{}
	stage := func(dst **bool, name string, value bool) {
		if flags.Changed(name) {
			v := value
			*dst = &v
		}
	}
	stage(&upd.Joined, "joined", true)
	stage(&upd.Joined, "no-joined", false)
	stage(&upd.Challenge, "challenge", true)
	stage(&upd.Challenge, "no-challenge", false)
	stage(&upd.ContactSubmitted, "contact-submitted", true)
	stage(&upd.ContactSubmitted, "no-contact-submitted", false)
	if flags.Changed("notes") {
		notes, _ := flags.GetString("notes")
		upd.Notes = &notes
	}
	return upd
}

// applyContactUpdate runs one update against the funnel store and prints the
// user-facing outcome.
func applyContactUpdate(name string, upd services.ContactUpdate) error {
	svc, err := funnelService()
	if err != nil {
		return err
	}

	contact, err := svc.Update(context.Background(), name, upd)
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		fmt.Printf("Contact '%s' not found. Add them first.\n", name)
		return nil
	case errors.Is(err, services.ErrNoChanges):
		fmt.Println("No updates were applied.")
		return nil
	case err != nil:
		return err
	}

	fmt.Printf("Updated contact: %s\n", contact.Name)
	return nil
}
