package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yairfalse/merkki/extract"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List supported CloudTrail event names",
	Long: `List the CloudTrail event names Merkki classifies as resource
creation events. Events outside this list are skipped during a run.`,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	names := extract.NewRegistry().EventNames()

	fmt.Printf("Supported creation events (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("   %s\n", name)
	}
	return nil
}
