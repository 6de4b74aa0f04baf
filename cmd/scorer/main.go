// Command scorer replays a file of deliveries offline and prints the
// resulting innings scorecard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "scorer",
		Short:         "Offline cricket scoring tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newReplayCommand(os.Stdout), newProfilesCommand(os.Stdout))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
