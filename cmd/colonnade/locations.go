package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"colonnade/internal/fs"
)

// locationsCmd prints the quick-navigation places this host offers.
func locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "Print the quick-navigation locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, loc := range fs.Locations() {
				fmt.Fprintf(os.Stdout, "%-12s %s\n", loc.Label, loc.Path)
			}
			return nil
		},
	}
}
