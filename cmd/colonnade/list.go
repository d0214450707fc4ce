package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"colonnade/internal/fs"
)

// listCmd prints a single directory listing to stdout for scripts.
func listCmd() *cobra.Command {
	var all bool
	var long bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "Print a directory listing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore()
			if err != nil {
				return err
			}
			if all {
				c.lister.SetShowHidden(true)
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			entries, err := c.lister.List(path)
			if err != nil {
				return err
			}

			for _, e := range entries {
				if !long {
					name := e.Name
					if e.IsDir() {
						name += "/"
					}
					fmt.Fprintln(os.Stdout, name)
					continue
				}
				size := "-"
				if e.Kind == fs.KindFile {
					size = humanize.Bytes(uint64(e.Size))
				}
				fmt.Fprintf(os.Stdout, "%-10s %9s %s %s\n",
					e.Kind, size, e.ModTime.Format("2006-01-02 15:04"), e.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden entries")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show kind, size and modification time")
	return cmd
}
