package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"colonnade/internal/gui"
)

// guiCmd launches the desktop window instead of the terminal UI.
func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [path]",
		Short: "Launch the desktop interface",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore()
			if err != nil {
				return err
			}
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			if err := c.ctrl.Start(root); err != nil {
				return fmt.Errorf("no accessible starting directory: %w", err)
			}
			return gui.Run(gui.Deps{
				Ctrl:   c.ctrl,
				Disp:   c.disp,
				Lister: c.lister,
				Cfg:    c.cfg,
			})
		},
	}
}
