package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"colonnade/internal/analysis"
	"colonnade/internal/config"
	"colonnade/internal/fs"
	"colonnade/internal/log"
	"colonnade/internal/nav"
	"colonnade/internal/shell"
	"colonnade/internal/trash"
	"colonnade/internal/tui"
	"colonnade/internal/watch"
)

var (
	configPath string
	verbose    bool
)

// core bundles the wired application services the commands share.
type core struct {
	cfg    *config.Config
	lister *fs.Lister
	insp   *analysis.Inspector
	disp   *shell.Dispatcher
	ctrl   *nav.Controller
}

// buildCore loads configuration and assembles the lister, trash,
// dispatcher and controller on top of it.
func buildCore() (*core, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	log.SetDebug(verbose)

	lister, err := fs.NewLister(cfg.Browser.HidePatterns, fs.WithShowHidden(cfg.Browser.ShowHidden))
	if err != nil {
		return nil, err
	}
	tr, err := trash.New(cfg.Paths.Trash)
	if err != nil {
		return nil, fmt.Errorf("resolving trash directory: %w", err)
	}
	insp := analysis.NewWithConfig(cfg)
	disp := shell.NewDispatcher(lister, tr, insp)
	ctrl, err := nav.New(lister, disp, cfg)
	if err != nil {
		return nil, err
	}
	return &core{cfg: cfg, lister: lister, insp: insp, disp: disp, ctrl: ctrl}, nil
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "colonnade [path]",
		Short:   "A Miller-columns file navigator",
		Long:    `Colonnade browses the filesystem as Miller columns: one column per directory level, each column listing the children of the entry selected to its left.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCore()
			if err != nil {
				return err
			}

			// The terminal owns stdout while the TUI runs; route the log
			// to a file instead.
			if logPath, err := c.cfg.LogPath(); err == nil {
				if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
					log.Configure(log.WithOutput(os.Stderr), log.WithFile(logPath))
				}
			}

			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			if err := c.ctrl.Start(root); err != nil {
				return fmt.Errorf("no accessible starting directory: %w", err)
			}

			watcher, err := watch.New()
			if err != nil {
				return err
			}
			defer watcher.Stop()

			m := tui.New(c.ctrl, c.disp, c.insp, c.lister, watcher, c.cfg)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/colonnade/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(guiCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(locationsCmd())
	return cmd
}
