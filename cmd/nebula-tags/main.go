package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-tags/cli/internal/api"
	"github.com/gravitrone/nebula-tags/cli/internal/cmd"
	"github.com/gravitrone/nebula-tags/cli/internal/config"
	"github.com/gravitrone/nebula-tags/cli/internal/logging"
	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
	"github.com/gravitrone/nebula-tags/cli/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nebula-tags",
		Short: "Nebula tags - rank the tags that describe you",
		Long:  "Edit the tags on your Nebula profile: add, create, rank, tell their story and remove them.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.TagsCmd())
	root.AddCommand(cmd.ProfileCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println("not logged in. run 'nebula-tags login' first.")
		}
		return err
	}

	logger, logs, err := logging.New(cfg.LogFile, cfg.Level())
	if err != nil {
		return err
	}
	defer logs.Close()

	client := api.NewConfiguredClient(cfg.BaseURL, cfg.APIKey, cfg.RequestTimeout())
	remote := tagedit.NewRemote(client)
	notifier := ui.NewChannelNotifier(64, logger)
	store := tagedit.NewStore(tagedit.StoreConfig{
		Service:  remote,
		Notifier: notifier,
		Logger:   logger,
	})

	app := ui.NewApp(ui.Deps{
		Editor:        store,
		Load:          remote.FetchInitial,
		Snapshots:     store.Subscribe(),
		Notifications: notifier.C(),
		Username:      cfg.Username,
		VimKeys:       cfg.VimKeys,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, runErr := p.Run()

	// The editor is gone; drop its state, then let in-flight edits land.
	if err := store.Reset(); err != nil {
		logger.Error("reset store", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("close store", "error", err)
	}
	if runErr != nil {
		return fmt.Errorf("tui error: %w", runErr)
	}
	return nil
}
