package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-tags/cli/internal/api"
	"github.com/gravitrone/nebula-tags/cli/internal/config"
	"github.com/gravitrone/nebula-tags/cli/internal/logging"
	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
)

// session bundles what every authenticated command needs.
type session struct {
	cfg    *config.Config
	remote *tagedit.Remote
	logger *slog.Logger
	logs   io.Closer
}

// timeoutFlag overrides the configured request timeout for one command.
const timeoutFlag = "timeout"

func addTimeoutFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Duration(timeoutFlag, 0, "request timeout for this command (default from config)")
}

func openSession(c *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("not logged in: %w", err)
	}
	logger, logs, err := logging.New(cfg.LogFile, cfg.Level())
	if err != nil {
		return nil, err
	}
	client := api.NewConfiguredClient(cfg.BaseURL, cfg.APIKey, cfg.RequestTimeout())
	if timeout, err := c.Flags().GetDuration(timeoutFlag); err == nil && timeout > 0 {
		client = client.WithTimeout(timeout)
	}
	return &session{
		cfg:    cfg,
		remote: tagedit.NewRemote(client),
		logger: logger,
		logs:   logs,
	}, nil
}

func (s *session) Close() error {
	return s.logs.Close()
}

// edit seeds a Store with the user's current tags, runs fn against it and
// waits for every remote operation to settle. Info notifications are written
// to out; any error notification fails the command.
func (s *session) edit(ctx context.Context, out io.Writer, fn func(*tagedit.Store, tagedit.Initial) error) error {
	initial, err := s.remote.FetchInitial(ctx)
	if err != nil {
		return err
	}

	var (
		mu    sync.Mutex
		notes []tagedit.Notification
	)
	store := tagedit.NewStore(tagedit.StoreConfig{
		Service: s.remote,
		Logger:  s.logger,
		Context: ctx,
		Seed:    &initial,
		Notifier: tagedit.NotifierFunc(func(n tagedit.Notification) {
			mu.Lock()
			notes = append(notes, n)
			mu.Unlock()
		}),
	})

	runErr := fn(store, initial)
	_ = store.Close()
	if runErr != nil {
		return runErr
	}

	mu.Lock()
	defer mu.Unlock()
	var failed error
	for _, n := range notes {
		if n.Severity == tagedit.SeverityError {
			if failed == nil {
				failed = errors.New(n.Message)
			}
			continue
		}
		fmt.Fprintln(out, n.Message)
	}
	return failed
}

func findTag(initial tagedit.Initial, tagID string) (tagedit.Association, error) {
	for _, a := range initial.Associations {
		if a.TagID == tagID {
			return a, nil
		}
	}
	return tagedit.Association{}, fmt.Errorf("tag %s is not in your list", tagID)
}
