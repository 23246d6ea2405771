package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-tags/cli/internal/api"
	"github.com/gravitrone/nebula-tags/cli/internal/config"
)

// RunInteractiveLogin prompts for username, calls login API, and persists config.
// An empty baseURL keeps the default server.
func RunInteractiveLogin(ctx context.Context, in io.Reader, out io.Writer, baseURL string) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	if username == "" {
		return fmt.Errorf("username is required")
	}

	cfg := &config.Config{BaseURL: baseURL, VimKeys: true}
	client := api.NewConfiguredClient(cfg.BaseURL, "", cfg.RequestTimeout())
	resp, err := client.Login(ctx, username)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Confirm the new key works before saving it.
	client.SetAPIKey(resp.APIKey)
	me, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("verify login: %w", err)
	}

	cfg.APIKey = resp.APIKey
	cfg.UserID = resp.UserID
	if cfg.UserID == "" {
		cfg.UserID = me.ID
	}
	cfg.Username = resp.Username

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in as %s\n", resp.Username)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `nebula-tags login` command.
func LoginCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a Nebula server",
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveLogin(c.Context(), os.Stdin, c.OutOrStdout(), server)
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "server base URL (default "+config.DefaultBaseURL+")")
	return cmd
}
