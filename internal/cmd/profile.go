package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
)

// ProfileCmd returns the `nebula-tags profile` command group.
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileSetCmd())
	addTimeoutFlag(cmd)
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(c *cobra.Command, _ []string) error {
			sess, err := openSession(c)
			if err != nil {
				return err
			}
			defer sess.Close()

			p, err := sess.remote.Profile(c.Context())
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			fmt.Fprintf(out, "name: %s\n", p.Name)
			fmt.Fprintf(out, "description: %s\n", p.Description)
			return nil
		},
	}
}

func profileSetCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update your name or description",
		RunE: func(c *cobra.Command, _ []string) error {
			nameSet := c.Flags().Changed("name")
			descSet := c.Flags().Changed("description")
			if !nameSet && !descSet {
				return fmt.Errorf("nothing to update: pass --name or --description")
			}
			return runEdit(c, func(s *tagedit.Store, initial tagedit.Initial) error {
				p := initial.Profile
				if nameSet {
					p.Name = name
				}
				if descSet {
					p.Description = description
				}
				return s.UpdateProfile(p)
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "profile description")
	return cmd
}
