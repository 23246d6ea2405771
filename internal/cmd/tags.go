package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-tags/cli/internal/tagedit"
)

// TagsCmd returns the `nebula-tags tags` command group.
func TagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage your tags",
	}
	cmd.AddCommand(tagsListCmd())
	cmd.AddCommand(tagsAddCmd())
	cmd.AddCommand(tagsCreateCmd())
	cmd.AddCommand(tagsStoryCmd())
	cmd.AddCommand(tagsRankCmd())
	cmd.AddCommand(tagsRemoveCmd())
	addTimeoutFlag(cmd)
	return cmd
}

func tagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your tags grouped by relevance",
		RunE: func(c *cobra.Command, _ []string) error {
			sess, err := openSession(c)
			if err != nil {
				return err
			}
			defer sess.Close()

			initial, err := sess.remote.FetchInitial(c.Context())
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			if len(initial.Associations) == 0 {
				fmt.Fprintln(out, "no tags found")
				return nil
			}

			st := tagedit.NewState()
			st = tagedit.Reduce(st, tagedit.AssociationsLoaded{Associations: initial.Associations})
			view := tagedit.Project(st)
			for b := tagedit.MaxRelevance; b >= tagedit.MinRelevance; b-- {
				if len(view.Buckets[b]) == 0 {
					continue
				}
				fmt.Fprintf(out, "relevance %d\n", b)
				for _, a := range view.Buckets[b] {
					if a.Story == "" {
						fmt.Fprintf(out, "  %s\n", a.TagID)
						continue
					}
					fmt.Fprintf(out, "  %s - %s\n", a.TagID, oneLine(a.Story))
				}
			}
			return nil
		},
	}
}

func tagsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <tag>",
		Short: "Add an existing tag to your list",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runEdit(c, func(s *tagedit.Store, _ tagedit.Initial) error {
				return s.AddTag(args[0])
			})
		},
	}
}

func tagsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <tag>",
		Short: "Create a new tag and add it to your list",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runEdit(c, func(s *tagedit.Store, _ tagedit.Initial) error {
				return s.CreateTagAndAdd(args[0])
			})
		},
	}
}

func tagsStoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "story <tag> <story>",
		Short: "Set the story behind a tag",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			story := strings.Join(args[1:], " ")
			return runEdit(c, func(s *tagedit.Store, initial tagedit.Initial) error {
				a, err := findTag(initial, args[0])
				if err != nil {
					return err
				}
				return s.UpdateStory(a.UserID, a.TagID, story)
			})
		},
	}
}

func tagsRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <tag> <0-5>",
		Short: "Set how relevant a tag is to you",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			relevance, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q", tagedit.ErrInvalidRelevance, args[1])
			}
			return runEdit(c, func(s *tagedit.Store, initial tagedit.Initial) error {
				a, err := findTag(initial, args[0])
				if err != nil {
					return err
				}
				return s.SetRelevance(a.UserID, a.TagID, relevance)
			})
		},
	}
}

func tagsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <tag>",
		Aliases: []string{"remove"},
		Short:   "Remove a tag from your list",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			err := runEdit(c, func(s *tagedit.Store, initial tagedit.Initial) error {
				a, err := findTag(initial, args[0])
				if err != nil {
					return err
				}
				return s.Remove(a)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func runEdit(c *cobra.Command, fn func(*tagedit.Store, tagedit.Initial) error) error {
	sess, err := openSession(c)
	if err != nil {
		return err
	}
	defer sess.Close()
	return sess.edit(c.Context(), c.OutOrStdout(), fn)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
