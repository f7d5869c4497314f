package cmd

import (
	"fmt"
	"strings"

	"github.com/whales-names/whales/config"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/ui"

	"github.com/spf13/cobra"
)

// edit rewrites the managed block with the result of f applied to the
// current entries.
func edit(cmd *cobra.Command, f func([]hosts.Entry) []hosts.Entry, msg string) error {
	u, err := updater()
	if err != nil {
		return err
	}
	entries, err := u.Entries()
	if err != nil {
		return err
	}
	entries = f(entries)
	if err := u.Update(entries); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderOkLine(msg))
	return nil
}

func init() {
	group := refGroup("hosts", "Hosts Commands")
	config.RootCommand.AddCommand(
		&cobra.Command{
			Use:     "add [address] [name...]",
			Short:   "Map names to an address, moving them from any other address",
			Args:    cobra.MinimumNArgs(2),
			GroupID: group,
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(cmd, func(entries []hosts.Entry) []hosts.Entry {
					return hosts.Merge(entries, args[0], args[1:]...)
				}, fmt.Sprintf("%s -> %s", strings.Join(args[1:], " "), args[0]))
			},
		},
		&cobra.Command{
			Use:     "remove [name...]",
			Aliases: []string{"rm"},
			Short:   "Remove names from the managed block",
			Args:    cobra.MinimumNArgs(1),
			GroupID: group,
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(cmd, func(entries []hosts.Entry) []hosts.Entry {
					return hosts.Remove(entries, args...)
				}, "Removed "+strings.Join(args, " "))
			},
		},
		&cobra.Command{
			Use:     "clear",
			Short:   "Empty the managed block, keeping its markers",
			Args:    cobra.NoArgs,
			GroupID: group,
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(cmd, func([]hosts.Entry) []hosts.Entry {
					return nil
				}, "Cleared")
			},
		},
	)
}
