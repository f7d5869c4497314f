package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/whales-names/whales/config"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/ui"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the entries of the managed block",
		Args:    cobra.NoArgs,
		GroupID: refGroup("hosts", "Hosts Commands"),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := updater()
			if err != nil {
				return err
			}
			entries, err := u.Entries()
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []hosts.Entry{}
			}

			out := cmd.OutOrStdout()
			asJSON, _ := cmd.Flags().GetBool("json")
			asYAML, _ := cmd.Flags().GetBool("yaml")
			switch {
			case asJSON:
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case asYAML:
				data, err := yaml.Marshal(entries)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			default:
				rows := lo.Map(entries, func(e hosts.Entry, _ int) []string {
					return []string{e.Address, strings.Join(e.Names, " ")}
				})
				fmt.Fprint(out, ui.Table(rows, ui.AddressStyle))
			}
			return nil
		},
	}
	listCmd.Flags().Bool("json", false, "Output in JSON format")
	listCmd.Flags().Bool("yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	config.RootCommand.AddCommand(listCmd, &cobra.Command{
		Use:     "path",
		Short:   "Print the hosts file that would be managed",
		Args:    cobra.NoArgs,
		GroupID: refGroup("hosts", "Hosts Commands"),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := updater()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.Path())
			return nil
		},
	})
}
