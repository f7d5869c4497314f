package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/whales-names/whales/config"
	"github.com/whales-names/whales/hosts"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	getCmd := &cobra.Command{
		Use:     "get",
		Short:   "Get the stored settings",
		GroupID: refGroup("settings", "Settings Commands"),
	}
	setCmd := &cobra.Command{
		Use:     "set",
		Short:   "Change the stored settings",
		GroupID: refGroup("settings", "Settings Commands"),
	}
	dumpCmd := &cobra.Command{
		Use:   "all",
		Short: "Display all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Get()
			if err != nil {
				return err
			}
			var res []byte
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				res, err = json.MarshalIndent(c, "", "  ")
				res = append(res, '\n')
			} else {
				res, err = yaml.Marshal(c)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(res))
			return nil
		},
	}
	dumpCmd.Flags().Bool("json", false, "Output in JSON format")
	getCmd.AddCommand(dumpCmd)
	config.RootCommand.AddCommand(getCmd, setCmd)

	getset := func(name string, field func(*config.Config) *string, validate func(string) error) {
		setCmd.AddCommand(&cobra.Command{
			Use:   name + " [value]",
			Short: "Set the " + name + ", an empty value restores the default",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if validate != nil && args[0] != "" {
					if err := validate(args[0]); err != nil {
						return err
					}
				}
				return config.Update(func(c *config.Config) error {
					*field(c) = args[0]
					return nil
				})
			},
		})
		getCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: "Get the " + name,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := config.Get()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), *field(c))
				return nil
			},
		})
	}
	getset("hosts-file", func(c *config.Config) *string { return &c.HostsFile }, nil)
	getset("manifest", func(c *config.Config) *string { return &c.Manifest }, nil)
	getset("platform", func(c *config.Config) *string { return &c.Platform }, func(v string) error {
		var p hosts.Platform
		return p.UnmarshalText([]byte(v))
	})
	getset("write-mode", func(c *config.Config) *string { return &c.WriteMode }, func(v string) error {
		var m hosts.WriteMode
		return m.UnmarshalText([]byte(v))
	})

	setCmd.AddCommand(&cobra.Command{
		Use:   "debounce [duration]",
		Short: "Set the quiet period the watcher waits for before applying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Update(func(c *config.Config) error {
				return c.Debounce.Set(args[0])
			})
		},
	})
}
