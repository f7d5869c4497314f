package cmd

import (
	"io"

	"github.com/whales-names/whales/config"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/manifest"
	"github.com/whales-names/whales/revision"
	"github.com/whales-names/whales/ui"
	"github.com/whales-names/whales/xlog"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var logCloser io.Closer

func init() {
	config.RootCommand.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logCloser = xlog.Setup()
	}
	config.RootCommand.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	}
}

func refGroup(id, name string) string {
	if !config.RootCommand.ContainsGroup(id) {
		config.RootCommand.AddGroup(&cobra.Group{
			ID:    id,
			Title: name + ":",
		})
	}
	return id
}

// settings returns the persisted settings with the global flags applied.
func settings() (config.Config, error) {
	c, err := config.Get()
	if err != nil {
		return config.Config{}, err
	}
	return c.Effective(), nil
}

func newUpdater(c config.Config) (*hosts.Updater, error) {
	platform := hosts.CurrentPlatform()
	if c.Platform != "" {
		if err := platform.UnmarshalText([]byte(c.Platform)); err != nil {
			return nil, err
		}
	}
	var mode hosts.WriteMode
	if err := mode.UnmarshalText([]byte(c.WriteMode)); err != nil {
		return nil, err
	}
	return hosts.New(
		hosts.WithPath(c.HostsFile),
		hosts.WithPlatform(platform),
		hosts.WithWriteMode(mode),
	)
}

// updater builds the updater for the effective settings.
func updater() (*hosts.Updater, error) {
	c, err := settings()
	if err != nil {
		return nil, err
	}
	return newUpdater(c)
}

// manifestPath picks the manifest from the arguments or the settings.
func manifestPath(args []string) (string, error) {
	if len(args) != 0 {
		return manifest.Resolve(args[0]), nil
	}
	c, err := settings()
	if err != nil {
		return "", err
	}
	return manifest.Resolve(c.Manifest), nil
}

// manifestUpdater builds the updater for a manifest, which may name its own
// hosts file unless one is given on the command line.
func manifestUpdater(m *manifest.Manifest) (*hosts.Updater, error) {
	c, err := settings()
	if err != nil {
		return nil, err
	}
	if m.HostsFile != "" && !config.IsSet("hosts-file") {
		c.HostsFile = m.HostsFile
	}
	return newUpdater(c)
}

func Execute() {
	maxprocs.Set()
	config.RootCommand.Short += ui.FaintStyle.Render(" (" + revision.GetVersion() + ")")
	if err := config.RootCommand.Execute(); err != nil {
		ui.ExitWithError(err)
	}
}
