package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/whales-names/whales/config"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/manifest"
	"github.com/whales-names/whales/retry"
	"github.com/whales-names/whales/util"
	"github.com/whales-names/whales/xlog"

	"github.com/spf13/cobra"
)

// applier keeps the hosts file in sync with manifest reloads.
type applier struct {
	ctx     context.Context
	policy  retry.Policy
	logger  *xlog.Logger
	updater func(*manifest.Manifest) (*hosts.Updater, error)
}

// retryable marks the update errors that retrying can not fix as permanent.
func retryable(err error) error {
	if os.IsPermission(err) || errors.Is(err, hosts.ErrFileNotFound) {
		return retry.Permanent(err)
	}
	return err
}

func (a applier) apply(m *manifest.Manifest, err error) {
	if err != nil {
		a.logger.Warn().Stack().Err(xlog.WrapStackError(err)).Msg("Failed to load manifest, keeping the current entries")
		return
	}
	u, err := a.updater(m)
	if err != nil {
		a.logger.Error().Err(err).Msg("Invalid settings")
		return
	}
	entries := m.HostEntries()
	err = a.policy.Run(a.ctx, func(attempt int) error {
		err := u.Update(entries)
		if err != nil {
			a.logger.Debug().Err(err).Int("attempt", attempt).Msg("Update failed")
		}
		return retryable(err)
	})
	if err != nil {
		if a.ctx.Err() == nil {
			a.logger.Error().Stack().Err(xlog.WrapStackError(err)).Str("path", u.Path()).Msg("Failed to update hosts file")
		}
		return
	}
	a.logger.Info().Str("path", u.Path()).Int("entries", len(entries)).Msg("Hosts file updated")
}

func init() {
	watchCmd := &cobra.Command{
		Use:     "watch [manifest]",
		Short:   "Apply a manifest now and again whenever it changes",
		Args:    cobra.MaximumNArgs(1),
		GroupID: refGroup("daemon", "Daemon Commands"),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := config.AcquireSession()
			if err != nil {
				return err
			}
			defer session.Release()

			c, err := settings()
			if err != nil {
				return err
			}
			path, err := manifestPath(args)
			if err != nil {
				return err
			}
			if d, _ := cmd.Flags().GetDuration("debounce"); d > 0 {
				c.Debounce = util.Duration(d)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dom := xlog.NewDomain("watch")
			ctx = xlog.WithDomain(ctx, dom)
			dom.Logger().Info().Str("manifest", path).Stringer("debounce", c.Debounce).Msg("Watching")

			a := applier{
				ctx:     ctx,
				policy:  retry.Basic(),
				logger:  dom.Sub("apply").Logger(),
				updater: manifestUpdater,
			}
			err = manifest.Watch(ctx, path, c.Debounce.Duration(), a.apply)
			xlog.InfoC(ctx).Msg("Stopped")
			return err
		},
	}
	watchCmd.Flags().Duration("debounce", 0, "Quiet period before applying a change (default from settings)")
	config.RootCommand.AddCommand(watchCmd)
}
