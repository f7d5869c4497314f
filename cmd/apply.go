package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/whales-names/whales/config"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/manifest"
	"github.com/whales-names/whales/ui"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func bodyLines(body string) []string {
	return lo.FilterMap(strings.Split(body, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimRight(line, "\r")
		return line, strings.TrimSpace(line) != ""
	})
}

// diffBodies renders the managed lines as a unified style diff body.
func diffBodies(p hosts.Plan) string {
	oldLines, newLines := bodyLines(p.OldBody), bodyLines(p.NewBody)
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", p.Path, p.Path)
	for _, line := range oldLines {
		if lo.Contains(newLines, line) {
			b.WriteString(" " + line + "\n")
		} else {
			b.WriteString("-" + line + "\n")
		}
	}
	for _, line := range newLines {
		if !lo.Contains(oldLines, line) {
			b.WriteString("+" + line + "\n")
		}
	}
	return b.String()
}

func printPlan(cmd *cobra.Command, p hosts.Plan) {
	out := cmd.OutOrStdout()
	switch {
	case !p.HasRegion:
		fmt.Fprintln(out, ui.FaintStyle.Render("# managed block will be created"))
	case !p.Changed():
		fmt.Fprintln(out, ui.FaintStyle.Render("# no changes"))
		return
	}
	diff := diffBodies(p)
	if *config.Dumb || out != os.Stdout {
		fmt.Fprint(out, diff)
	} else if err := quick.Highlight(out, diff, "diff", "terminal256", "monokai"); err != nil {
		fmt.Fprint(out, diff)
	}
}

func runApply(cmd *cobra.Command, args []string, dry bool) error {
	path, err := manifestPath(args)
	if err != nil {
		return err
	}
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	u, err := manifestUpdater(m)
	if err != nil {
		return err
	}
	entries := m.HostEntries()

	if dry {
		p, err := u.Plan(entries)
		if err != nil {
			return err
		}
		printPlan(cmd, p)
		return nil
	}
	if err := u.Update(entries); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderOkLine(fmt.Sprintf("Updated %s (%d entries)", u.Path(), len(entries))))
	return nil
}

func init() {
	applyCmd := &cobra.Command{
		Use:     "apply [manifest]",
		Short:   "Replace the managed block with the entries of a manifest",
		Args:    cobra.MaximumNArgs(1),
		GroupID: refGroup("hosts", "Hosts Commands"),
		RunE: func(cmd *cobra.Command, args []string) error {
			dry, _ := cmd.Flags().GetBool("dry-run")
			return runApply(cmd, args, dry)
		},
	}
	applyCmd.Flags().BoolP("dry-run", "n", false, "Show the changes without writing them")

	config.RootCommand.AddCommand(applyCmd, &cobra.Command{
		Use:     "plan [manifest]",
		Short:   "Show how apply would change the managed block",
		Args:    cobra.MaximumNArgs(1),
		GroupID: refGroup("hosts", "Hosts Commands"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, true)
		},
	})
}
