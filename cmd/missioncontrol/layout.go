package main

import (
	"fmt"
	"os"

	"missioncontrol/internal/repository"
	"missioncontrol/pkg/schema"

	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect or create the community layout file",
}

var layoutCheckCmd = &cobra.Command{
	Use:   "check [layout-file]",
	Short: "Validate a layout file (defaults to $MC_LAYOUT or layout.yaml)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLayoutCheck,
}

var layoutInitForce bool

var layoutInitCmd = &cobra.Command{
	Use:   "init [layout-file]",
	Short: "Write the default layout (.yaml, .toml or .json)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLayoutInit,
}

func init() {
	layoutInitCmd.Flags().BoolVar(&layoutInitForce, "force", false, "Overwrite an existing file")
	layoutCmd.AddCommand(layoutCheckCmd, layoutInitCmd)
}

func layoutPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	if p := os.Getenv("MC_LAYOUT"); p != "" {
		return p
	}
	return "layout.yaml"
}

func runLayoutCheck(cmd *cobra.Command, args []string) error {
	path := layoutPath(args)
	layout, err := repository.NewRepository(path).ReadLayout()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: valid\n", path)
	fmt.Fprintf(out, "  guild:              %s\n", layout.GuildID)
	fmt.Fprintf(out, "  memberships:        %d\n", len(layout.Memberships))
	fmt.Fprintf(out, "  roles:              %d\n", len(layout.Roles))
	fmt.Fprintf(out, "  projects:           %d\n", len(layout.Projects))
	fmt.Fprintf(out, "  channel categories: %d\n", len(layout.ChannelCategories))
	fmt.Fprintf(out, "  excluded channels:  %d\n", len(layout.ExcludedChannels))
	for _, n := range []struct {
		name string
		size int
	}{{"roles", len(layout.Roles)}, {"projects", len(layout.Projects)}} {
		if n.size > layout.MaxListSize {
			fmt.Fprintf(out, "  warning: %d %s exceed max_list_size %d\n", n.size, n.name, layout.MaxListSize)
		}
	}
	return nil
}

func runLayoutInit(cmd *cobra.Command, args []string) error {
	path := layoutPath(args)
	if _, err := os.Stat(path); err == nil && !layoutInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := repository.NewRepository(path).WriteLayout(schema.DefaultLayout()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default layout to %s\n", path)
	return nil
}
