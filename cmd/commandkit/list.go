package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"commandkit/core/command"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List registered commands by category",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			all, _ := cmd.Flags().GetBool("all")

			rt, err := newRuntime(configPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer rt.Close()

			printCommands(cmd.OutOrStdout(), rt.registry, all)
			return nil
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Include hidden commands")
	return cmd
}

// printCommands writes commands grouped by category in sorted order.
func printCommands(w io.Writer, registry *command.Registry, all bool) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	groups := registry.ByCategory()
	if all {
		groups = registry.Grouped(true)
	}

	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	for _, category := range categories {
		fmt.Fprintf(w, "%s:\n", cyan(category))
		for _, cmd := range groups[category] {
			fmt.Fprintf(w, "  %-16s %s%s\n", cmd.ID(), cmd.Text(nil), flags(cmd, yellow))
		}
	}
}

func flags(cmd command.Command, paint func(a ...any) string) string {
	var out string
	if !cmd.IsEnabled(nil) {
		out += " " + paint("[disabled]")
	}
	if !cmd.IsVisible(nil) {
		out += " " + paint("[hidden]")
	}
	if cmd.IsChecked(nil) {
		out += " " + paint("[checked]")
	}
	return out
}
