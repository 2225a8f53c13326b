package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the root command opens the GUI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commandkit",
		Short: "Command registry with buttons, menus and a command line",
		Long: `commandkit registers commands from YAML catalogs and binds them to
buttons, check boxes and menu items. The same commands can be listed and
executed from the command line.`,
		Example: `  # Open the window
  commandkit

  # Show the registered commands
  commandkit list

  # Execute a command with arguments
  commandkit exec file:save --arg path=notes.txt`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runGUI(configPath)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a JSON config file")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExecCmd())
	return rootCmd
}
