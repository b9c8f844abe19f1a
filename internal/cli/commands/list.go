package commands

import (
	"github.com/spf13/cobra"

	"github.com/kobaltcore/renutil/internal/cli/ui"
)

var (
	// List flags
	listCount     int
	listInstalled bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List Ren'Py versions",
	Long: `List available or installed Ren'Py versions.

Examples:
  # Show the five most recent available versions
  renutil list

  # Show everything currently in the local cache
  renutil list --installed -n 0`,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listCount, "count", "n", 5, "Number of versions to show (0 shows all)")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "Only show installed versions")
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}

	if listInstalled {
		versions, err := manager.List(cmd.Context(), listCount)
		if err != nil {
			return err
		}
		ui.OutputLine("Installed versions:")
		ui.PrintInstalledList(versions)
		return nil
	}

	releases, err := manager.Available(cmd.Context(), listCount)
	if err != nil {
		return err
	}
	ui.OutputLine("Available versions:")
	ui.PrintAvailableList(releases)
	return nil
}
