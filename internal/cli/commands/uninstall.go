package commands

import (
	"github.com/spf13/cobra"

	"github.com/kobaltcore/renutil/internal/cli/ui"
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <version>",
	Aliases: []string{"remove"},
	Short:   "Uninstall an installed version of Ren'Py",
	Args:    cobra.ExactArgs(1),
	RunE:    runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	v, err := parseVersionArg(args[0])
	if err != nil {
		return err
	}

	manager, err := createManager()
	if err != nil {
		return err
	}

	if err := manager.Uninstall(cmd.Context(), v); err != nil {
		return err
	}

	ui.Success("Uninstalled %s", v)
	return nil
}
