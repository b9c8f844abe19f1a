package commands

import (
	"github.com/spf13/cobra"

	"github.com/kobaltcore/renutil/internal/cli/ui"
)

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a version of Ren'Py",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	v, err := parseVersionArg(args[0])
	if err != nil {
		return err
	}

	manager, err := createManager()
	if err != nil {
		return err
	}

	if err := manager.Install(cmd.Context(), v); err != nil {
		return err
	}

	ui.Success("Installed %s", v)
	return nil
}
