package commands

import (
	"github.com/spf13/cobra"
)

var launchLauncher bool

var launchCmd = &cobra.Command{
	Use:   "launch <version> [-- extra args]",
	Short: "Launch an installed version of Ren'Py",
	Long: `Launch the runtime of an installed Ren'Py version. Arguments after --
are passed through to the runtime.

Examples:
  # Open the SDK's launcher project
  renutil launch 7.4.11 --launcher

  # Run a project directly
  renutil launch 7.4.11 -- /path/to/project run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchLauncher, "launcher", false, "Launch the Ren'Py-internal 'launcher' project")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	v, err := parseVersionArg(args[0])
	if err != nil {
		return err
	}

	// Everything after the first positional argument is handed to the
	// runtime untouched.
	extra := args[1:]

	manager, err := createManager()
	if err != nil {
		return err
	}

	return manager.Launch(cmd.Context(), v, launchLauncher, extra)
}
