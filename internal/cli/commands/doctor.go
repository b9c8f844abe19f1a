package commands

import (
	"github.com/spf13/cobra"

	"github.com/kobaltcore/renutil/internal/cli/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the cache directory against the registry",
	Long: `Compare the instance registry against the folders actually present in
the cache directory and report any divergence. Nothing is repaired.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	manager, err := createManager()
	if err != nil {
		return err
	}

	guard := manager.Guard()
	if err := guard.EnsureState(cmd.Context()); err != nil {
		return err
	}

	report, err := guard.Verify(cmd.Context())
	if err != nil {
		return err
	}

	ui.PrintDoctorReport(report)
	return nil
}
