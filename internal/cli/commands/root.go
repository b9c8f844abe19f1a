// Package commands implements the renutil command-line interface.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	rootCacheDir string
	rootVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "renutil",
	Short: "A toolkit for managing Ren'Py instances via the command line",
	Long: `Renutil manages Ren'Py SDK instances: it lists available releases,
installs them into a local cache, and launches installed versions
(or their bundled launcher project) directly.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCacheDir, "cache-root", "", "Cache directory (default ~/.renutil)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
