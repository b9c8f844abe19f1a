package commands

import (
	"fmt"

	"github.com/kobaltcore/renutil/internal/cli/ui"
	"github.com/kobaltcore/renutil/internal/core/config"
	"github.com/kobaltcore/renutil/internal/core/instance"
	"github.com/kobaltcore/renutil/internal/core/logger"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// createManager resolves the environment and builds the lifecycle manager
// used by every subcommand.
func createManager() (*instance.Manager, error) {
	env, err := config.Load(rootCacheDir)
	if err != nil {
		return nil, err
	}

	opts := []logger.Option{}
	if rootVerbose {
		opts = append(opts, logger.WithDebug())
	}

	mgr := instance.NewManager(env,
		instance.WithLogger(logger.New(opts...)),
		instance.WithProgress(ui.DownloadProgress),
	)
	return mgr, nil
}

// parseVersionArg parses the version positional argument common to install,
// uninstall, and launch.
func parseVersionArg(arg string) (version.Version, error) {
	v, err := version.Parse(arg)
	if err != nil {
		return version.Version{}, fmt.Errorf("not a valid version: %q", arg)
	}
	return v, nil
}
