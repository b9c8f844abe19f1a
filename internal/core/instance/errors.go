package instance

import (
	"fmt"

	"github.com/kobaltcore/renutil/internal/core/version"
)

// ErrAlreadyInstalled is returned when installing a version that is already
// present. No registry or filesystem mutation happens.
type ErrAlreadyInstalled struct {
	Version version.Version
}

func (e ErrAlreadyInstalled) Error() string {
	return fmt.Sprintf("%s is already installed", e.Version)
}

// ErrNotInstalled is returned when uninstalling or launching a version that
// is not present. No registry or filesystem mutation happens.
type ErrNotInstalled struct {
	Version version.Version
}

func (e ErrNotInstalled) Error() string {
	return fmt.Sprintf("%s is not installed", e.Version)
}
