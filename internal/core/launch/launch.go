// Package launch resolves and spawns the runtime of an installed SDK
// instance. The SDK ships per-platform native runtimes under lib/<platform>;
// resolving an invocation means locating that folder and the top-level
// renpy.py entry script.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kobaltcore/renutil/internal/core/logger"
)

// Invocation is a resolved runtime command for one instance.
type Invocation struct {
	// LibDir is the platform library directory, prepended to
	// LD_LIBRARY_PATH when spawning.
	LibDir string
	// Args is the argv of the runtime: the native launcher binary, its
	// interpreter flags, and the entry script.
	Args []string
}

// Platform returns the SDK platform identifier for the current host.
func Platform() string {
	if runtime.GOOS == "darwin" {
		return "darwin-x86_64"
	}
	switch runtime.GOARCH {
	case "amd64":
		return "linux-x86_64"
	case "386":
		return "linux-i686"
	default:
		return fmt.Sprintf("linux-%s", runtime.GOARCH)
	}
}

// candidateRoots lists the folders that may hold the platform files,
// relative to the cache root. On macOS the runtime hides behind the app
// bundle's autorun folder.
func candidateRoots(instancePath string) []string {
	if runtime.GOOS == "darwin" {
		return []string{
			instancePath,
			filepath.Join(instancePath, "..", "Resources", "autorun"),
			filepath.Join(instancePath, "..", "..", ".."),
		}
	}
	return []string{instancePath}
}

// ResolveInvocation locates the platform runtime of the instance at
// instancePath (relative to cacheRoot) and builds its invocation.
func ResolveInvocation(cacheRoot, instancePath string) (Invocation, error) {
	platform := Platform()

	var libDir string
	for _, root := range candidateRoots(instancePath) {
		dir := filepath.Join(cacheRoot, root, "lib", platform)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			libDir = dir
			break
		}
	}
	if libDir == "" {
		return Invocation{}, fmt.Errorf("platform files for %s not found under %s",
			platform, filepath.Join(cacheRoot, instancePath, "lib"))
	}

	var entry string
	for _, root := range candidateRoots(instancePath) {
		script := filepath.Join(cacheRoot, root, "renpy.py")
		if fi, err := os.Stat(script); err == nil && !fi.IsDir() {
			entry = script
			break
		}
	}
	if entry == "" {
		return Invocation{}, fmt.Errorf("renpy.py not found under %s", filepath.Join(cacheRoot, instancePath))
	}

	return Invocation{
		LibDir: libDir,
		Args:   []string{filepath.Join(libDir, "renpy"), "-EO", entry},
	}, nil
}

// Runner spawns resolved invocations as subprocesses.
type Runner struct {
	logger logger.Logger
}

// NewRunner creates a runner.
func NewRunner(log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{logger: log}
}

// Spawn runs the invocation with extra arguments appended, stdio attached,
// and the SDK environment set up. A child terminated by an interactive
// interrupt is treated as a normal exit, not an error.
func (r *Runner) Spawn(ctx context.Context, inv Invocation, extra []string) error {
	args := append(append([]string{}, inv.Args[1:]...), extra...)
	cmd := exec.CommandContext(ctx, inv.Args[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	env := append(os.Environ(), "SDL_AUDIODRIVER=dummy")
	if path := os.Getenv("LD_LIBRARY_PATH"); path != "" {
		env = append(env, fmt.Sprintf("LD_LIBRARY_PATH=%s:%s", inv.LibDir, path))
	} else {
		env = append(env, fmt.Sprintf("LD_LIBRARY_PATH=%s", inv.LibDir))
	}
	cmd.Env = env

	r.logger.Debug("spawning runtime", "command", inv.Args[0], "args", args)

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == -1 {
		// Terminated by a signal, most likely a Ctrl-C aimed at the
		// whole foreground process group.
		return nil
	}
	return err
}
