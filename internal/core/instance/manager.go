// Package instance implements the install/uninstall lifecycle of locally
// cached SDK instances. Every operation passes through the cache directory
// guard first, then reads and mutates the registry and the cache folder
// together. Operations are not transactional: a failure mid-install leaves
// the state of the last completed step.
package instance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kobaltcore/renutil/internal/core/archive"
	"github.com/kobaltcore/renutil/internal/core/config"
	"github.com/kobaltcore/renutil/internal/core/download"
	"github.com/kobaltcore/renutil/internal/core/launch"
	"github.com/kobaltcore/renutil/internal/core/logger"
	"github.com/kobaltcore/renutil/internal/core/registry"
	"github.com/kobaltcore/renutil/internal/core/release"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// ProgressFactory builds a progress callback for one named download, or
// returns nil for silent downloads.
type ProgressFactory func(name string) download.ProgressFunc

// Manager owns the instance lifecycle: list, install, uninstall, launch.
type Manager struct {
	env        config.Environment
	store      *registry.Store
	guard      *registry.Guard
	downloader *download.Client
	releases   *release.Client
	runner     *launch.Runner
	logger     logger.Logger
	progress   ProgressFactory
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(log logger.Logger) Option {
	return func(m *Manager) {
		m.logger = log
	}
}

// WithProgress sets the download progress factory.
func WithProgress(factory ProgressFactory) Option {
	return func(m *Manager) {
		m.progress = factory
	}
}

// WithDownloader overrides the download client.
func WithDownloader(c *download.Client) Option {
	return func(m *Manager) {
		m.downloader = c
	}
}

// WithReleaseClient overrides the release discovery client.
func WithReleaseClient(c *release.Client) Option {
	return func(m *Manager) {
		m.releases = c
	}
}

// NewManager creates a lifecycle manager for the given environment.
func NewManager(env config.Environment, opts ...Option) *Manager {
	store := registry.NewStore(env)
	m := &Manager{
		env:        env,
		store:      store,
		downloader: download.NewClient(),
		releases:   release.NewClient(env.BaseURL),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.guard = registry.NewGuard(env, store, m.logger)
	m.runner = launch.NewRunner(m.logger)
	return m
}

// Guard exposes the cache directory guard for diagnostic commands.
func (m *Manager) Guard() *registry.Guard {
	return m.guard
}

// List returns the installed versions, most recent first, truncated to
// limit (limit <= 0 means no truncation). An empty result is not an error.
func (m *Manager) List(ctx context.Context, limit int) ([]version.Version, error) {
	reg, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	versions := reg.Versions()
	if limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}
	return versions, nil
}

// Available returns the remotely discoverable releases, most recent first,
// truncated to limit.
func (m *Manager) Available(ctx context.Context, limit int) ([]release.Release, error) {
	if err := m.guard.EnsureState(ctx); err != nil {
		return nil, err
	}

	releases, err := m.releases.FetchAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}
	return releases, nil
}

// IsInstalled reports whether a version is present in the registry.
func (m *Manager) IsInstalled(ctx context.Context, v version.Version) (bool, error) {
	reg, err := m.load(ctx)
	if err != nil {
		return false, err
	}
	return reg.Contains(v), nil
}

// Install downloads, extracts, and registers one SDK version. The downloads
// resume from any partial archives left by an earlier attempt; the archives
// are deleted once the install succeeds.
func (m *Manager) Install(ctx context.Context, v version.Version) error {
	reg, err := m.load(ctx)
	if err != nil {
		return err
	}
	if reg.Contains(v) {
		return ErrAlreadyInstalled{Version: v}
	}

	log := m.logger.With("version", v.String())

	sdkArchive := filepath.Join(m.env.CacheRoot, fmt.Sprintf("renpy-%s-sdk.zip", v))
	raptArchive := filepath.Join(m.env.CacheRoot, fmt.Sprintf("renpy-%s-rapt.zip", v))

	log.Info("downloading archives")
	if err := m.downloader.Fetch(ctx, m.releases.SDKURL(v), sdkArchive, m.progressFor(filepath.Base(sdkArchive))); err != nil {
		return fmt.Errorf("failed to download SDK archive: %w", err)
	}
	if err := m.downloader.Fetch(ctx, m.releases.RAPTURL(v), raptArchive, m.progressFor(filepath.Base(raptArchive))); err != nil {
		return fmt.Errorf("failed to download RAPT archive: %w", err)
	}

	inst := registry.NewInstance(v)
	instanceDir := filepath.Join(m.env.CacheRoot, inst.Path)

	log.Info("extracting archives", "path", instanceDir)
	if err := archive.ExtractZip(sdkArchive, instanceDir); err != nil {
		return fmt.Errorf("failed to extract SDK archive: %w", err)
	}
	if err := archive.ExtractZip(raptArchive, filepath.Join(instanceDir, "rapt")); err != nil {
		return fmt.Errorf("failed to extract RAPT archive: %w", err)
	}

	if err := reg.Add(inst); err != nil {
		return err
	}
	if err := m.store.Save(ctx, reg); err != nil {
		return err
	}

	log.Debug("removing downloaded archives")
	if err := os.Remove(sdkArchive); err != nil {
		return fmt.Errorf("failed to remove SDK archive: %w", err)
	}
	if err := os.Remove(raptArchive); err != nil {
		return fmt.Errorf("failed to remove RAPT archive: %w", err)
	}

	return nil
}

// Uninstall removes a version from the registry, then deletes its folder.
// The registry is persisted before the folder is touched; an interrupt in
// between leaves an orphan folder that the doctor report can surface.
func (m *Manager) Uninstall(ctx context.Context, v version.Version) error {
	reg, err := m.load(ctx)
	if err != nil {
		return err
	}
	inst, ok := reg.Find(v)
	if !ok {
		return ErrNotInstalled{Version: v}
	}

	reg.Remove(v)
	if err := m.store.Save(ctx, reg); err != nil {
		return err
	}

	m.logger.Info("removing instance folder", "version", v.String(), "path", inst.Path)
	if err := os.RemoveAll(filepath.Join(m.env.CacheRoot, inst.Path)); err != nil {
		return fmt.Errorf("failed to remove instance folder: %w", err)
	}

	return nil
}

// Launch spawns an installed version as a subprocess. With launcher set,
// the SDK's bundled launcher project is opened instead of running the
// runtime bare. Extra arguments are passed through to the runtime.
func (m *Manager) Launch(ctx context.Context, v version.Version, launcher bool, extra []string) error {
	reg, err := m.load(ctx)
	if err != nil {
		return err
	}
	inst, ok := reg.Find(v)
	if !ok {
		return ErrNotInstalled{Version: v}
	}

	inv, err := launch.ResolveInvocation(m.env.CacheRoot, inst.Path)
	if err != nil {
		return err
	}

	args := extra
	if launcher {
		args = append([]string{filepath.Join(m.env.CacheRoot, inst.LauncherPath)}, extra...)
	}

	return m.runner.Spawn(ctx, inv, args)
}

// load runs the guard and reads the registry. Every lifecycle operation
// starts here.
func (m *Manager) load(ctx context.Context) (*registry.Registry, error) {
	if err := m.guard.EnsureState(ctx); err != nil {
		return nil, err
	}
	return m.store.Load(ctx)
}

func (m *Manager) progressFor(name string) download.ProgressFunc {
	if m.progress == nil {
		return nil
	}
	return m.progress(name)
}
