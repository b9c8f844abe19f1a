package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kobaltcore/renutil/internal/core/config"
	"github.com/kobaltcore/renutil/internal/core/logger"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// ErrCacheNotWritable reports a cache root this process cannot read or
// write. It is fatal for the invocation and never retried.
type ErrCacheNotWritable struct {
	Path string
}

func (e ErrCacheNotWritable) Error() string {
	return fmt.Sprintf("cache directory is not writable: %s", e.Path)
}

// Guard ensures the cache root and registry file are usable before any
// lifecycle operation runs. A missing or unreadable registry is rebuilt by
// scanning the cache root for version-named folders; an existing valid
// registry is never reconciled against folder contents.
type Guard struct {
	env    config.Environment
	store  *Store
	logger logger.Logger
}

// NewGuard creates a guard over the given environment and store.
func NewGuard(env config.Environment, store *Store, log logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{env: env, store: store, logger: log}
}

// EnsureState makes the cache root exist and be writable, and the registry
// file present and readable. It must be invoked before any operation that
// reads or writes the registry.
func (g *Guard) EnsureState(ctx context.Context) error {
	root := g.env.CacheRoot

	if _, err := os.Stat(root); os.IsNotExist(err) {
		g.logger.Info("cache directory does not exist, creating it", "path", root)
		if err := os.MkdirAll(root, 0o755); err != nil {
			return ErrCacheNotWritable{Path: root}
		}
	}

	if !g.accessible(root) {
		return ErrCacheNotWritable{Path: root}
	}

	_, err := os.Stat(g.env.RegistryPath())
	switch {
	case os.IsNotExist(err):
		g.logger.Info("instance registry does not exist, creating it", "path", g.env.RegistryPath())
		return g.rebuild(ctx)
	case err != nil:
		return fmt.Errorf("failed to stat registry: %w", err)
	}

	if _, err := g.store.Load(ctx); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return g.rebuild(ctx)
		}
		// Malformed registry: delete and rebuild from the folder layout.
		g.logger.Warn("instance registry is unreadable, rebuilding it", "path", g.env.RegistryPath(), "error", err)
		if err := g.store.remove(ctx); err != nil {
			return fmt.Errorf("failed to remove corrupt registry: %w", err)
		}
		return g.rebuild(ctx)
	}

	return nil
}

// accessible reports whether the directory is both readable and writable by
// this process.
func (g *Guard) accessible(dir string) bool {
	if _, err := os.ReadDir(dir); err != nil {
		return false
	}
	probe, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}

// rebuild derives a registry from the cache root's immediate subfolders and
// writes it out. Only folder names matching the strict semver grammar are
// kept; installed SDK folders are never deleted.
func (g *Guard) rebuild(ctx context.Context) error {
	reg, err := g.scan()
	if err != nil {
		return err
	}
	g.logger.Debug("scanned cache directory", "instances", reg.Len())
	return g.store.Save(ctx, reg)
}

// scan walks the cache root's immediate subfolders through the semver
// folder-name filter.
func (g *Guard) scan() (*Registry, error) {
	entries, err := os.ReadDir(g.env.CacheRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache directory: %w", err)
	}

	reg := &Registry{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, ok := version.ParseFolder(entry.Name())
		if !ok {
			continue
		}
		inst := NewInstance(v)
		inst.Path = entry.Name()
		if err := reg.Add(inst); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Report describes divergence between the registry and the folder layout.
type Report struct {
	// Untracked are version-named folders on disk with no registry entry.
	Untracked []string
	// Missing are registered versions whose folders are gone.
	Missing []version.Version
}

// Clean reports whether registry and folder layout agree.
func (r Report) Clean() bool {
	return len(r.Untracked) == 0 && len(r.Missing) == 0
}

// Verify compares the registry against the cache folder layout and reports
// divergence without repairing it. EnsureState must have run first.
func (g *Guard) Verify(ctx context.Context) (Report, error) {
	reg, err := g.store.Load(ctx)
	if err != nil {
		return Report{}, err
	}

	onDisk, err := g.scan()
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, inst := range onDisk.Instances() {
		if !reg.Contains(inst.Version) {
			report.Untracked = append(report.Untracked, inst.Path)
		}
	}
	for _, inst := range reg.Instances() {
		if !onDisk.Contains(inst.Version) {
			report.Missing = append(report.Missing, inst.Version)
		}
	}
	return report, nil
}
