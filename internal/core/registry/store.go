package registry

import (
	"context"
	"fmt"

	"github.com/kobaltcore/renutil/internal/core/config"
	"github.com/kobaltcore/renutil/internal/filestore"
)

// Store persists the registry as a single JSON document under the cache
// root. Every mutation is expressed as load, mutate in memory, save; the
// document is always rewritten wholesale. The Guard must have run before any
// Store access.
type Store struct {
	env config.Environment
	fs  *filestore.Manager[[]Instance]
}

// NewStore creates a registry store for the given environment.
func NewStore(env config.Environment) *Store {
	return &Store{
		env: env,
		fs:  filestore.NewManager[[]Instance](),
	}
}

// Load reads the full registry from disk.
func (s *Store) Load(ctx context.Context) (*Registry, error) {
	instances, err := s.fs.Read(ctx, s.env.RegistryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	reg, err := New(*instances)
	if err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}
	return reg, nil
}

// Save rewrites the full registry to disk.
func (s *Store) Save(ctx context.Context, reg *Registry) error {
	instances := reg.Instances()
	if err := s.fs.Write(ctx, s.env.RegistryPath(), &instances); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// remove deletes the registry file. Used by the Guard when the document is
// unreadable.
func (s *Store) remove(ctx context.Context) error {
	return s.fs.Delete(ctx, s.env.RegistryPath())
}
