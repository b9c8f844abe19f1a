// Package registry persists the set of installed SDK instances and guards
// the cache directory they live in. The registry is the authoritative list;
// the guard rebuilds it from the cache folder layout when it is missing or
// unreadable.
package registry

import (
	"fmt"
	"path"

	"github.com/kobaltcore/renutil/internal/core/version"
)

// Instance is a locally installed SDK version. Instances are created by a
// successful install, destroyed by uninstall, and otherwise immutable.
type Instance struct {
	Version      version.Version `json:"version"`
	Path         string          `json:"path"`
	LauncherPath string          `json:"launcher_path"`
}

// NewInstance builds the instance record for a version. The instance folder
// is named after the normalized version string and the launcher project
// lives directly beneath it.
func NewInstance(v version.Version) Instance {
	folder := v.String()
	return Instance{
		Version:      v,
		Path:         folder,
		LauncherPath: path.Join(folder, "launcher"),
	}
}

// Registry is the ordered collection of installed instances. It never holds
// two instances with equal versions.
type Registry struct {
	instances []Instance
}

// New creates a registry over the given instances. Duplicate versions are an
// error.
func New(instances []Instance) (*Registry, error) {
	r := &Registry{}
	for _, inst := range instances {
		if err := r.Add(inst); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Instances returns the instances in registry order.
func (r *Registry) Instances() []Instance {
	out := make([]Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// Len returns the number of installed instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// Contains reports whether a version is installed.
func (r *Registry) Contains(v version.Version) bool {
	_, ok := r.Find(v)
	return ok
}

// Find returns the instance for a version, if installed.
func (r *Registry) Find(v version.Version) (Instance, bool) {
	for _, inst := range r.instances {
		if inst.Version.Equal(v) {
			return inst, true
		}
	}
	return Instance{}, false
}

// Add appends an instance, enforcing that every instance carries a version
// and that versions are unique.
func (r *Registry) Add(inst Instance) error {
	if inst.Version.IsZero() {
		return fmt.Errorf("instance %q has no version", inst.Path)
	}
	if r.Contains(inst.Version) {
		return fmt.Errorf("duplicate instance version: %s", inst.Version)
	}
	r.instances = append(r.instances, inst)
	return nil
}

// Remove deletes the instance for a version. It reports whether anything was
// removed.
func (r *Registry) Remove(v version.Version) bool {
	for i, inst := range r.instances {
		if inst.Version.Equal(v) {
			r.instances = append(r.instances[:i], r.instances[i+1:]...)
			return true
		}
	}
	return false
}

// Versions returns the installed versions, most recent first.
func (r *Registry) Versions() []version.Version {
	versions := make([]version.Version, 0, len(r.instances))
	for _, inst := range r.instances {
		versions = append(versions, inst.Version)
	}
	version.SortDescending(versions)
	return versions
}
