// Package version provides the semantic version value type that identifies
// SDK releases and installed instances.
package version

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// folderPattern is the strict grammar for instance folder names: a full
// MAJOR.MINOR.PATCH triple with optional pre-release and build metadata,
// anchored, with an optional trailing slash.
var folderPattern = regexp.MustCompile(
	`^((0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(-(0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(\.(0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*)?` +
		`(\+[0-9a-zA-Z-]+(\.[0-9a-zA-Z-]+)*)?)/?$`)

// Version is an immutable semantic version. The zero value is invalid; use
// Parse, ParseFolder, or MustParse to construct one.
type Version struct {
	v *semver.Version
}

// Parse parses a strict semantic version string (full triple required).
func Parse(s string) (Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// MustParse parses a version string and panics on failure. Intended for
// tests and compile-time constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseFolder parses a cache folder name. Only names matching the strict
// anchored semver grammar (optionally with a trailing slash) are accepted;
// anything else reports ok=false.
func ParseFolder(name string) (Version, bool) {
	m := folderPattern.FindStringSubmatch(name)
	if m == nil {
		return Version{}, false
	}
	v, err := semver.StrictNewVersion(m[1])
	if err != nil {
		return Version{}, false
	}
	return Version{v: v}, true
}

// String returns the normalized version string.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// IsZero reports whether v is the invalid zero value.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare orders versions by semver precedence. Build metadata is ignored,
// and a pre-release sorts before the equivalent release.
func (v Version) Compare(o Version) int {
	return v.v.Compare(o.v)
}

// Less reports whether v has lower precedence than o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether two versions have the same normalized string. Unlike
// Compare, build metadata participates in equality.
func (v Version) Equal(o Version) bool {
	return v.String() == o.String()
}

// MarshalJSON encodes the version as its normalized string.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a version from its string form.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// SortDescending sorts versions in place, most recent first.
func SortDescending(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[j].Less(versions[i])
	})
}
