// Package semver orders package version directory names.
//
// Names are parsed with hashicorp/go-version, which understands the semantic
// version form major.minor.patch[-prerelease][+build] as well as the shorter and
// four-part forms NuGet writes to its cache. A prerelease ranks below the release
// with the same numeric segments; build metadata never affects ordering.
package semver

import (
	"sort"
	"strings"

	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/hashicorp/go-version"
)

// Version is a parsed version directory name.
type Version struct {
	v    *version.Version
	name string
}

// maxSegments is the longest numeric core NuGet writes, as in 4.7.0.1.
const maxSegments = 4

// Parse parses a directory name. It returns ErrNotAVersion for names that are
// not versions.
//
// go-version on its own also accepts a leading "v", any number of numeric
// segments and an empty prerelease or build label. Those names are rejected
// here since NuGet never writes them.
func Parse(name string) (*Version, error) {
	if !wellFormed(name) {
		return nil, errors.Wrapf(errors.ErrNotAVersion, "%q", name)
	}
	v, err := version.NewVersion(name)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotAVersion, "%q", name)
	}
	return &Version{v: v, name: name}, nil
}

// wellFormed reports whether name has a purely numeric core of at most
// maxSegments segments and no empty labels.
func wellFormed(name string) bool {
	if strings.HasSuffix(name, "-") || strings.HasSuffix(name, "+") || strings.Contains(name, "-+") {
		return false
	}
	core := name
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	segments := strings.Split(core, ".")
	if len(segments) > maxSegments {
		return false
	}
	for _, s := range segments {
		if s == "" || strings.Trim(s, "0123456789") != "" {
			return false
		}
	}
	return true
}

// MustParse is like Parse but panics on invalid input. Intended for tests and constants.
func MustParse(name string) *Version {
	v, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Original returns the directory name the version was parsed from.
func (v *Version) Original() string {
	return v.name
}

// String implements fmt.Stringer.
func (v *Version) String() string {
	return v.name
}

// IsPrerelease reports whether the version carries a prerelease label.
func (v *Version) IsPrerelease() bool {
	return v.v.Prerelease() != ""
}

// Compare returns -1, 0 or 1 depending on whether v is lower than, equal to or
// greater than other.
func (v *Version) Compare(other *Version) int {
	return v.v.Compare(other.v)
}

// LessThan tests if v is less than other.
func (v *Version) LessThan(other *Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan tests if v is greater than other.
func (v *Version) GreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// Equal tests if v and other have the same precedence. Two different names
// such as "1.0" and "1.0.0" can be equal.
func (v *Version) Equal(other *Version) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.Compare(other) == 0
}

// Sort orders versions ascending. Equal versions are ordered by name so the
// result never depends on input order.
func Sort(versions []*Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		if c := versions[i].Compare(versions[j]); c != 0 {
			return c < 0
		}
		return versions[i].name < versions[j].name
	})
}

// NewestRelease returns the greatest non-prerelease version, or nil when there is none.
func NewestRelease(versions []*Version) *Version {
	var newest *Version
	for _, v := range versions {
		if v.IsPrerelease() {
			continue
		}
		if newest == nil || v.GreaterThan(newest) {
			newest = v
		}
	}
	return newest
}

// NewestPrereleaseAbove returns the greatest prerelease strictly greater than
// base. A nil base has no prerelease above it.
func NewestPrereleaseAbove(versions []*Version, base *Version) *Version {
	if base == nil {
		return nil
	}

	var newest *Version
	for _, v := range versions {
		if !v.IsPrerelease() || !v.GreaterThan(base) {
			continue
		}
		if newest == nil || v.GreaterThan(newest) {
			newest = v
		}
	}
	return newest
}
