package domain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version and remembers the exact text it was parsed from,
// since tags embed versions verbatim.
type Version struct {
	*semver.Version
}

// NewVersion parses a strict semantic version (no "v" prefix, all three parts).
func NewVersion(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return &Version{v}, nil
}

// Compare compares two versions.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// IsPrerelease reports whether the version carries a prerelease suffix.
func (v *Version) IsPrerelease() bool {
	return v.Prerelease() != ""
}

// String returns the version exactly as it was written.
func (v *Version) String() string {
	return v.Original()
}
