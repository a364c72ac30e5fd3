package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed kernel release of the form "w.x.y-z[-suffix]".
// Numeric components are compared structurally; string comparison of
// releases is never used for gating.
type Version struct {
	Parts  []int
	Suffix string

	// release is the unparsed input. Splitting on '.' and '-' loses the
	// separator structure, so String returns this instead of reassembling.
	release string
}

// ParseVersion splits a release string on '.' and '-'. Leading numeric
// components become Parts; the remainder, if any, becomes the Suffix.
func ParseVersion(release string) (Version, error) {
	fields := strings.FieldsFunc(release, func(r rune) bool {
		return r == '.' || r == '-'
	})
	if len(fields) == 0 {
		return Version{}, fmt.Errorf("empty release string")
	}

	v := Version{release: release}
	i := 0
	for ; i < len(fields); i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			break
		}
		v.Parts = append(v.Parts, n)
	}
	if len(v.Parts) == 0 {
		return Version{}, fmt.Errorf("release %q has no numeric components", release)
	}
	v.Suffix = strings.Join(fields[i:], "-")
	return v, nil
}

// AtLeast reports whether the version is >= major.minor, comparing the
// leading two numeric components lexicographically.
func (v Version) AtLeast(major, minor int) bool {
	if v.Parts[0] != major {
		return v.Parts[0] > major
	}
	if len(v.Parts) < 2 {
		return minor <= 0
	}
	return v.Parts[1] >= minor
}

// Equal reports component-wise equality, suffix included.
func (v Version) Equal(o Version) bool {
	if len(v.Parts) != len(o.Parts) || v.Suffix != o.Suffix {
		return false
	}
	for i := range v.Parts {
		if v.Parts[i] != o.Parts[i] {
			return false
		}
	}
	return true
}

// String returns the release exactly as it was parsed. A Version built by
// hand, without ParseVersion, falls back to dotted form with the suffix
// appended after a dash.
func (v Version) String() string {
	if v.release != "" {
		return v.release
	}
	parts := make([]string, len(v.Parts))
	for i, p := range v.Parts {
		parts[i] = strconv.Itoa(p)
	}
	s := strings.Join(parts, ".")
	if v.Suffix != "" {
		s += "-" + v.Suffix
	}
	return s
}
