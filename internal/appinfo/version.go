package appinfo

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned by ParseVersion for malformed input.
var ErrInvalidVersion = errors.New("invalid version")

// Version is a four part version number with an optional release name.
type Version struct {
	Major       uint32
	Minor       uint32
	Maintenance uint32
	Build       uint32
	Name        string
}

// String formats as "major.minor.maintenance.build", followed by the name
// when one is set.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Maintenance, v.Build)
	if v.Name != "" {
		s += " " + v.Name
	}
	return s
}

// ParseVersion parses one to four dot separated numbers, optionally
// followed by whitespace and a name. Missing parts are zero.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	numbers, name, _ := strings.Cut(s, " ")

	parts := strings.Split(numbers, ".")
	if numbers == "" || len(parts) > 4 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var fields [4]uint32
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		fields[i] = uint32(n)
	}

	return Version{
		Major:       fields[0],
		Minor:       fields[1],
		Maintenance: fields[2],
		Build:       fields[3],
		Name:        strings.TrimSpace(name),
	}, nil
}

// Compare orders versions by their numbers. Names are ignored.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Maintenance, other.Maintenance); c != 0 {
		return c
	}
	return cmp.Compare(v.Build, other.Build)
}
