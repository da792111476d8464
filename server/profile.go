package server

import (
	"fmt"
	"strings"
)

// Profile selects which routes the server exposes and how toggles address
// the table.
type Profile int

const (
	// ProfileFull serves every route and seeds mailer, homepage and sitemap.
	ProfileFull Profile = iota

	// ProfileComponents serves /health, /health/<name> and /toggle.
	ProfileComponents

	// ProfileSingle serves /health and /toggle over one shared flag.
	// The component query parameter is ignored.
	ProfileSingle
)

// ValidProfiles lists accepted profile names.
var ValidProfiles = []string{"full", "components", "single"}

// ParseProfile parses a profile name. Matching is case-insensitive.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return ProfileFull, nil
	case "components":
		return ProfileComponents, nil
	case "single":
		return ProfileSingle, nil
	default:
		return ProfileFull, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
}

func (p Profile) String() string {
	switch p {
	case ProfileFull:
		return "full"
	case ProfileComponents:
		return "components"
	case ProfileSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Set implements flag.Value.
func (p *Profile) Set(s string) error {
	parsed, err := ParseProfile(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Profile) valid() bool {
	return p >= ProfileFull && p <= ProfileSingle
}

// componentRoutes reports whether /health/<name> is served.
func (p Profile) componentRoutes() bool {
	return p == ProfileFull || p == ProfileComponents
}

// pageRoutes reports whether /checks/html and /checks/sitemap.xml are served.
func (p Profile) pageRoutes() bool {
	return p == ProfileFull
}
