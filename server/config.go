package server

import (
	"fmt"
	"time"
)

// Defaults.
const (
	DefaultAddr             = "0.0.0.0:18080"
	DefaultComponent        = "mailer"
	DefaultHTMLComponent    = "homepage"
	DefaultSitemapComponent = "sitemap"
)

// Config configures a Server.
type Config struct {
	// Addr is the mock listen address. Default: 0.0.0.0:18080
	Addr string

	// Profile selects the route set. Default: ProfileFull
	Profile Profile

	// DefaultComponent backs GET /health and toggles without a component.
	// Default: mailer
	DefaultComponent string

	// HTMLComponent gates /checks/html. Default: homepage
	HTMLComponent string

	// SitemapComponent gates /checks/sitemap.xml. Default: sitemap
	SitemapComponent string

	// Components are seeded healthy at startup. Nil selects the profile
	// default; an empty non-nil slice seeds nothing.
	Components []string

	// ReadHeaderTimeout bounds reading request headers. Default: 5 seconds
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns the configuration for the given profile.
func DefaultConfig(p Profile) Config {
	cfg := Config{Profile: p}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.DefaultComponent == "" {
		c.DefaultComponent = DefaultComponent
	}
	if c.HTMLComponent == "" {
		c.HTMLComponent = DefaultHTMLComponent
	}
	if c.SitemapComponent == "" {
		c.SitemapComponent = DefaultSitemapComponent
	}
	if c.Components == nil {
		c.Components = c.profileComponents()
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = 5 * time.Second
	}
}

func (c *Config) profileComponents() []string {
	switch c.Profile {
	case ProfileFull:
		return []string{c.DefaultComponent, c.HTMLComponent, c.SitemapComponent}
	default:
		return []string{c.DefaultComponent}
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if !c.Profile.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownProfile, int(c.Profile))
	}
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	for _, name := range c.Components {
		if name == "" {
			return fmt.Errorf("%w: in components", ErrEmptyComponent)
		}
	}
	return nil
}
