package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the settings needed by a command mode: "all", "collect"
// or "status". Missing provider credentials are not errors; the collector
// for that provider is skipped at run time.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "all":
		errs = append(errs, c.validateCollect()...)
		errs = append(errs, c.validateStore()...)
	case "collect":
		errs = append(errs, c.validateCollect()...)
	case "status":
		errs = append(errs, c.validateStore()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateCollect() []string {
	var errs []string
	if c.Registry.RowsPerPage < 1 || c.Registry.RowsPerPage > 1000 {
		errs = append(errs, "registry.rows_per_page must be between 1 and 1000")
	}
	if c.Registry.MaxPages < 1 {
		errs = append(errs, "registry.max_pages must be > 0")
	}
	if c.Naver.Display < 1 || c.Naver.Display > 5 {
		errs = append(errs, "naver.display must be between 1 and 5")
	}
	if c.Naver.MaxBuildings < 0 {
		errs = append(errs, "naver.max_buildings must be >= 0")
	}
	if c.Google.RadiusM < 1 || c.Google.RadiusM > 50000 {
		errs = append(errs, "google.radius_m must be between 1 and 50000")
	}
	// Nearby search never returns more than three pages.
	if c.Google.MaxPages < 1 || c.Google.MaxPages > 3 {
		errs = append(errs, "google.max_pages must be between 1 and 3")
	}
	if c.Registry.PageDelayMs < 0 || c.Naver.QueryDelayMs < 0 || c.Google.TokenDelayMs < 0 ||
		c.Google.TypeDelayMs < 0 || c.Geocode.DelayMs < 0 {
		errs = append(errs, "delays must be >= 0")
	}
	if c.Area.CenterLat < -90 || c.Area.CenterLat > 90 || c.Area.CenterLng < -180 || c.Area.CenterLng > 180 {
		errs = append(errs, "area center is out of range")
	}
	return errs
}

func (c *Config) validateStore() []string {
	if _, err := c.Store.ConnString(); err != nil {
		return []string{"store: " + strings.TrimPrefix(err.Error(), "config: ")}
	}
	return nil
}
