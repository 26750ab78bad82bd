package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ringsaturn/tzf"
)

// ErrNoTimezone is returned when neither a zone name nor coordinates are configured.
var ErrNoTimezone = errors.New("no timezone configured")

// ResolveLocation returns the fixed reference timezone for the deployment.
// An explicit IANA name wins; otherwise the zone containing the given
// coordinates is looked up.
func ResolveLocation(name string, lat, lng float64) (*time.Location, error) {
	if name = strings.TrimSpace(name); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", name, err)
		}
		return loc, nil
	}
	if lat == 0 && lng == 0 {
		return nil, ErrNoTimezone
	}

	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("init timezone finder: %w", err)
	}
	zone := finder.GetTimezoneName(lng, lat)
	if zone == "" {
		return nil, fmt.Errorf("no timezone at %.4f,%.4f", lat, lng)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return loc, nil
}
