// Package region maps raw locations (postal code or state) to canonical
// region descriptors used throughout the analysis pipeline.
package region

import (
	"strings"

	"github.com/sells-group/episcope/internal/model"
)

// Location is the raw caller-supplied location. Exactly one of ZipCode or
// State is expected; validation of that rule belongs to the caller.
type Location struct {
	ZipCode string `json:"zipCode,omitempty"`
	State   string `json:"state,omitempty"`
}

// Resolver performs pure lookups against bundled state, HHS region, and
// ZIP prefix tables. It holds no mutable state and is safe for concurrent use.
type Resolver struct{}

// NewResolver returns a Resolver backed by the bundled lookup tables.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps a location to a ResolvedRegion. A nil result means the
// location has no known mapping; callers must treat that as "cannot analyze
// this location" (a client error), never as a server fault.
func (r *Resolver) Resolve(loc Location) *model.ResolvedRegion {
	if zip := strings.TrimSpace(loc.ZipCode); zip != "" {
		return r.resolveZip(zip)
	}
	if state := strings.TrimSpace(loc.State); state != "" {
		return r.resolveState(state)
	}
	return nil
}

// resolveState accepts either a two-letter abbreviation or a full state name.
func (r *Resolver) resolveState(state string) *model.ResolvedRegion {
	abbrev := strings.ToUpper(state)
	if _, ok := stateNames[abbrev]; !ok {
		// Try full name lookup.
		abbrev = ""
		needle := strings.ToLower(state)
		for ab, name := range stateNames {
			if strings.ToLower(name) == needle {
				abbrev = ab
				break
			}
		}
		if abbrev == "" {
			return nil
		}
	}

	hhs, ok := hhsRegions[abbrev]
	if !ok {
		return nil
	}

	return &model.ResolvedRegion{
		State:       stateNames[abbrev],
		StateAbbrev: abbrev,
		HHSRegion:   hhs,
		GeoLevel:    model.GeoLevelState,
	}
}

// resolveZip maps a 5-digit ZIP to a county-level region via its 3-digit
// prefix. Unknown prefixes resolve to nil.
func (r *Resolver) resolveZip(zip string) *model.ResolvedRegion {
	if len(zip) < 5 {
		return nil
	}
	for _, ch := range zip[:5] {
		if ch < '0' || ch > '9' {
			return nil
		}
	}

	entry, ok := zipPrefixes[zip[:3]]
	if !ok {
		return nil
	}

	hhs, ok := hhsRegions[entry.stateAbbrev]
	if !ok {
		return nil
	}

	return &model.ResolvedRegion{
		State:       stateNames[entry.stateAbbrev],
		StateAbbrev: entry.stateAbbrev,
		HHSRegion:   hhs,
		GeoLevel:    model.GeoLevelCounty,
		County:      entry.county,
		ZipCode:     zip[:5],
	}
}
