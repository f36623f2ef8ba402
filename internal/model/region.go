package model

import "fmt"

// GeoLevel is the geographic resolution of a resolved region or data point.
type GeoLevel string

const (
	GeoLevelState     GeoLevel = "state"
	GeoLevelCounty    GeoLevel = "county"
	GeoLevelHHSRegion GeoLevel = "hhs_region"
)

// ResolvedRegion is the canonical region descriptor for one analysis request.
// It is produced once per request and embedded in the persisted result.
type ResolvedRegion struct {
	State       string   `json:"state"`
	StateAbbrev string   `json:"stateAbbrev"`
	HHSRegion   int      `json:"hhsRegion"`
	GeoLevel    GeoLevel `json:"geoLevel"`
	County      string   `json:"county,omitempty"`
	ZipCode     string   `json:"zipCode,omitempty"`
}

// Label returns a human-readable region string for reports and prompt context.
func (r ResolvedRegion) Label() string {
	if r.County != "" {
		return fmt.Sprintf("%s, %s (HHS Region %d)", r.County, r.StateAbbrev, r.HHSRegion)
	}
	return fmt.Sprintf("%s (HHS Region %d)", r.State, r.HHSRegion)
}
