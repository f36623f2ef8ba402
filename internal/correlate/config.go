// Package correlate scores how well current regional disease activity
// supports or argues against each candidate diagnosis, and derives
// alert-worthy anomalies from the scored findings.
package correlate

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Scoring constants. Tier boundaries are monotonic, non-overlapping
// ranges covering 0-100.
const (
	// Component score caps. The five caps sum to 100.
	maxSymptomScore       = 25.0
	maxDifferentialScore  = 25.0
	maxEpidemiologicScore = 30.0
	maxSeasonalScore      = 10.0
	maxGeographicScore    = 10.0

	defaultTierLow      = 20.0
	defaultTierModerate = 40.0
	defaultTierHigh     = 60.0
	defaultTierCritical = 80.0

	defaultWarningMagnitude  = 30.0
	defaultCriticalMagnitude = 75.0
	defaultCoCirculatingMin  = 3
)

// Thresholds holds the tunable tier boundaries and alert cutoffs.
type Thresholds struct {
	TierLow      float64 `yaml:"tier_low"`
	TierModerate float64 `yaml:"tier_moderate"`
	TierHigh     float64 `yaml:"tier_high"`
	TierCritical float64 `yaml:"tier_critical"`

	// WarningMagnitude is the rising-trend percent increase at which a
	// warning alert fires; CriticalMagnitude the stricter outbreak cutoff.
	WarningMagnitude  float64 `yaml:"warning_magnitude"`
	CriticalMagnitude float64 `yaml:"critical_magnitude"`

	// CoCirculatingMin is the number of simultaneously active
	// moderate-or-higher findings that triggers the info alert.
	CoCirculatingMin int `yaml:"co_circulating_min"`
}

// DefaultThresholds returns the product defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TierLow:           defaultTierLow,
		TierModerate:      defaultTierModerate,
		TierHigh:          defaultTierHigh,
		TierCritical:      defaultTierCritical,
		WarningMagnitude:  defaultWarningMagnitude,
		CriticalMagnitude: defaultCriticalMagnitude,
		CoCirculatingMin:  defaultCoCirculatingMin,
	}
}

// LoadThresholds reads threshold overrides from a YAML file. Zero-valued
// fields fall back to the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	defaults := DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, eris.Wrapf(err, "correlate: read thresholds %s", path)
	}

	var wrapper struct {
		Correlation Thresholds `yaml:"correlation"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return defaults, eris.Wrap(err, "correlate: parse thresholds")
	}

	t := wrapper.Correlation
	if t.TierLow == 0 {
		t.TierLow = defaults.TierLow
	}
	if t.TierModerate == 0 {
		t.TierModerate = defaults.TierModerate
	}
	if t.TierHigh == 0 {
		t.TierHigh = defaults.TierHigh
	}
	if t.TierCritical == 0 {
		t.TierCritical = defaults.TierCritical
	}
	if t.WarningMagnitude == 0 {
		t.WarningMagnitude = defaults.WarningMagnitude
	}
	if t.CriticalMagnitude == 0 {
		t.CriticalMagnitude = defaults.CriticalMagnitude
	}
	if t.CoCirculatingMin == 0 {
		t.CoCirculatingMin = defaults.CoCirculatingMin
	}
	return t, nil
}
