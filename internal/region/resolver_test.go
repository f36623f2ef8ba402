package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/episcope/internal/model"
)

func TestResolve_StateAbbrev(t *testing.T) {
	r := NewResolver()

	got := r.Resolve(Location{State: "tx"})
	require.NotNil(t, got)
	assert.Equal(t, "Texas", got.State)
	assert.Equal(t, "TX", got.StateAbbrev)
	assert.Equal(t, 6, got.HHSRegion)
	assert.Equal(t, model.GeoLevelState, got.GeoLevel)
	assert.Empty(t, got.County)
}

func TestResolve_StateFullName(t *testing.T) {
	r := NewResolver()

	got := r.Resolve(Location{State: "Massachusetts"})
	require.NotNil(t, got)
	assert.Equal(t, "MA", got.StateAbbrev)
	assert.Equal(t, 1, got.HHSRegion)
}

func TestResolve_Zip(t *testing.T) {
	r := NewResolver()

	got := r.Resolve(Location{ZipCode: "78701"})
	require.NotNil(t, got)
	assert.Equal(t, "TX", got.StateAbbrev)
	assert.Equal(t, "Travis County", got.County)
	assert.Equal(t, "78701", got.ZipCode)
	assert.Equal(t, model.GeoLevelCounty, got.GeoLevel)
	assert.Equal(t, 6, got.HHSRegion)
}

func TestResolve_UnknownReturnsNil(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name string
		loc  Location
	}{
		{"unknown state", Location{State: "Atlantis"}},
		{"unknown zip prefix", Location{ZipCode: "00001"}},
		{"short zip", Location{ZipCode: "787"}},
		{"non-numeric zip", Location{ZipCode: "78a01"}},
		{"empty", Location{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, r.Resolve(tt.loc))
		})
	}
}

func TestHHSRegions_CoverAllStates(t *testing.T) {
	for abbrev := range stateNames {
		hhs, ok := hhsRegions[abbrev]
		require.True(t, ok, "missing HHS region for %s", abbrev)
		assert.GreaterOrEqual(t, hhs, 1)
		assert.LessOrEqual(t, hhs, 10)
	}
}

func TestZipPrefixes_ReferenceKnownStates(t *testing.T) {
	for prefix, entry := range zipPrefixes {
		_, ok := stateNames[entry.stateAbbrev]
		assert.True(t, ok, "prefix %s references unknown state %s", prefix, entry.stateAbbrev)
	}
}

func TestRegionLabel(t *testing.T) {
	r := NewResolver()

	county := r.Resolve(Location{ZipCode: "98101"})
	require.NotNil(t, county)
	assert.Equal(t, "King County, WA (HHS Region 10)", county.Label())

	state := r.Resolve(Location{State: "WA"})
	require.NotNil(t, state)
	assert.Equal(t, "Washington (HHS Region 10)", state.Label())
}
