package region

// stateNames maps USPS abbreviations to full state names.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"PR": "Puerto Rico",
}

// hhsRegions maps state abbreviations to the 10 fixed federal HHS regions.
// The mapping is stable and never inferred.
var hhsRegions = map[string]int{
	// Region 1: Boston
	"CT": 1, "ME": 1, "MA": 1, "NH": 1, "RI": 1, "VT": 1,
	// Region 2: New York
	"NJ": 2, "NY": 2, "PR": 2,
	// Region 3: Philadelphia
	"DE": 3, "DC": 3, "MD": 3, "PA": 3, "VA": 3, "WV": 3,
	// Region 4: Atlanta
	"AL": 4, "FL": 4, "GA": 4, "KY": 4, "MS": 4, "NC": 4, "SC": 4, "TN": 4,
	// Region 5: Chicago
	"IL": 5, "IN": 5, "MI": 5, "MN": 5, "OH": 5, "WI": 5,
	// Region 6: Dallas
	"AR": 6, "LA": 6, "NM": 6, "OK": 6, "TX": 6,
	// Region 7: Kansas City
	"IA": 7, "KS": 7, "MO": 7, "NE": 7,
	// Region 8: Denver
	"CO": 8, "MT": 8, "ND": 8, "SD": 8, "UT": 8, "WY": 8,
	// Region 9: San Francisco
	"AZ": 9, "CA": 9, "HI": 9, "NV": 9,
	// Region 10: Seattle
	"AK": 10, "ID": 10, "OR": 10, "WA": 10,
}

type zipPrefixEntry struct {
	stateAbbrev string
	county      string
}

// zipPrefixes maps 3-digit ZIP prefixes to their primary county. The table
// covers the major population centers; unknown prefixes resolve to nil,
// which the caller reports as an unresolvable location.
var zipPrefixes = map[string]zipPrefixEntry{
	// Northeast
	"021": {"MA", "Suffolk County"},
	"022": {"MA", "Suffolk County"},
	"024": {"MA", "Middlesex County"},
	"060": {"CT", "Hartford County"},
	"065": {"CT", "New Haven County"},
	"100": {"NY", "New York County"},
	"104": {"NY", "Bronx County"},
	"112": {"NY", "Kings County"},
	"113": {"NY", "Queens County"},
	"070": {"NJ", "Essex County"},
	"071": {"NJ", "Essex County"},
	"191": {"PA", "Philadelphia County"},
	"152": {"PA", "Allegheny County"},
	// Mid-Atlantic / Southeast
	"200": {"DC", "District of Columbia"},
	"210": {"MD", "Baltimore County"},
	"212": {"MD", "Baltimore City"},
	"220": {"VA", "Fairfax County"},
	"232": {"VA", "Richmond City"},
	"272": {"NC", "Guilford County"},
	"282": {"NC", "Mecklenburg County"},
	"292": {"SC", "Richland County"},
	"303": {"GA", "Fulton County"},
	"331": {"FL", "Miami-Dade County"},
	"327": {"FL", "Orange County"},
	"336": {"FL", "Hillsborough County"},
	"352": {"AL", "Jefferson County"},
	"370": {"TN", "Davidson County"},
	"381": {"TN", "Shelby County"},
	"402": {"KY", "Jefferson County"},
	// Midwest
	"432": {"OH", "Franklin County"},
	"441": {"OH", "Cuyahoga County"},
	"462": {"IN", "Marion County"},
	"482": {"MI", "Wayne County"},
	"532": {"WI", "Milwaukee County"},
	"554": {"MN", "Hennepin County"},
	"606": {"IL", "Cook County"},
	"631": {"MO", "St. Louis City"},
	"641": {"MO", "Jackson County"},
	"681": {"NE", "Douglas County"},
	// South Central
	"701": {"LA", "Orleans Parish"},
	"721": {"AR", "Pulaski County"},
	"731": {"OK", "Oklahoma County"},
	"750": {"TX", "Dallas County"},
	"770": {"TX", "Harris County"},
	"782": {"TX", "Bexar County"},
	"787": {"TX", "Travis County"},
	"871": {"NM", "Bernalillo County"},
	// Mountain / West
	"802": {"CO", "Denver County"},
	"841": {"UT", "Salt Lake County"},
	"850": {"AZ", "Maricopa County"},
	"891": {"NV", "Clark County"},
	"900": {"CA", "Los Angeles County"},
	"921": {"CA", "San Diego County"},
	"941": {"CA", "San Francisco County"},
	"958": {"CA", "Sacramento County"},
	"967": {"HI", "Honolulu County"},
	"972": {"OR", "Multnomah County"},
	"981": {"WA", "King County"},
	"995": {"AK", "Anchorage Municipality"},
}
