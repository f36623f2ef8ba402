package model

// Syndrome is a coarse clinical category used to decide which surveillance
// sources are relevant to a case. The vocabulary is closed: adapters declare
// coverage against these values and the mapper never emits anything else.
type Syndrome string

const (
	SyndromeRespiratoryUpper Syndrome = "respiratory_upper"
	SyndromeRespiratoryLower Syndrome = "respiratory_lower"
	SyndromeGastrointestinal Syndrome = "gastrointestinal"
	SyndromeNeurological     Syndrome = "neurological"
	SyndromeFebrile          Syndrome = "febrile"
	SyndromeDermatologic     Syndrome = "dermatologic"
)

// AllSyndromes lists the closed syndrome vocabulary.
var AllSyndromes = []Syndrome{
	SyndromeRespiratoryUpper,
	SyndromeRespiratoryLower,
	SyndromeGastrointestinal,
	SyndromeNeurological,
	SyndromeFebrile,
	SyndromeDermatologic,
}

// SyndromesIntersect reports whether the two sets share at least one syndrome.
func SyndromesIntersect(a, b []Syndrome) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
