// Package syndrome classifies free-text clinical phrasing into the closed
// syndrome vocabulary used to route surveillance queries.
package syndrome

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sells-group/episcope/internal/model"
)

// keywordMap associates each syndrome with the clinical keywords, phrases,
// and word stems that indicate it. Entries match as case-insensitive
// substrings, so stems like "sneez" cover their inflections.
var keywordMap = map[model.Syndrome][]string{
	model.SyndromeRespiratoryUpper: {
		"cough", "sore throat", "pharyngitis", "congestion", "runny nose",
		"rhinorrhea", "sneez", "nasal", "sinus", "cold symptoms",
		"hoarse", "laryngitis", "influenza", "covid", "coronavirus",
	},
	model.SyndromeRespiratoryLower: {
		"shortness of breath", "dyspnea", "wheez", "pneumonia",
		"bronchitis", "bronchiolitis", "chest tightness", "hypoxia",
		"respiratory distress", "crackles", "productive cough",
	},
	model.SyndromeGastrointestinal: {
		"nausea", "vomit", "diarrhea", "abdominal pain", "stomach",
		"gastroenteritis", "cramping", "loose stool", "dehydration",
		"norovirus", "food poisoning", "emesis",
	},
	model.SyndromeNeurological: {
		"headache", "migraine", "seizure", "confusion", "altered mental",
		"meningitis", "encephalitis", "stiff neck", "photophobia",
		"weakness", "paralysis", "neuro",
	},
	model.SyndromeFebrile: {
		"fever", "febrile", "chills", "rigors", "night sweats", "pyrexia",
		"temperature", "malaise", "body aches", "myalgia",
	},
	model.SyndromeDermatologic: {
		"rash", "lesion", "vesicle", "hives", "urticaria", "pruritus",
		"itch", "cellulitis", "measles", "mpox", "chickenpox", "varicella",
	},
}

// abbreviationMap lists short clinical abbreviations matched only against
// whole words, never as substrings: "uri" must not fire inside "urination",
// nor "flu" inside "fluid".
var abbreviationMap = map[model.Syndrome][]string{
	model.SyndromeRespiratoryUpper: {"uri", "flu"},
	model.SyndromeRespiratoryLower: {"sob", "rsv"},
	model.SyndromeGastrointestinal: {"gi"},
	model.SyndromeNeurological:     {"ams"},
}

// Mapper performs deterministic keyword classification. It is stateless and
// safe for concurrent use.
type Mapper struct{}

// NewMapper returns a Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapToSyndromes classifies a chief complaint and optional differential list
// into syndrome categories. An empty result is the correct "no surveillance
// signal" outcome for unclassifiable input, never an error.
func (m *Mapper) MapToSyndromes(chiefComplaint string, differential []string) []model.Syndrome {
	var sb strings.Builder
	sb.WriteString(chiefComplaint)
	for _, d := range differential {
		sb.WriteString(" ")
		sb.WriteString(d)
	}
	text := strings.ToLower(sb.String())
	words := tokenize(text)

	matched := make(map[model.Syndrome]bool)
	for syn, keywords := range keywordMap {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				matched[syn] = true
				break
			}
		}
	}
	for syn, abbrevs := range abbreviationMap {
		if matched[syn] {
			continue
		}
		for _, a := range abbrevs {
			if words[a] {
				matched[syn] = true
				break
			}
		}
	}

	out := make([]model.Syndrome, 0, len(matched))
	for syn := range matched {
		out = append(out, syn)
	}
	// Deterministic output order for stable cache keys and tests.
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// tokenize splits lowered text into its word set. Hyphens and slashes are
// separators, so "flu-like" and "n/v" split into their parts.
func tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}

// conditionCatalog maps condition-name keywords to the syndromes that
// condition presents with. Used to attribute syndromes to differential
// entries that have no matching surveillance data.
var conditionCatalog = []struct {
	keyword   string
	syndromes []model.Syndrome
}{
	{"influenza", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"flu", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"covid", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"sars-cov-2", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"rsv", []model.Syndrome{model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"respiratory syncytial", []model.Syndrome{model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"pneumonia", []model.Syndrome{model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	{"strep", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeFebrile}},
	{"pertussis", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower}},
	{"norovirus", []model.Syndrome{model.SyndromeGastrointestinal}},
	{"rotavirus", []model.Syndrome{model.SyndromeGastrointestinal}},
	{"gastroenteritis", []model.Syndrome{model.SyndromeGastrointestinal}},
	{"salmonell", []model.Syndrome{model.SyndromeGastrointestinal, model.SyndromeFebrile}},
	{"e. coli", []model.Syndrome{model.SyndromeGastrointestinal}},
	{"campylobacter", []model.Syndrome{model.SyndromeGastrointestinal, model.SyndromeFebrile}},
	{"meningitis", []model.Syndrome{model.SyndromeNeurological, model.SyndromeFebrile}},
	{"encephalitis", []model.Syndrome{model.SyndromeNeurological, model.SyndromeFebrile}},
	{"west nile", []model.Syndrome{model.SyndromeNeurological, model.SyndromeFebrile}},
	{"measles", []model.Syndrome{model.SyndromeDermatologic, model.SyndromeFebrile}},
	{"mpox", []model.Syndrome{model.SyndromeDermatologic, model.SyndromeFebrile}},
	{"varicella", []model.Syndrome{model.SyndromeDermatologic, model.SyndromeFebrile}},
	{"hand, foot", []model.Syndrome{model.SyndromeDermatologic, model.SyndromeFebrile}},
}

// ConditionSyndromes returns the syndromes a named condition presents with,
// or nil when the condition is not in the catalog.
func ConditionSyndromes(condition string) []model.Syndrome {
	lower := strings.ToLower(condition)
	for _, entry := range conditionCatalog {
		if strings.Contains(lower, entry.keyword) {
			return entry.syndromes
		}
	}
	return nil
}
