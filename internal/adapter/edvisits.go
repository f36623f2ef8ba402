package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/episcope/internal/fetcher"
	"github.com/sells-group/episcope/internal/model"
)

// EDVisitsName identifies the syndromic emergency-department visit source
// (NSSP style percent-of-visits by category).
const EDVisitsName = "ED Visit Surveillance"

var edVisitsCoverage = []model.Syndrome{
	model.SyndromeRespiratoryUpper,
	model.SyndromeRespiratoryLower,
	model.SyndromeGastrointestinal,
	model.SyndromeNeurological,
	model.SyndromeFebrile,
}

type edVisitsRow struct {
	Geography string  `json:"geography"`
	Category  string  `json:"ccdd_category"`
	WeekEnd   string  `json:"week_end"`
	Percent   float64 `json:"percent_visits"`
}

// edVisitCategories maps syndromic categories to condition names and
// syndromes. ED syndromic data is category-level, not pathogen-level, so
// conditions here are syndrome labels rather than specific organisms.
var edVisitCategories = map[string]struct {
	condition string
	syndromes []model.Syndrome
}{
	"CDC Respiratory Syncytial Virus v1":   {"RSV", []model.Syndrome{model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	"CDC COVID-Specific v1":                {"COVID-19", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	"CDC Influenza-Like Illness v1":        {"Influenza", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeFebrile}},
	"CDC Acute Gastroenteritis v1":         {"Acute Gastroenteritis", []model.Syndrome{model.SyndromeGastrointestinal}},
	"CDC Meningitis-Encephalitis v1":       {"Meningitis/Encephalitis", []model.Syndrome{model.SyndromeNeurological, model.SyndromeFebrile}},
}

// EDVisitsAdapter queries syndromic ED visit surveillance.
type EDVisitsAdapter struct {
	baseURL string
	client  *fetcher.Client
	cache   Cache
	ttl     time.Duration
}

// NewEDVisitsAdapter creates the adapter.
func NewEDVisitsAdapter(baseURL string, client *fetcher.Client, cache Cache, ttl time.Duration) *EDVisitsAdapter {
	return &EDVisitsAdapter{baseURL: baseURL, client: client, cache: cache, ttl: ttl}
}

func (a *EDVisitsAdapter) Name() string { return EDVisitsName }

func (a *EDVisitsAdapter) Coverage() []model.Syndrome { return edVisitsCoverage }

func (a *EDVisitsAdapter) IsRelevant(syndromes []model.Syndrome) bool {
	return covers(edVisitsCoverage, syndromes)
}

func (a *EDVisitsAdapter) Fetch(ctx context.Context, region model.ResolvedRegion, syndromes []model.Syndrome) ([]model.SurveillanceDataPoint, error) {
	if !a.IsRelevant(syndromes) {
		return nil, nil
	}

	key := CacheKey(a.Name(), region, syndromes)
	if points, ok := a.cache.Get(key); ok {
		zap.L().Debug("edvisits: cache hit", zap.String("key", key))
		return points, nil
	}

	params := url.Values{
		"geography": {region.StateAbbrev},
		"$order":    {"week_end"},
	}
	reqURL := fmt.Sprintf("%s?%s", a.baseURL, params.Encode())

	var rows []edVisitsRow
	if err := a.client.GetJSON(ctx, reqURL, &rows); err != nil {
		return nil, a.wrapError(err)
	}

	var raw []model.SurveillanceDataPoint
	for _, row := range rows {
		mapping, ok := edVisitCategories[row.Category]
		if !ok {
			continue
		}
		// Only emit categories overlapping the requested syndromes; ED data
		// spans many categories and irrelevant ones just add noise.
		if !model.SyndromesIntersect(mapping.syndromes, syndromes) {
			continue
		}
		weekEnd, err := time.Parse("2006-01-02", row.WeekEnd)
		if err != nil {
			continue
		}
		raw = append(raw, model.SurveillanceDataPoint{
			Source:      a.Name(),
			Condition:   mapping.condition,
			Syndromes:   mapping.syndromes,
			Region:      region.StateAbbrev,
			GeoLevel:    model.GeoLevelState,
			PeriodStart: weekEnd.AddDate(0, 0, -6),
			PeriodEnd:   weekEnd,
			Value:       row.Percent,
			Unit:        "percent of ED visits",
		})
	}

	points := collapseSeries(raw)
	a.cache.Set(key, points, a.ttl)

	zap.L().Debug("edvisits: fetched",
		zap.String("state", region.StateAbbrev),
		zap.Int("points", len(points)),
	)
	return points, nil
}

func (a *EDVisitsAdapter) wrapError(err error) error {
	var se *fetcher.StatusError
	if errors.As(err, &se) {
		return &StatusError{Source: a.Name(), StatusCode: se.StatusCode}
	}
	return &NetworkError{Source: a.Name(), Err: err}
}
