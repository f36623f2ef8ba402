package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/episcope/internal/fetcher"
	"github.com/sells-group/episcope/internal/model"
)

// WastewaterName is the provenance identifier for the CDC NWSS-style
// wastewater surveillance source.
const WastewaterName = "CDC Wastewater"

// wastewaterCoverage is the fixed syndrome set wastewater surveillance
// observes. Pathogens tracked in sewersheds cover respiratory and enteric
// disease only.
var wastewaterCoverage = []model.Syndrome{
	model.SyndromeRespiratoryUpper,
	model.SyndromeRespiratoryLower,
	model.SyndromeGastrointestinal,
	model.SyndromeFebrile,
}

// wastewaterRow is the provider JSON shape for one sampling-period record.
type wastewaterRow struct {
	Jurisdiction  string  `json:"wwtp_jurisdiction"`
	County        string  `json:"county_names"`
	Pathogen      string  `json:"pathogen"`
	DateStart     string  `json:"date_start"`
	DateEnd       string  `json:"date_end"`
	PercentileAvg float64 `json:"detect_prop_15d"`
}

// wastewaterPathogens maps provider pathogen codes to clinical condition
// names and their syndromes. Unknown pathogens are skipped.
var wastewaterPathogens = map[string]struct {
	condition string
	syndromes []model.Syndrome
}{
	"sars-cov-2":  {"COVID-19", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	"influenza a": {"Influenza", []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	"rsv":         {"RSV", []model.Syndrome{model.SyndromeRespiratoryLower, model.SyndromeFebrile}},
	"norovirus":   {"Norovirus", []model.Syndrome{model.SyndromeGastrointestinal}},
}

// WastewaterAdapter queries wastewater pathogen surveillance.
type WastewaterAdapter struct {
	baseURL string
	client  *fetcher.Client
	cache   Cache
	ttl     time.Duration
}

// NewWastewaterAdapter creates the adapter. The cache is required; pass
// NopCache to disable caching.
func NewWastewaterAdapter(baseURL string, client *fetcher.Client, cache Cache, ttl time.Duration) *WastewaterAdapter {
	return &WastewaterAdapter{baseURL: baseURL, client: client, cache: cache, ttl: ttl}
}

func (a *WastewaterAdapter) Name() string { return WastewaterName }

func (a *WastewaterAdapter) Coverage() []model.Syndrome { return wastewaterCoverage }

func (a *WastewaterAdapter) IsRelevant(syndromes []model.Syndrome) bool {
	return covers(wastewaterCoverage, syndromes)
}

// Fetch returns the newest wastewater observation per pathogen for the
// region, with trend derived from the two most recent sampling periods.
func (a *WastewaterAdapter) Fetch(ctx context.Context, region model.ResolvedRegion, syndromes []model.Syndrome) ([]model.SurveillanceDataPoint, error) {
	if !a.IsRelevant(syndromes) {
		return nil, nil
	}

	key := CacheKey(a.Name(), region, syndromes)
	if points, ok := a.cache.Get(key); ok {
		zap.L().Debug("wastewater: cache hit", zap.String("key", key))
		return points, nil
	}

	params := url.Values{
		"wwtp_jurisdiction": {region.StateAbbrev},
		"$order":            {"date_end"},
	}
	reqURL := fmt.Sprintf("%s?%s", a.baseURL, params.Encode())

	var rows []wastewaterRow
	if err := a.client.GetJSON(ctx, reqURL, &rows); err != nil {
		return nil, a.wrapError(err)
	}

	var raw []model.SurveillanceDataPoint
	for _, row := range rows {
		mapping, ok := wastewaterPathogens[strings.ToLower(row.Pathogen)]
		if !ok {
			continue
		}
		start, err1 := time.Parse("2006-01-02", row.DateStart)
		end, err2 := time.Parse("2006-01-02", row.DateEnd)
		if err1 != nil || err2 != nil {
			continue
		}
		raw = append(raw, model.SurveillanceDataPoint{
			Source:      a.Name(),
			Condition:   mapping.condition,
			Syndromes:   mapping.syndromes,
			Region:      region.StateAbbrev,
			GeoLevel:    model.GeoLevelState,
			PeriodStart: start,
			PeriodEnd:   end,
			Value:       row.PercentileAvg,
			Unit:        "detection percentile",
		})
	}

	points := collapseSeries(raw)
	a.cache.Set(key, points, a.ttl)

	zap.L().Debug("wastewater: fetched",
		zap.String("state", region.StateAbbrev),
		zap.Int("rows", len(rows)),
		zap.Int("points", len(points)),
	)
	return points, nil
}

// wrapError converts transport errors into the adapter error taxonomy.
func (a *WastewaterAdapter) wrapError(err error) error {
	var se *fetcher.StatusError
	if errors.As(err, &se) {
		return &StatusError{Source: a.Name(), StatusCode: se.StatusCode}
	}
	return &NetworkError{Source: a.Name(), Err: err}
}
