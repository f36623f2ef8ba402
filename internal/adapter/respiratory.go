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

// RespiratoryName identifies the respiratory illness hospitalization
// surveillance source (RESP-NET style weekly rates).
const RespiratoryName = "CDC Respiratory Surveillance"

var respiratoryCoverage = []model.Syndrome{
	model.SyndromeRespiratoryUpper,
	model.SyndromeRespiratoryLower,
	model.SyndromeFebrile,
}

// respiratoryRow is the provider JSON shape for one surveillance week.
type respiratoryRow struct {
	State   string  `json:"state"`
	Disease string  `json:"surveillance_network"`
	WeekEnd string  `json:"week_ending_date"`
	Rate    float64 `json:"weekly_rate"`
}

// respiratoryDiseases maps provider network codes to condition names.
var respiratoryDiseases = map[string]string{
	"FluSurv-NET": "Influenza",
	"COVID-NET":   "COVID-19",
	"RSV-NET":     "RSV",
}

// RespiratoryAdapter queries weekly respiratory hospitalization rates.
type RespiratoryAdapter struct {
	baseURL string
	client  *fetcher.Client
	cache   Cache
	ttl     time.Duration
}

// NewRespiratoryAdapter creates the adapter.
func NewRespiratoryAdapter(baseURL string, client *fetcher.Client, cache Cache, ttl time.Duration) *RespiratoryAdapter {
	return &RespiratoryAdapter{baseURL: baseURL, client: client, cache: cache, ttl: ttl}
}

func (a *RespiratoryAdapter) Name() string { return RespiratoryName }

func (a *RespiratoryAdapter) Coverage() []model.Syndrome { return respiratoryCoverage }

func (a *RespiratoryAdapter) IsRelevant(syndromes []model.Syndrome) bool {
	return covers(respiratoryCoverage, syndromes)
}

func (a *RespiratoryAdapter) Fetch(ctx context.Context, region model.ResolvedRegion, syndromes []model.Syndrome) ([]model.SurveillanceDataPoint, error) {
	if !a.IsRelevant(syndromes) {
		return nil, nil
	}

	key := CacheKey(a.Name(), region, syndromes)
	if points, ok := a.cache.Get(key); ok {
		zap.L().Debug("respiratory: cache hit", zap.String("key", key))
		return points, nil
	}

	params := url.Values{
		"state":  {region.State},
		"$order": {"week_ending_date"},
	}
	reqURL := fmt.Sprintf("%s?%s", a.baseURL, params.Encode())

	var rows []respiratoryRow
	if err := a.client.GetJSON(ctx, reqURL, &rows); err != nil {
		return nil, a.wrapError(err)
	}

	var raw []model.SurveillanceDataPoint
	for _, row := range rows {
		condition, ok := respiratoryDiseases[row.Disease]
		if !ok {
			continue
		}
		weekEnd, err := time.Parse("2006-01-02", row.WeekEnd)
		if err != nil {
			continue
		}
		raw = append(raw, model.SurveillanceDataPoint{
			Source:      a.Name(),
			Condition:   condition,
			Syndromes:   conditionRespSyndromes(condition),
			Region:      region.StateAbbrev,
			GeoLevel:    model.GeoLevelState,
			PeriodStart: weekEnd.AddDate(0, 0, -6),
			PeriodEnd:   weekEnd,
			Value:       row.Rate,
			Unit:        "hospitalizations per 100k",
		})
	}

	points := collapseSeries(raw)
	a.cache.Set(key, points, a.ttl)

	zap.L().Debug("respiratory: fetched",
		zap.String("state", region.StateAbbrev),
		zap.Int("points", len(points)),
	)
	return points, nil
}

func conditionRespSyndromes(condition string) []model.Syndrome {
	if condition == "RSV" {
		return []model.Syndrome{model.SyndromeRespiratoryLower, model.SyndromeFebrile}
	}
	return []model.Syndrome{model.SyndromeRespiratoryUpper, model.SyndromeRespiratoryLower, model.SyndromeFebrile}
}

func (a *RespiratoryAdapter) wrapError(err error) error {
	var se *fetcher.StatusError
	if errors.As(err, &se) {
		return &StatusError{Source: a.Name(), StatusCode: se.StatusCode}
	}
	return &NetworkError{Source: a.Name(), Err: err}
}
