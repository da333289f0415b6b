// Package advisor orchestrates the risk-map analysis: live weather with a
// deterministic estimation fallback, pure risk scoring, reverse geocoding with
// a region-table fallback, and optional high-risk alert publishing.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/croppilot/croppilot/internal/catalog"
	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/observability"
)

// Weather and place provenance values reported in every analysis so the UI
// can mark estimated data.
const (
	WeatherSourceLive     = "live"
	WeatherSourceEstimate = "estimate"

	PlaceSourceGeocoder    = "geocoder"
	PlaceSourceRegionTable = "region_table"
)

// RiskAlert is the event published when an analysis lands in the high band.
type RiskAlert struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Place      string    `json:"place"`
	Score      int       `json:"score"`
	Level      string    `json:"level"`
	Alerts     []string  `json:"alerts"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AlertPublisher delivers high-risk alerts to an external channel.
type AlertPublisher interface {
	Publish(ctx context.Context, alert RiskAlert) error
}

// Analysis is the full risk-map result for one coordinate.
type Analysis struct {
	Lat           float64                   `json:"lat"`
	Lon           float64                   `json:"lon"`
	Place         domain.Place              `json:"place"`
	PlaceSource   string                    `json:"place_source"`
	Weather       domain.WeatherObservation `json:"weather"`
	WeatherSource string                    `json:"weather_source"`
	Risk          domain.RiskResult         `json:"risk"`
	Crop          string                    `json:"crop,omitempty"`
	AnalyzedAt    time.Time                 `json:"analyzed_at"`
}

// Analyzer wires the decision core to its collaborators. The zero-value
// collaborators are all optional: without a weather source every analysis uses
// the estimate, without a geocoder the region table, without a publisher no
// alerts leave the process.
type Analyzer struct {
	weather  domain.WeatherSource
	geocoder domain.Geocoder
	alerts   AlertPublisher
	catalog  *catalog.Catalog
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates an Analyzer. weather, geocoder, and alerts may be nil.
func New(weather domain.WeatherSource, geocoder domain.Geocoder, alerts AlertPublisher, cat *catalog.Catalog, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{
		weather:  weather,
		geocoder: geocoder,
		alerts:   alerts,
		catalog:  cat,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness reports whether the service can evaluate requests: the
// catalogs must have loaded. Collaborator outages degrade to fallbacks and do
// not affect readiness.
func (a *Analyzer) CheckReadiness(_ context.Context) error {
	if a.catalog == nil || len(a.catalog.Schemes) == 0 || len(a.catalog.Crops) == 0 {
		return errors.New("catalogs not loaded")
	}
	return nil
}

// Analyze runs one full risk analysis for a coordinate. cropName is optional;
// when it names a known crop the crop-adjusted scoring strategy is applied on
// top of the base score.
func (a *Analyzer) Analyze(ctx context.Context, lat, lon float64, cropName string) (Analysis, error) {
	start := clock.Now()

	if lat < -90 || lat > 90 {
		return Analysis{}, fmt.Errorf("%w: latitude %.4f outside -90..90", domain.ErrInvalidQuery, lat)
	}
	if lon < -180 || lon > 180 {
		return Analysis{}, fmt.Errorf("%w: longitude %.4f outside -180..180", domain.ErrInvalidQuery, lon)
	}

	obs, weatherSource := a.fetchWeather(ctx, lat, lon)

	risk, err := domain.ScoreObservation(obs)
	if err != nil {
		a.metrics.RiskErrors.Inc()
		return Analysis{}, err
	}

	crop := ""
	if cropName != "" {
		if c, ok := a.catalog.CropByName(cropName); ok {
			risk = domain.AdjustForCrop(risk, c, obs)
			crop = c.Name
		}
	}

	place, placeSource := a.resolvePlace(ctx, lat, lon)

	analysis := Analysis{
		Lat:           lat,
		Lon:           lon,
		Place:         place,
		PlaceSource:   placeSource,
		Weather:       obs,
		WeatherSource: weatherSource,
		Risk:          risk,
		Crop:          crop,
		AnalyzedAt:    clock.Now(),
	}

	a.publishIfHigh(ctx, analysis)

	a.metrics.RiskAnalyses.WithLabelValues(weatherSource, string(risk.Level)).Inc()
	a.metrics.AnalysisDuration.Observe(clock.Since(start).Seconds())
	return analysis, nil
}

// fetchWeather tries the live source and falls back to the deterministic
// estimate keyed on latitude, current month, and coastal proximity.
func (a *Analyzer) fetchWeather(ctx context.Context, lat, lon float64) (domain.WeatherObservation, string) {
	if a.weather != nil {
		fetchStart := clock.Now()
		obs, err := a.weather.Fetch(ctx, lat, lon)
		a.metrics.WeatherAPIDuration.Observe(clock.Since(fetchStart).Seconds())
		if err == nil {
			a.metrics.WeatherFetches.WithLabelValues("success").Inc()
			return obs, WeatherSourceLive
		}
		a.metrics.WeatherFetches.WithLabelValues("error").Inc()
		a.logger.Warn("weather fetch failed, using estimate", "lat", lat, "lon", lon, "error", err)
	}
	return domain.EstimateObservation(lat, lon, clock.Now().Month()), WeatherSourceEstimate
}

// resolvePlace tries the geocoder and falls back to the coordinate-range
// region table.
func (a *Analyzer) resolvePlace(ctx context.Context, lat, lon float64) (domain.Place, string) {
	if a.geocoder != nil {
		place, err := a.geocoder.ReverseGeocode(ctx, lat, lon)
		if err == nil && place.DisplayName != "" {
			a.metrics.GeocodeRequests.WithLabelValues("success").Inc()
			return place, PlaceSourceGeocoder
		}
		if err != nil {
			a.metrics.GeocodeRequests.WithLabelValues("error").Inc()
			a.logger.Warn("reverse geocoding failed, using region table", "lat", lat, "lon", lon, "error", err)
		} else {
			a.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		}
	}
	place, _ := domain.LookupRegion(lat, lon)
	return place, PlaceSourceRegionTable
}

// publishIfHigh sends a best-effort alert for high-band analyses. A publish
// failure never fails the analysis.
func (a *Analyzer) publishIfHigh(ctx context.Context, analysis Analysis) {
	if a.alerts == nil || analysis.Risk.Level != domain.RiskHigh {
		return
	}

	alert := RiskAlert{
		Lat:        analysis.Lat,
		Lon:        analysis.Lon,
		Place:      analysis.Place.DisplayName,
		Score:      analysis.Risk.Score,
		Level:      string(analysis.Risk.Level),
		Alerts:     analysis.Risk.Alerts,
		AnalyzedAt: analysis.AnalyzedAt,
	}
	if err := a.alerts.Publish(ctx, alert); err != nil {
		a.metrics.AlertErrors.Inc()
		a.logger.Warn("alert publish failed", "lat", analysis.Lat, "lon", analysis.Lon, "error", err)
		return
	}
	a.metrics.AlertsPublished.Inc()
}
