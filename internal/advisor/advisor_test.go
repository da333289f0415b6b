package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croppilot/croppilot/internal/catalog"
	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/observability"
)

type stubWeather struct {
	obs   domain.WeatherObservation
	err   error
	calls int
}

func (s *stubWeather) Fetch(_ context.Context, _, _ float64) (domain.WeatherObservation, error) {
	s.calls++
	return s.obs, s.err
}

type stubGeocoder struct {
	place domain.Place
	err   error
}

func (s *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.Place, error) {
	return s.place, s.err
}

type capturePublisher struct {
	alerts []RiskAlert
	err    error
}

func (c *capturePublisher) Publish(_ context.Context, alert RiskAlert) error {
	if c.err != nil {
		return c.err
	}
	c.alerts = append(c.alerts, alert)
	return nil
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Schemes: []domain.Scheme{{ID: "s1", Name: "Scheme", DisasterTypes: []string{"flood"}, EligibleCrops: []string{"All Crops"}, MaxLandHectares: 10, MaxCompensation: 10000}},
		Crops: []domain.Crop{
			{Name: "Wheat", Season: "Rabi", TempMinC: 10, TempMaxC: 25, RainfallNeed: domain.RainfallNeedMedium},
			{Name: "Bajra", Season: "Kharif", TempMinC: 25, TempMaxC: 35, RainfallNeed: domain.RainfallNeedLow, DroughtTolerant: true},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAnalyzer(weather domain.WeatherSource, geocoder domain.Geocoder, alerts AlertPublisher) *Analyzer {
	return New(weather, geocoder, alerts, testCatalog(), discardLogger(), observability.NewMetricsForTesting())
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestAnalyze_LiveWeather(t *testing.T) {
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 25, RainfallMm: 20, WindKph: 10, HumidityPct: 60}}
	geocoder := &stubGeocoder{place: domain.Place{Village: "Khanpur", State: "Punjab", DisplayName: "Khanpur, Punjab"}}

	analysis, err := newAnalyzer(weather, geocoder, nil).Analyze(context.Background(), 30.9, 75.85, "")
	require.NoError(t, err)

	assert.Equal(t, WeatherSourceLive, analysis.WeatherSource)
	assert.Equal(t, PlaceSourceGeocoder, analysis.PlaceSource)
	assert.Equal(t, "Khanpur, Punjab", analysis.Place.DisplayName)
	assert.Equal(t, domain.RiskLow, analysis.Risk.Level)
	assert.Equal(t, 1, weather.calls)
}

func TestAnalyze_WeatherOutageFallsBackToEstimate(t *testing.T) {
	// Frozen in July: the estimate is the monsoon profile for the coordinate,
	// so the degraded analysis is reproducible.
	freezeClock(t, time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC))

	weather := &stubWeather{err: fmt.Errorf("%w: timeout", domain.ErrUnavailable)}
	analyzer := newAnalyzer(weather, nil, nil)

	analysis, err := analyzer.Analyze(context.Background(), 26.8, 80.9, "")
	require.NoError(t, err)

	assert.Equal(t, WeatherSourceEstimate, analysis.WeatherSource)
	assert.Equal(t, domain.EstimateObservation(26.8, 80.9, time.July), analysis.Weather)
	assert.Equal(t, time.Date(2026, 7, 14, 12, 0, 0, 0, time.UTC), analysis.AnalyzedAt)
}

func TestAnalyze_NoWeatherSourceConfigured(t *testing.T) {
	freezeClock(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	analysis, err := newAnalyzer(nil, nil, nil).Analyze(context.Background(), 19.07, 72.87, "")
	require.NoError(t, err)
	assert.Equal(t, WeatherSourceEstimate, analysis.WeatherSource)
}

func TestAnalyze_GeocoderOutageFallsBackToRegionTable(t *testing.T) {
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 25, RainfallMm: 20, WindKph: 10, HumidityPct: 60}}
	geocoder := &stubGeocoder{err: fmt.Errorf("%w: nominatim down", domain.ErrUnavailable)}

	analysis, err := newAnalyzer(weather, geocoder, nil).Analyze(context.Background(), 30.9, 75.85, "")
	require.NoError(t, err)

	assert.Equal(t, PlaceSourceRegionTable, analysis.PlaceSource)
	assert.Equal(t, "Punjab", analysis.Place.State)
}

func TestAnalyze_InvalidCoordinates(t *testing.T) {
	analyzer := newAnalyzer(nil, nil, nil)

	_, err := analyzer.Analyze(context.Background(), 91, 0, "")
	require.ErrorIs(t, err, domain.ErrInvalidQuery)

	_, err = analyzer.Analyze(context.Background(), 0, -181, "")
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestAnalyze_CropAdjustment(t *testing.T) {
	// 28°C is fine generically but above wheat's range, so naming the crop
	// raises the temperature component.
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 28, RainfallMm: 20, WindKph: 10, HumidityPct: 60}}

	base, err := newAnalyzer(weather, nil, nil).Analyze(context.Background(), 30.9, 75.85, "")
	require.NoError(t, err)

	adjusted, err := newAnalyzer(weather, nil, nil).Analyze(context.Background(), 30.9, 75.85, "wheat")
	require.NoError(t, err)

	assert.Equal(t, "Wheat", adjusted.Crop)
	assert.Greater(t, adjusted.Risk.Components.Temperature, base.Risk.Components.Temperature)
}

func TestAnalyze_UnknownCropIgnored(t *testing.T) {
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 25, RainfallMm: 20, WindKph: 10, HumidityPct: 60}}

	analysis, err := newAnalyzer(weather, nil, nil).Analyze(context.Background(), 30.9, 75.85, "quinoa")
	require.NoError(t, err)
	assert.Empty(t, analysis.Crop)
}

func TestAnalyze_HighRiskPublishesAlert(t *testing.T) {
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 45, RainfallMm: 100, WindKph: 80, HumidityPct: 90}}
	publisher := &capturePublisher{}

	analysis, err := newAnalyzer(weather, nil, publisher).Analyze(context.Background(), 30.9, 75.85, "")
	require.NoError(t, err)
	require.Equal(t, domain.RiskHigh, analysis.Risk.Level)

	require.Len(t, publisher.alerts, 1)
	alert := publisher.alerts[0]
	assert.Equal(t, analysis.Risk.Score, alert.Score)
	assert.Equal(t, "high", alert.Level)
	assert.Equal(t, analysis.Place.DisplayName, alert.Place)
}

func TestAnalyze_LowRiskDoesNotPublish(t *testing.T) {
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 25, RainfallMm: 20, WindKph: 10, HumidityPct: 60}}
	publisher := &capturePublisher{}

	_, err := newAnalyzer(weather, nil, publisher).Analyze(context.Background(), 30.9, 75.85, "")
	require.NoError(t, err)
	assert.Empty(t, publisher.alerts)
}

func TestAnalyze_PublishFailureDoesNotFailAnalysis(t *testing.T) {
	weather := &stubWeather{obs: domain.WeatherObservation{TemperatureC: 45, RainfallMm: 100, WindKph: 80, HumidityPct: 90}}
	publisher := &capturePublisher{err: errors.New("broker down")}

	_, err := newAnalyzer(weather, nil, publisher).Analyze(context.Background(), 30.9, 75.85, "")
	require.NoError(t, err)
}

func TestCheckReadiness(t *testing.T) {
	t.Run("ready with loaded catalogs", func(t *testing.T) {
		assert.NoError(t, newAnalyzer(nil, nil, nil).CheckReadiness(context.Background()))
	})

	t.Run("not ready without catalogs", func(t *testing.T) {
		a := New(nil, nil, nil, &catalog.Catalog{}, discardLogger(), observability.NewMetricsForTesting())
		assert.Error(t, a.CheckReadiness(context.Background()))
	})
}
