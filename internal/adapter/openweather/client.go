// Package openweather implements domain.WeatherSource against the OpenWeather
// 5-day/3-hour forecast API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/croppilot/croppilot/internal/domain"
)

// msToKph converts the API's metric wind speed (m/s) to km/h.
const msToKph = 3.6

// Client fetches and aggregates the 5-day forecast into one observation.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an OpenWeather forecast client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		logger:  logger,
	}
}

// Fetch retrieves the forecast for a coordinate and aggregates it: average
// temperature and humidity, total rainfall, and peak wind across the window.
// All failures wrap domain.ErrUnavailable so the caller can fall back to the
// deterministic estimate.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (domain.WeatherObservation, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", lat)},
		"lon":   {fmt.Sprintf("%.4f", lon)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("%w: create forecast request: %v", domain.ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("%w: forecast request: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return domain.WeatherObservation{}, fmt.Errorf("%w: invalid OpenWeather API key", domain.ErrUnavailable)
	case http.StatusTooManyRequests:
		return domain.WeatherObservation{}, fmt.Errorf("%w: OpenWeather rate limit exceeded", domain.ErrUnavailable)
	default:
		return domain.WeatherObservation{}, fmt.Errorf("%w: OpenWeather status %d", domain.ErrUnavailable, resp.StatusCode)
	}

	var forecast response
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("%w: decode forecast: %v", domain.ErrUnavailable, err)
	}
	if len(forecast.List) == 0 {
		return domain.WeatherObservation{}, fmt.Errorf("%w: forecast contains no entries", domain.ErrUnavailable)
	}

	return aggregate(forecast), nil
}

// aggregate folds the 3-hourly forecast entries into a single observation.
func aggregate(forecast response) domain.WeatherObservation {
	var tempSum, humiditySum, rainTotal, windPeak float64
	for _, entry := range forecast.List {
		tempSum += entry.Main.Temp
		humiditySum += entry.Main.Humidity
		rainTotal += entry.Rain.ThreeHour
		if kph := entry.Wind.Speed * msToKph; kph > windPeak {
			windPeak = kph
		}
	}

	n := float64(len(forecast.List))
	return domain.WeatherObservation{
		TemperatureC: tempSum / n,
		RainfallMm:   rainTotal,
		WindKph:      windPeak,
		HumidityPct:  humiditySum / n,
	}
}

// OpenWeather API response types.

type response struct {
	List []forecastEntry `json:"list"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

type forecastEntry struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s with units=metric
	} `json:"wind"`
	Rain struct {
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}
