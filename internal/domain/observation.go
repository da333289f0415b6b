package domain

import "context"

// WeatherObservation is a snapshot of expected conditions at a coordinate,
// aggregated over the forecast window. Immutable per query.
type WeatherObservation struct {
	TemperatureC float64 `json:"temperature_c"`
	RainfallMm   float64 `json:"rainfall_mm"`
	WindKph      float64 `json:"wind_kph"`
	HumidityPct  float64 `json:"humidity_pct"`
}

// WeatherSource fetches an observation for a coordinate. Implementations wrap
// failures in ErrUnavailable; callers supply the estimation fallback.
type WeatherSource interface {
	Fetch(ctx context.Context, lat, lon float64) (WeatherObservation, error)
}

// Place is a reverse-geocoded location at village granularity.
type Place struct {
	Village     string `json:"village,omitempty"`
	District    string `json:"district,omitempty"`
	State       string `json:"state,omitempty"`
	DisplayName string `json:"display_name"`
}

// Geocoder resolves coordinates to place details. Implementations wrap
// failures in ErrUnavailable; callers fall back to the region table.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}
