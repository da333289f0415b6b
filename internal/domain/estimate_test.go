package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateObservation_Deterministic(t *testing.T) {
	first := EstimateObservation(19.07, 72.87, time.July)
	second := EstimateObservation(19.07, 72.87, time.July)
	assert.Equal(t, first, second)
}

func TestEstimateObservation_MonsoonBringsRain(t *testing.T) {
	inland := func(m time.Month) WeatherObservation {
		return EstimateObservation(26.8, 80.9, m) // Lucknow: inland
	}

	monsoon := inland(time.July)
	winter := inland(time.January)

	assert.Greater(t, monsoon.RainfallMm, winter.RainfallMm)
	assert.Greater(t, monsoon.HumidityPct, winter.HumidityPct)
	assert.Greater(t, monsoon.WindKph, winter.WindKph)
}

func TestEstimateObservation_CoastalProximity(t *testing.T) {
	coastal := EstimateObservation(19.07, 72.87, time.March) // Mumbai
	inland := EstimateObservation(26.8, 80.9, time.March)    // Lucknow

	assert.Greater(t, coastal.RainfallMm, inland.RainfallMm)
	assert.Greater(t, coastal.HumidityPct, inland.HumidityPct)
	assert.Greater(t, coastal.WindKph, inland.WindKph)
}

func TestEstimateObservation_LatitudeBands(t *testing.T) {
	// Same month, increasing distance from the equator cools the base.
	tropical := EstimateObservation(12, 90, time.March)
	subtropical := EstimateObservation(30, 90, time.March)
	temperate := EstimateObservation(45, 90, time.March)

	assert.Greater(t, tropical.TemperatureC, subtropical.TemperatureC)
	assert.Greater(t, subtropical.TemperatureC, temperate.TemperatureC)
}

func TestEstimateObservation_AlwaysScoreable(t *testing.T) {
	// Every estimate must be a valid observation: the fallback path can never
	// hand the scorer something it rejects.
	for lat := -60.0; lat <= 60; lat += 7.5 {
		for m := time.January; m <= time.December; m++ {
			obs := EstimateObservation(lat, 78, m)
			_, err := ScoreObservation(obs)
			require.NoError(t, err, "lat %.1f month %s", lat, m)
		}
	}
}

func TestIsCoastal(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{"Mumbai", 19.07, 72.87, true},
		{"Chennai", 13.08, 80.27, true},
		{"Bhuj", 23.2, 69.7, true},
		{"Nagpur", 21.15, 79.08, false},
		{"Delhi", 28.6, 77.2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsCoastal(tc.lat, tc.lon))
		})
	}
}

func TestLookupRegion(t *testing.T) {
	t.Run("known regions", func(t *testing.T) {
		place, ok := LookupRegion(30.9, 75.85) // Ludhiana
		require.True(t, ok)
		assert.Equal(t, "Punjab", place.State)
		assert.Equal(t, "Ludhiana, Punjab", place.DisplayName)

		place, ok = LookupRegion(26.85, 80.95) // Lucknow
		require.True(t, ok)
		assert.Equal(t, "Uttar Pradesh", place.State)
	})

	t.Run("outside every range", func(t *testing.T) {
		place, ok := LookupRegion(0, 0)
		assert.False(t, ok)
		assert.Equal(t, "Location details unavailable", place.DisplayName)
	})
}

func TestSeasonForMonth(t *testing.T) {
	assert.Equal(t, "Kharif", SeasonForMonth(time.July))
	assert.Equal(t, "Kharif", SeasonForMonth(time.October))
	assert.Equal(t, "Rabi", SeasonForMonth(time.December))
	assert.Equal(t, "Rabi", SeasonForMonth(time.March))
	assert.Equal(t, "Zaid", SeasonForMonth(time.April))
	assert.Equal(t, "Zaid", SeasonForMonth(time.May))
}
