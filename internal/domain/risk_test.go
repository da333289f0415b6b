package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mildObservation() WeatherObservation {
	return WeatherObservation{TemperatureC: 25, RainfallMm: 20, WindKph: 10, HumidityPct: 60}
}

func TestScoreObservation_HeatwaveScenario(t *testing.T) {
	// 45°C, no rain, light wind: temperature component saturates, rainfall and
	// wind stay low, and the weighted sum is reproducible from the constants:
	// 0.3*100 + 0.5*0 + 0.2*7.5 = 31.5 -> 32.
	obs := WeatherObservation{TemperatureC: 45, RainfallMm: 0, WindKph: 5, HumidityPct: 30}

	result, err := ScoreObservation(obs)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Components.Temperature)
	assert.Equal(t, 0, result.Components.Rainfall)
	assert.Equal(t, 8, result.Components.Wind)
	assert.Equal(t, 32, result.Score)
	assert.Equal(t, RiskMedium, result.Level)
	assert.Contains(t, result.Alerts, "heat stress: expected temperature 45.0°C exceeds 35°C")
	assert.Contains(t, result.Alerts, "drought advisory: expected rainfall 0.0mm below 10mm")
}

func TestScoreObservation_ScoreAlwaysBounded(t *testing.T) {
	observations := []WeatherObservation{
		{TemperatureC: -40, RainfallMm: 0, WindKph: 0, HumidityPct: 0},
		{TemperatureC: 25, RainfallMm: 20, WindKph: 10, HumidityPct: 50},
		{TemperatureC: 55, RainfallMm: 400, WindKph: 250, HumidityPct: 100},
		{TemperatureC: 0, RainfallMm: 1000, WindKph: 0, HumidityPct: 100},
	}

	for _, obs := range observations {
		result, err := ScoreObservation(obs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		for _, c := range []int{result.Components.Temperature, result.Components.Rainfall, result.Components.Wind} {
			assert.GreaterOrEqual(t, c, 0)
			assert.LessOrEqual(t, c, 100)
		}
	}
}

func TestScoreObservation_RainfallMonotonicity(t *testing.T) {
	// Increasing rainfall with temperature and wind fixed never decreases the
	// rainfall component or the overall score.
	prevComponent := -1
	prevScore := -1
	for rain := 0.0; rain <= 200; rain += 2.5 {
		obs := mildObservation()
		obs.RainfallMm = rain

		result, err := ScoreObservation(obs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Components.Rainfall, prevComponent, "rainfall %.1fmm", rain)
		assert.GreaterOrEqual(t, result.Score, prevScore, "rainfall %.1fmm", rain)
		prevComponent = result.Components.Rainfall
		prevScore = result.Score
	}
}

func TestScoreObservation_RainfallThresholdBoundaries(t *testing.T) {
	score := func(rain float64) RiskResult {
		obs := mildObservation()
		obs.RainfallMm = rain
		result, err := ScoreObservation(obs)
		require.NoError(t, err)
		return result
	}

	t.Run("below 10mm is the low band with a drought advisory", func(t *testing.T) {
		result := score(9.9)
		assert.Less(t, result.Components.Rainfall, 20)
		assert.Contains(t, result.Alerts, "drought advisory: expected rainfall 9.9mm below 10mm")
	})

	t.Run("exactly 10mm belongs to the medium band", func(t *testing.T) {
		result := score(10)
		assert.Equal(t, 20, result.Components.Rainfall)
		assert.Empty(t, result.Alerts)
	})

	t.Run("exactly 50mm belongs to the medium band", func(t *testing.T) {
		result := score(50)
		assert.Equal(t, 60, result.Components.Rainfall)
		assert.Empty(t, result.Alerts)
	})

	t.Run("above 50mm is the high band with a flood warning", func(t *testing.T) {
		result := score(51)
		assert.Greater(t, result.Components.Rainfall, 60)
		assert.Contains(t, result.Alerts, "flood warning: expected rainfall 51.0mm exceeds 50mm")
	})
}

func TestScoreObservation_Idempotent(t *testing.T) {
	obs := WeatherObservation{TemperatureC: 38.4, RainfallMm: 72.1, WindKph: 44, HumidityPct: 91}

	first, err := ScoreObservation(obs)
	require.NoError(t, err)
	second, err := ScoreObservation(obs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreObservation_InvalidObservations(t *testing.T) {
	tests := []struct {
		name string
		obs  WeatherObservation
	}{
		{"NaN temperature", WeatherObservation{TemperatureC: math.NaN(), HumidityPct: 50}},
		{"infinite rainfall", WeatherObservation{RainfallMm: math.Inf(1), HumidityPct: 50}},
		{"negative rainfall", WeatherObservation{RainfallMm: -1, HumidityPct: 50}},
		{"negative wind", WeatherObservation{WindKph: -5, HumidityPct: 50}},
		{"humidity above 100", WeatherObservation{HumidityPct: 130}},
		{"negative humidity", WeatherObservation{HumidityPct: -2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScoreObservation(tc.obs)
			require.ErrorIs(t, err, ErrInvalidObservation)
		})
	}
}

func TestLevelForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score    int
		expected RiskLevel
	}{
		{0, RiskLow},
		{30, RiskLow},
		{31, RiskMedium},
		{60, RiskMedium},
		{61, RiskHigh},
		{100, RiskHigh},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, levelForScore(tc.score), "score %d", tc.score)
	}
}

func TestScoreObservation_WindAlert(t *testing.T) {
	obs := mildObservation()
	obs.WindKph = 75

	result, err := ScoreObservation(obs)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Components.Wind)
	assert.Contains(t, result.Alerts, "wind damage risk: expected wind 75.0kph exceeds 60kph")
}

func TestAdjustForCrop(t *testing.T) {
	t.Run("crop temperature band replaces the generic band", func(t *testing.T) {
		// 28°C is safe generically but 3°C above wheat's 10–25°C range.
		wheat := Crop{Name: "Wheat", Season: "Rabi", TempMinC: 10, TempMaxC: 25}
		obs := WeatherObservation{TemperatureC: 28, RainfallMm: 20, WindKph: 10, HumidityPct: 60}

		base, err := ScoreObservation(obs)
		require.NoError(t, err)
		require.Equal(t, 0, base.Components.Temperature)

		adjusted := AdjustForCrop(base, wheat, obs)
		assert.Equal(t, 24, adjusted.Components.Temperature)
		assert.Greater(t, adjusted.Score, base.Score)
	})

	t.Run("drought tolerant crop drops the drought advisory", func(t *testing.T) {
		bajra := Crop{Name: "Bajra", Season: "Kharif", TempMinC: 25, TempMaxC: 35, DroughtTolerant: true}
		obs := WeatherObservation{TemperatureC: 30, RainfallMm: 3, WindKph: 8, HumidityPct: 40}

		base, err := ScoreObservation(obs)
		require.NoError(t, err)
		require.NotEmpty(t, base.Alerts)

		adjusted := AdjustForCrop(base, bajra, obs)
		for _, a := range adjusted.Alerts {
			assert.NotContains(t, a, "drought advisory")
		}
	})

	t.Run("flood tolerant crop discounts excess rainfall", func(t *testing.T) {
		rice := Crop{Name: "Rice", Season: "Kharif", TempMinC: 20, TempMaxC: 35, FloodTolerant: true, RainfallNeed: RainfallNeedHigh}
		obs := WeatherObservation{TemperatureC: 28, RainfallMm: 80, WindKph: 10, HumidityPct: 85}

		base, err := ScoreObservation(obs)
		require.NoError(t, err)

		adjusted := AdjustForCrop(base, rice, obs)
		assert.Equal(t, base.Components.Rainfall-15, adjusted.Components.Rainfall)
		assert.Less(t, adjusted.Score, base.Score)
	})

	t.Run("thirsty crop gains an irrigation advisory in dry weather", func(t *testing.T) {
		rice := Crop{Name: "Rice", Season: "Kharif", TempMinC: 20, TempMaxC: 35, RainfallNeed: RainfallNeedHigh}
		obs := WeatherObservation{TemperatureC: 28, RainfallMm: 4, WindKph: 10, HumidityPct: 50}

		base, err := ScoreObservation(obs)
		require.NoError(t, err)

		adjusted := AdjustForCrop(base, rice, obs)
		assert.Contains(t, adjusted.Alerts, "irrigation advisory: Rice needs high rainfall but only 4.0mm expected")
	})
}
