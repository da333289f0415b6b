package domain

import (
	"fmt"
	"math"
)

// RiskLevel buckets a combined score into the three user-facing categories.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Scoring constants. These are design decisions, not tunables: callers cannot
// override them and the documented boundary behavior in the tests depends on
// the exact values.
const (
	safeTempMinC        = 20.0
	safeTempMaxC        = 30.0
	tempPointsPerDegree = 8.0

	rainLowThresholdMm  = 10.0
	rainHighThresholdMm = 50.0

	heatAlertC   = 35.0
	coldAlertC   = 10.0
	windAlertKph = 60.0

	weightTemperature = 0.3
	weightRainfall    = 0.5
	weightWind        = 0.2

	levelLowMax    = 30
	levelMediumMax = 60
)

// ComponentScores exposes the three clamped component risks for display.
type ComponentScores struct {
	Temperature int `json:"temperature"`
	Rainfall    int `json:"rainfall"`
	Wind        int `json:"wind"`
}

// RiskResult is the derived outcome of scoring one observation.
type RiskResult struct {
	Score      int             `json:"score"` // always in 0–100
	Level      RiskLevel       `json:"level"`
	Components ComponentScores `json:"components"`
	Alerts     []string        `json:"alerts"`
}

// ScoreObservation converts a weather observation into a bounded risk score,
// level, component breakdown, and categorical alerts. Pure computation; the
// only failure mode is a malformed observation.
func ScoreObservation(obs WeatherObservation) (RiskResult, error) {
	if err := validateObservation(obs); err != nil {
		return RiskResult{}, err
	}

	tempRisk := temperatureRisk(obs.TemperatureC)
	rainRisk := rainfallRisk(obs.RainfallMm)
	windRisk := windRisk(obs.WindKph)

	combined := weightTemperature*tempRisk + weightRainfall*rainRisk + weightWind*windRisk
	score := clampScore(int(math.Round(combined)))

	return RiskResult{
		Score: score,
		Level: levelForScore(score),
		Components: ComponentScores{
			Temperature: int(math.Round(tempRisk)),
			Rainfall:    int(math.Round(rainRisk)),
			Wind:        int(math.Round(windRisk)),
		},
		Alerts: collectAlerts(obs),
	}, nil
}

func validateObservation(obs WeatherObservation) error {
	for name, v := range map[string]float64{
		"temperature": obs.TemperatureC,
		"rainfall":    obs.RainfallMm,
		"wind":        obs.WindKph,
		"humidity":    obs.HumidityPct,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidObservation, name)
		}
	}
	if obs.RainfallMm < 0 {
		return fmt.Errorf("%w: negative rainfall %.1fmm", ErrInvalidObservation, obs.RainfallMm)
	}
	if obs.WindKph < 0 {
		return fmt.Errorf("%w: negative wind speed %.1fkph", ErrInvalidObservation, obs.WindKph)
	}
	if obs.HumidityPct < 0 || obs.HumidityPct > 100 {
		return fmt.Errorf("%w: humidity %.1f%% outside 0-100", ErrInvalidObservation, obs.HumidityPct)
	}
	return nil
}

// temperatureRisk scales the distance from the 20–30°C safe band.
// Inside the band the risk is zero; 45°C sits 15°C above and clamps to 100.
func temperatureRisk(tempC float64) float64 {
	var distance float64
	switch {
	case tempC < safeTempMinC:
		distance = safeTempMinC - tempC
	case tempC > safeTempMaxC:
		distance = tempC - safeTempMaxC
	}
	return clampComponent(distance * tempPointsPerDegree)
}

// rainfallRisk is monotone increasing in rainfall depth. The three segments
// meet at the documented thresholds: <10mm stays below 20 points, 10–50mm
// ramps from 20 to 60, and >50mm climbs toward the clamp.
func rainfallRisk(rainMm float64) float64 {
	switch {
	case rainMm < rainLowThresholdMm:
		return clampComponent(rainMm * 2)
	case rainMm <= rainHighThresholdMm:
		return clampComponent(20 + (rainMm - rainLowThresholdMm))
	default:
		return clampComponent(60 + (rainMm-rainHighThresholdMm)*0.8)
	}
}

// windRisk is monotone increasing in wind speed.
func windRisk(windKph float64) float64 {
	return clampComponent(windKph * 1.5)
}

// collectAlerts derives the categorical warnings shown alongside the score.
// Order is fixed: temperature, rainfall, wind.
func collectAlerts(obs WeatherObservation) []string {
	var alerts []string
	if obs.TemperatureC > heatAlertC {
		alerts = append(alerts, fmt.Sprintf("heat stress: expected temperature %.1f°C exceeds %.0f°C", obs.TemperatureC, heatAlertC))
	}
	if obs.TemperatureC < coldAlertC {
		alerts = append(alerts, fmt.Sprintf("cold stress: expected temperature %.1f°C below %.0f°C", obs.TemperatureC, coldAlertC))
	}
	if obs.RainfallMm < rainLowThresholdMm {
		alerts = append(alerts, fmt.Sprintf("drought advisory: expected rainfall %.1fmm below %.0fmm", obs.RainfallMm, rainLowThresholdMm))
	}
	if obs.RainfallMm > rainHighThresholdMm {
		alerts = append(alerts, fmt.Sprintf("flood warning: expected rainfall %.1fmm exceeds %.0fmm", obs.RainfallMm, rainHighThresholdMm))
	}
	if obs.WindKph > windAlertKph {
		alerts = append(alerts, fmt.Sprintf("wind damage risk: expected wind %.1fkph exceeds %.0fkph", obs.WindKph, windAlertKph))
	}
	return alerts
}

func levelForScore(score int) RiskLevel {
	switch {
	case score <= levelLowMax:
		return RiskLow
	case score <= levelMediumMax:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func clampComponent(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
