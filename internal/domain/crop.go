package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RainfallNeed is a crop's coarse water requirement from the crop catalog.
type RainfallNeed string

const (
	RainfallNeedLow    RainfallNeed = "low"
	RainfallNeedMedium RainfallNeed = "medium"
	RainfallNeedHigh   RainfallNeed = "high"
)

// Crop is a read-only crop catalog entry.
type Crop struct {
	Name            string       `json:"name"`
	Season          string       `json:"season"` // Kharif, Rabi, or Zaid
	TempMinC        float64      `json:"temp_min_c"`
	TempMaxC        float64      `json:"temp_max_c"`
	RainfallNeed    RainfallNeed `json:"rainfall_need"`
	DroughtTolerant bool         `json:"drought_tolerant"`
	FloodTolerant   bool         `json:"flood_tolerant"`
}

// SeasonForMonth maps a calendar month to the Indian cropping season.
func SeasonForMonth(m time.Month) string {
	switch {
	case m >= time.June && m <= time.October:
		return "Kharif"
	case m == time.April || m == time.May:
		return "Zaid"
	default:
		return "Rabi"
	}
}

// AdjustForCrop is the optional crop-aware scoring strategy layered on top of
// ScoreObservation. It replaces the generic safe temperature band with the
// crop's own range and applies tolerance adjustments, then recombines with the
// same fixed weights, clamps, and level thresholds. The base weighted-sum
// formula stays authoritative; callers apply this only when a crop is named.
func AdjustForCrop(result RiskResult, crop Crop, obs WeatherObservation) RiskResult {
	tempRisk := cropTemperatureRisk(obs.TemperatureC, crop)
	rainRisk := float64(result.Components.Rainfall)

	// Flood-tolerant crops shrug off part of the excess-moisture hazard.
	if crop.FloodTolerant && obs.RainfallMm > rainHighThresholdMm {
		rainRisk = clampComponent(rainRisk - 15)
	}

	alerts := adjustAlerts(result.Alerts, crop, obs)

	combined := weightTemperature*tempRisk + weightRainfall*rainRisk + weightWind*float64(result.Components.Wind)
	score := clampScore(int(math.Round(combined)))

	adjusted := result
	adjusted.Score = score
	adjusted.Level = levelForScore(score)
	adjusted.Components.Temperature = int(math.Round(tempRisk))
	adjusted.Components.Rainfall = int(math.Round(rainRisk))
	adjusted.Alerts = alerts
	return adjusted
}

func cropTemperatureRisk(tempC float64, crop Crop) float64 {
	var distance float64
	switch {
	case tempC < crop.TempMinC:
		distance = crop.TempMinC - tempC
	case tempC > crop.TempMaxC:
		distance = tempC - crop.TempMaxC
	}
	return clampComponent(distance * tempPointsPerDegree)
}

// adjustAlerts rewrites the generic alert list for a specific crop:
// drought-tolerant crops drop the drought advisory, and thirsty crops get an
// irrigation advisory when rainfall falls short.
func adjustAlerts(alerts []string, crop Crop, obs WeatherObservation) []string {
	out := make([]string, 0, len(alerts)+1)
	for _, a := range alerts {
		if crop.DroughtTolerant && strings.HasPrefix(a, "drought advisory") {
			continue
		}
		out = append(out, a)
	}
	if crop.RainfallNeed == RainfallNeedHigh && obs.RainfallMm < rainLowThresholdMm {
		out = append(out, fmt.Sprintf("irrigation advisory: %s needs high rainfall but only %.1fmm expected", crop.Name, obs.RainfallMm))
	}
	return out
}
