package domain

import (
	"math"
	"time"
)

// monthTempOffsetC is the northern-hemisphere seasonal swing applied to the
// latitude-band base temperature. Mirrored for southern latitudes.
var monthTempOffsetC = [13]float64{0,
	-4, -3, -1, 2, 4, 5, // Jan–Jun
	5, 4, 3, 1, -2, -4, // Jul–Dec
}

// EstimateObservation produces a deterministic synthetic observation for a
// coordinate and month. It is the fallback when the live weather source is
// unavailable: keyed only on latitude band, month (monsoon June–September),
// and coastal proximity, so degraded results are reproducible.
func EstimateObservation(lat, lon float64, month time.Month) WeatherObservation {
	baseTemp := latitudeBaseTempC(lat)
	offset := monthTempOffsetC[month]
	if lat < 0 {
		offset = -offset
	}

	coastal := IsCoastal(lat, lon)
	monsoon := month >= time.June && month <= time.September

	rainfall := 5.0
	switch {
	case monsoon:
		rainfall = 60
	case month == time.October || month == time.November:
		rainfall = 25
	}
	if coastal {
		rainfall += 15
	}

	humidity := 60.0
	if coastal {
		humidity = 80
	}
	if monsoon {
		humidity = math.Min(100, humidity+10)
	}

	wind := 12.0
	if coastal {
		wind = 22
	}
	if monsoon {
		wind += 6
	}

	return WeatherObservation{
		TemperatureC: baseTemp + offset,
		RainfallMm:   rainfall,
		WindKph:      wind,
		HumidityPct:  humidity,
	}
}

// latitudeBaseTempC buckets latitude into tropical, subtropical, and temperate
// base temperatures.
func latitudeBaseTempC(lat float64) float64 {
	switch abs := math.Abs(lat); {
	case abs < 23.5:
		return 28
	case abs < 35:
		return 24
	default:
		return 18
	}
}

// coastalBelts are rough bounding boxes along the Indian coastline. Precision
// does not matter here: the estimator only needs a stable coastal/inland split.
var coastalBelts = []boundingBox{
	{latMin: 8, latMax: 23, lonMin: 72, lonMax: 76},  // west coast: Konkan, Kerala
	{latMin: 8, latMax: 22, lonMin: 79.5, lonMax: 88}, // east coast: Coromandel, Odisha, Bengal
	{latMin: 20, latMax: 24, lonMin: 68, lonMax: 72.5}, // Gujarat: Kutch, Saurashtra
}

type boundingBox struct {
	latMin, latMax, lonMin, lonMax float64
}

func (b boundingBox) contains(lat, lon float64) bool {
	return lat >= b.latMin && lat <= b.latMax && lon >= b.lonMin && lon <= b.lonMax
}

// IsCoastal reports whether a coordinate falls in one of the coastal belts.
func IsCoastal(lat, lon float64) bool {
	for _, belt := range coastalBelts {
		if belt.contains(lat, lon) {
			return true
		}
	}
	return false
}
