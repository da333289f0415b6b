// Package domain holds the CropPilot decision core: weather risk scoring and
// disaster relief scheme eligibility matching.
//
// # Risk scoring
//
// A single [WeatherObservation] (forecast aggregate or deterministic estimate)
// is converted into a bounded risk score by [ScoreObservation]. Three component
// risks are computed independently, each clamped to 0–100:
//
//	Temperature: distance from the 20–30°C agronomic safe band, 8 points per °C.
//	Rainfall:    monotone piecewise ramp with operational thresholds at
//	             10mm (drought advisory below) and 50mm (flood warning above).
//	Wind:        1.5 points per km/h.
//
// The combined score is a fixed weighted sum (temperature 0.3, rainfall 0.5,
// wind 0.2), rounded and clamped to 0–100, then mapped to a level:
//
//	score ≤ 30  Low
//	score ≤ 60  Medium
//	otherwise   High
//
// Weights and thresholds are package constants; they are not configurable at
// call time. Scoring is pure: same observation in, same result out.
//
// # Scheme matching
//
// [MatchSchemes] filters a relief scheme catalog against a farmer's
// [DisasterQuery]. A scheme is eligible iff all four predicates hold: disaster
// type covered, crop covered (case-insensitive; "All Crops" is a wildcard),
// land size within range, and insurance held when the scheme requires it.
// Every predicate is evaluated for every scheme, so predicate order can never
// change the eligible set. Results carry per-predicate eligibility reasons and
// a document checklist, ranked by descending maximum compensation with catalog
// order breaking ties.
//
// # Seasons
//
// Indian cropping seasons used by the crop catalog and the estimator:
//
//	Kharif: June–October (monsoon sowing)
//	Rabi:   November–March (winter sowing)
//	Zaid:   April–May (summer)
//
// # Fallback data
//
// When live collaborators are unreachable, [EstimateObservation] produces a
// deterministic observation from latitude band, month, and coastal proximity,
// and [LookupRegion] resolves coordinates to a district/state via a
// coordinate-range table. Both are pure lookups so degraded behavior is
// reproducible in tests.
package domain
