package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// smallFarmerMaxHectares is the small/marginal farmer cutoff used for the
// advisory reason appended to every eligible scheme.
const smallFarmerMaxHectares = 2.0

// cropWildcard in a scheme's eligible-crop set matches any crop.
const cropWildcard = "All Crops"

// eligibilityPredicate is one boolean rule a scheme imposes on a query.
// eval returns whether the rule holds and, when it does, the reason shown to
// the farmer. Predicates are independent: none reads another's outcome.
type eligibilityPredicate struct {
	name string
	eval func(q DisasterQuery, s Scheme) (bool, string)
}

// eligibilityPredicates is the full conjunction. Every predicate is evaluated
// for every scheme, so their order only affects reason ordering, never the
// eligible set.
var eligibilityPredicates = []eligibilityPredicate{
	{name: "disaster_type", eval: matchesDisasterType},
	{name: "crop", eval: matchesCrop},
	{name: "land_size", eval: matchesLandSize},
	{name: "insurance", eval: matchesInsurance},
}

// MatchSchemes filters the scheme catalog against a farmer's query, returning
// eligible schemes ranked by descending maximum compensation (catalog order
// breaks ties). An empty catalog is an evaluation failure, not zero matches.
func MatchSchemes(q DisasterQuery, catalog []Scheme) ([]EligibleScheme, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: no schemes loaded", ErrCatalogUnavailable)
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	eligible := make([]EligibleScheme, 0, len(catalog))
	for _, scheme := range catalog {
		ok, reasons := evaluateScheme(q, scheme)
		if !ok {
			continue
		}
		eligible = append(eligible, EligibleScheme{
			Scheme:    scheme,
			Reasons:   append(reasons, advisoryReasons(q)...),
			Checklist: buildChecklist(scheme),
		})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].MaxCompensation > eligible[j].MaxCompensation
	})
	return eligible, nil
}

func validateQuery(q DisasterQuery) error {
	if math.IsNaN(q.LandSizeHectares) || q.LandSizeHectares <= 0 {
		return fmt.Errorf("%w: land size must be a positive number of hectares", ErrInvalidQuery)
	}
	if strings.TrimSpace(q.Crop) == "" {
		return fmt.Errorf("%w: crop is required", ErrInvalidQuery)
	}
	if strings.TrimSpace(q.DisasterType) == "" {
		return fmt.Errorf("%w: disaster type is required", ErrInvalidQuery)
	}
	return nil
}

// evaluateScheme runs all predicates without short-circuiting and returns
// the conjunction plus the reasons for the satisfied rules.
func evaluateScheme(q DisasterQuery, s Scheme) (bool, []string) {
	ok := true
	reasons := make([]string, 0, len(eligibilityPredicates))
	for _, p := range eligibilityPredicates {
		holds, reason := p.eval(q, s)
		if !holds {
			ok = false
			continue
		}
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	if !ok {
		return false, nil
	}
	return true, reasons
}

func matchesDisasterType(q DisasterQuery, s Scheme) (bool, string) {
	for _, dt := range s.DisasterTypes {
		if strings.EqualFold(dt, q.DisasterType) {
			return true, fmt.Sprintf("disaster type (%s) is covered by this scheme", titleize(q.DisasterType))
		}
	}
	return false, ""
}

func matchesCrop(q DisasterQuery, s Scheme) (bool, string) {
	for _, crop := range s.EligibleCrops {
		if strings.EqualFold(crop, cropWildcard) {
			return true, "this scheme covers all crops"
		}
		if strings.EqualFold(crop, q.Crop) {
			return true, fmt.Sprintf("your crop (%s) is covered under this scheme", q.Crop)
		}
	}
	return false, ""
}

func matchesLandSize(q DisasterQuery, s Scheme) (bool, string) {
	if q.LandSizeHectares < s.MinLandHectares || q.LandSizeHectares > s.MaxLandHectares {
		return false, ""
	}
	return true, fmt.Sprintf("your land size (%.1f ha) meets the %.1f–%.1f ha criteria", q.LandSizeHectares, s.MinLandHectares, s.MaxLandHectares)
}

func matchesInsurance(q DisasterQuery, s Scheme) (bool, string) {
	if !s.RequiresInsurance {
		return true, "no crop insurance is required for this scheme"
	}
	if q.HasInsurance {
		return true, "your crop insurance qualifies you for claims"
	}
	return false, ""
}

// advisoryReasons are informational notes appended after the predicate
// reasons; they never affect eligibility.
func advisoryReasons(q DisasterQuery) []string {
	var extra []string
	if q.LandSizeHectares <= smallFarmerMaxHectares {
		extra = append(extra, "small/marginal farmer benefits may apply")
	}
	if q.HasKCC {
		extra = append(extra, "your Kisan Credit Card can unlock emergency credit support")
	}
	return extra
}

// buildChecklist copies the scheme's document list into a fresh checklist so
// callers can track collection state without mutating the catalog.
func buildChecklist(s Scheme) []ChecklistItem {
	items := make([]ChecklistItem, len(s.Documents))
	for i, doc := range s.Documents {
		items[i] = ChecklistItem{Document: doc}
	}
	return items
}

// titleize turns a snake_case disaster id into display form, e.g.
// "flash_flood" -> "Flash Flood".
func titleize(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
