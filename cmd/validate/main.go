// Command validate lints the scheme and crop catalogs before deployment:
// duplicate IDs, inverted land ranges, empty document lists, unknown crop
// references, and season or rainfall-need values outside the known sets.
// Exits non-zero when any check fails.
//
// Usage:
//
//	go run ./cmd/validate -schemes data/schemes.json -crops data/crops.json
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/croppilot/croppilot/internal/catalog"
	"github.com/croppilot/croppilot/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	schemesPath := flag.String("schemes", "data/schemes.json", "path to the scheme catalog")
	cropsPath := flag.String("crops", "data/crops.json", "path to the crop catalog")
	flag.Parse()

	os.Exit(run(*schemesPath, *cropsPath))
}

func run(schemesPath, cropsPath string) int {
	fmt.Println("=== Catalog Validation ===")
	fmt.Println()

	cat, err := catalog.Load(schemesPath, cropsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load catalogs: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchemes(cat.Schemes),
		validateCrops(cat.Crops),
		validateCrossReferences(cat),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Entries: %d schemes, %d crops, %d disaster types, %d states\n",
		len(cat.Schemes), len(cat.Crops), len(cat.DisasterTypes), len(cat.States))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateSchemes(schemes []domain.Scheme) *phase {
	p := &phase{name: "Phase 1: Scheme Integrity"}

	seen := map[string]bool{}
	for i, s := range schemes {
		ref := s.ID
		if ref == "" {
			ref = fmt.Sprintf("index %d", i)
			p.errorf("scheme %s: missing id", ref)
		} else if seen[s.ID] {
			p.errorf("scheme %s: duplicate id", s.ID)
		}
		seen[s.ID] = true

		if s.Name == "" {
			p.errorf("scheme %s: missing name", ref)
		}
		if len(s.DisasterTypes) == 0 {
			p.errorf("scheme %s: no disaster types", ref)
		}
		if len(s.EligibleCrops) == 0 {
			p.errorf("scheme %s: no eligible crops", ref)
		}
		if s.MinLandHectares < 0 {
			p.errorf("scheme %s: negative min land %.2f", ref, s.MinLandHectares)
		}
		if s.MaxLandHectares <= 0 || s.MaxLandHectares < s.MinLandHectares {
			p.errorf("scheme %s: invalid land range %.2f-%.2f", ref, s.MinLandHectares, s.MaxLandHectares)
		}
		if s.MaxCompensation <= 0 {
			p.errorf("scheme %s: non-positive compensation %.0f", ref, s.MaxCompensation)
		}
		if len(s.Documents) == 0 {
			p.errorf("scheme %s: empty document checklist", ref)
		}
		if len(s.ApplicationSteps) == 0 {
			p.errorf("scheme %s: no application steps", ref)
		}
	}
	return p
}

var (
	validSeasons = map[string]bool{"Kharif": true, "Rabi": true, "Zaid": true}
	validNeeds   = map[domain.RainfallNeed]bool{
		domain.RainfallNeedLow:    true,
		domain.RainfallNeedMedium: true,
		domain.RainfallNeedHigh:   true,
	}
)

func validateCrops(crops []domain.Crop) *phase {
	p := &phase{name: "Phase 2: Crop Integrity"}

	seen := map[string]bool{}
	for i, c := range crops {
		ref := c.Name
		if ref == "" {
			ref = fmt.Sprintf("index %d", i)
			p.errorf("crop %s: missing name", ref)
		} else if seen[strings.ToLower(c.Name)] {
			p.errorf("crop %s: duplicate name", c.Name)
		}
		seen[strings.ToLower(c.Name)] = true

		if !validSeasons[c.Season] {
			p.errorf("crop %s: season %q not in {Kharif, Rabi, Zaid}", ref, c.Season)
		}
		if c.TempMinC >= c.TempMaxC {
			p.errorf("crop %s: invalid temperature range %.1f-%.1f", ref, c.TempMinC, c.TempMaxC)
		}
		if !validNeeds[c.RainfallNeed] {
			p.errorf("crop %s: rainfall need %q not in {low, medium, high}", ref, c.RainfallNeed)
		}
	}
	return p
}

// validateCrossReferences checks that schemes only name crops and disaster
// types that exist in their catalogs, so a match query can never silently
// miss a typo.
func validateCrossReferences(cat *catalog.Catalog) *phase {
	p := &phase{name: "Phase 3: Cross-References"}

	knownCrops := map[string]bool{}
	for _, c := range cat.Crops {
		knownCrops[strings.ToLower(c.Name)] = true
	}
	knownDisasters := map[string]bool{}
	for _, d := range cat.DisasterTypes {
		knownDisasters[d.ID] = true
	}

	for _, s := range cat.Schemes {
		for _, crop := range s.EligibleCrops {
			if strings.EqualFold(crop, "All Crops") {
				continue
			}
			if !knownCrops[strings.ToLower(crop)] {
				p.errorf("scheme %s: eligible crop %q not in crop catalog", s.ID, crop)
			}
		}
		for _, d := range s.DisasterTypes {
			if !knownDisasters[d] {
				p.errorf("scheme %s: disaster type %q not in disaster type list", s.ID, d)
			}
		}
	}
	return p
}
