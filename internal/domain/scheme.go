package domain

// Scheme is a read-only relief scheme catalog entry.
type Scheme struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	DisasterTypes     []string `json:"disaster_types"`
	EligibleCrops     []string `json:"eligible_crops"` // "All Crops" is a wildcard
	MinLandHectares   float64  `json:"min_land_hectares"`
	MaxLandHectares   float64  `json:"max_land_hectares"`
	RequiresInsurance bool     `json:"requires_insurance"`
	MaxCompensation   float64  `json:"max_compensation"` // rupees per hectare
	Documents         []string `json:"documents"`
	ApplicationSteps  []string `json:"application_steps"`
	Helpline          string   `json:"helpline,omitempty"`
	Website           string   `json:"website,omitempty"`
}

// DisasterQuery captures one farmer's situation for scheme matching.
// Constructed per request; never persisted.
type DisasterQuery struct {
	Crop             string  `json:"crop"`
	DisasterType     string  `json:"disaster_type"`
	LandSizeHectares float64 `json:"land_size_hectares"`
	HasInsurance     bool    `json:"has_insurance"`
	HasKCC           bool    `json:"has_kcc"` // Kisan Credit Card
}

// ChecklistItem is one document the farmer must collect before applying.
// Collected starts false; tracking state lives in the logbook, not here.
type ChecklistItem struct {
	Document  string `json:"document"`
	Collected bool   `json:"collected"`
}

// EligibleScheme is a matched scheme plus the human-readable reasons it
// matched and a fresh document-collection checklist.
type EligibleScheme struct {
	Scheme
	Reasons   []string        `json:"reasons"`
	Checklist []ChecklistItem `json:"checklist"`
}
