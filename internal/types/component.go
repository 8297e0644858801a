package types

// ComponentCandidate is a read-only projection of a catalog entry. The
// pipeline never mutates it. Specification fields mirror Specifications and
// use pointers so a catalog entry can leave a field unspecified.
type ComponentCandidate struct {
	ID       int64  `json:"component_id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`

	VoltageKV       *float64 `json:"voltage_kv,omitempty"`
	Conductor       *string  `json:"conductor,omitempty"`
	Cores           *string  `json:"cores,omitempty"`
	CrossSectionMM2 *float64 `json:"cross_section_mm2,omitempty"`
	Insulation      *string  `json:"insulation,omitempty"`
	Armour          *string  `json:"armour,omitempty"`
	Standard        *string  `json:"standard,omitempty"`
	FireRating      *string  `json:"fire_rating,omitempty"`
	Application     *string  `json:"application,omitempty"`

	PricePerMeter float64 `json:"price_per_meter"`
	InStock       bool    `json:"in_stock"`
	LeadTimeDays  int     `json:"lead_time_days"`
}

// ComponentMatch is a scored candidate for one requirement. MatchedSpecs
// carries exactly the specification fields that were evaluated: a field
// absent on either side is omitted, never recorded as false.
type ComponentMatch struct {
	ComponentID  int64           `json:"component_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Score        float64         `json:"score"`
	MatchedSpecs map[string]bool `json:"matched_specs"`
	Notes        string          `json:"notes,omitempty"`

	PricePerMeter float64 `json:"price_per_meter"`
	InStock       bool    `json:"in_stock"`
	LeadTimeDays  int     `json:"lead_time_days"`
}

// RequirementMatch pairs a requirement with its scored candidates.
// Invariants: Matches is sorted descending by score, BestMatch is
// Matches[0] or nil, and CoverageScore is within [0,100].
type RequirementMatch struct {
	RequirementID          string           `json:"requirement_id"`
	RequirementDescription string           `json:"requirement_description"`
	Matches                []ComponentMatch `json:"matches"`
	BestMatch              *ComponentMatch  `json:"best_match,omitempty"`
	CoverageScore          float64          `json:"coverage_score"`
}
