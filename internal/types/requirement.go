package types

// Requirement categories.
const (
	CategoryTechnical  = "technical"
	CategoryCommercial = "commercial"
	CategoryCompliance = "compliance"
	CategoryDelivery   = "delivery"
)

// Requirement priorities.
const (
	PriorityMandatory = "mandatory"
	PriorityPreferred = "preferred"
	PriorityOptional  = "optional"
)

// Specifications holds the cable/wire attributes a requirement may carry.
// Every field is optional; a nil pointer means the RFP did not specify the
// field, which is distinct from a zero or empty value.
type Specifications struct {
	VoltageKV       *float64 `json:"voltage_kv,omitempty"`
	Conductor       *string  `json:"conductor,omitempty"`
	Cores           *string  `json:"cores,omitempty"`
	CrossSectionMM2 *float64 `json:"cross_section_mm2,omitempty"`
	Insulation      *string  `json:"insulation,omitempty"`
	Armour          *string  `json:"armour,omitempty"`
	Standard        *string  `json:"standard,omitempty"`
	FireRating      *string  `json:"fire_rating,omitempty"`
	Application     *string  `json:"application,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	QuantityUnit    *string  `json:"quantity_unit,omitempty"`
}

// Requirement is a single extracted need from the RFP.
type Requirement struct {
	ID             string         `json:"id"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Priority       string         `json:"priority"`
	Specifications Specifications `json:"specifications"`
}

// ValidCategory reports whether c is a known requirement category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryTechnical, CategoryCommercial, CategoryCompliance, CategoryDelivery:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known requirement priority.
func ValidPriority(p string) bool {
	switch p {
	case PriorityMandatory, PriorityPreferred, PriorityOptional:
		return true
	}
	return false
}
