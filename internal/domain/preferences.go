package domain

import (
	"errors"
	"fmt"
)

// FactorID tags a sustainability factor the scorer knows how to evaluate.
type FactorID string

const (
	FactorOrganic           FactorID = "organic"
	FactorRecycled          FactorID = "recycled"
	FactorWaterConservation FactorID = "water-conservation"
	FactorCarbonNeutral     FactorID = "carbon-neutral"
	FactorFairTrade         FactorID = "fair-trade"
	FactorDurability        FactorID = "durability"
)

var ErrUnknownFactor = errors.New("unknown sustainability factor")

var knownFactors = []FactorID{
	FactorOrganic,
	FactorRecycled,
	FactorWaterConservation,
	FactorCarbonNeutral,
	FactorFairTrade,
	FactorDurability,
}

// KnownFactors lists recognized factor ids in their canonical order.
func KnownFactors() []FactorID {
	out := make([]FactorID, len(knownFactors))
	copy(out, knownFactors)
	return out
}

// ParseFactorID validates a raw id. Scoring never calls it: unknown ids are
// simply ignored there. It exists for callers that want to reject typos early.
func ParseFactorID(s string) (FactorID, error) {
	for _, f := range knownFactors {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFactor, s)
}

type ImpactPriority string

const (
	PriorityWater    ImpactPriority = "water"
	PriorityCO2      ImpactPriority = "co2"
	PriorityRecycled ImpactPriority = "recycled"
	PriorityAll      ImpactPriority = "all"
)

type SustainabilityFactor struct {
	ID     FactorID `json:"id"`
	Name   string   `json:"name"`
	Weight float64  `json:"weight"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// UserPreferences is owned by the caller and passed into every engine call.
type UserPreferences struct {
	SustainabilityFactors []SustainabilityFactor `json:"sustainability_factors"`
	PriceRange            PriceRange             `json:"price_range"`
	Categories            []string               `json:"categories"`
	Certifications        []string               `json:"certifications"`
	Materials             []string               `json:"materials"`
	ImpactPriority        ImpactPriority         `json:"impact_priority"`
}

// DefaultPreferences returns the profile a new shopper starts with.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		SustainabilityFactors: []SustainabilityFactor{
			{ID: FactorOrganic, Name: "Organic Materials", Weight: 0.8},
			{ID: FactorRecycled, Name: "Recycled Content", Weight: 0.7},
			{ID: FactorWaterConservation, Name: "Water Conservation", Weight: 0.6},
			{ID: FactorCarbonNeutral, Name: "Carbon Footprint", Weight: 0.5},
			{ID: FactorFairTrade, Name: "Fair Trade", Weight: 0.7},
			{ID: FactorDurability, Name: "Product Durability", Weight: 0.9},
		},
		PriceRange:     PriceRange{Min: 0, Max: 500},
		Categories:     []string{},
		Certifications: []string{},
		Materials:      []string{},
		ImpactPriority: PriorityAll,
	}
}
