package matching

import (
	"math"
	"slices"
	"strings"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/impact"
)

// Normalization ceilings for the impact-priority score.
const (
	priorityWaterCeiling = 5000.0
	priorityCO2Ceiling   = 20.0
)

// FactorScore sums weight*coefficient over the preference factors the
// product satisfies, capped at 1. Unknown factor ids contribute nothing.
// The returned highlights follow the order of the preference factors.
func FactorScore(p domain.Product, prefs domain.UserPreferences) (float64, []string) {
	m := impact.Parse(p.Impact)

	var score float64
	var highlights []string
	for _, f := range prefs.SustainabilityFactors {
		rule, ok := factorRules[f.ID]
		if !ok {
			continue
		}
		scale, reason, ok := rule.evaluate(p, m)
		if !ok {
			continue
		}
		score += f.Weight * rule.coefficient * scale
		highlights = append(highlights, reason)
	}
	return math.Min(score, 1), highlights
}

// PriceScore is 1 inside the range (inclusive), 0.8 below it, and decays
// linearly with the relative overshoot above it.
func PriceScore(p domain.Product, prefs domain.UserPreferences) float64 {
	lo, hi := prefs.PriceRange.Min, prefs.PriceRange.Max
	switch {
	case p.Price >= lo && p.Price <= hi:
		return 1
	case p.Price < lo:
		return 0.8
	case hi <= 0:
		// any price above a zero budget is infinitely over it
		return 0
	default:
		return math.Max(0, 1-(p.Price-hi)/hi)
	}
}

// CategoryScore is a soft filter: a miss costs points but never excludes.
func CategoryScore(p domain.Product, prefs domain.UserPreferences) float64 {
	if len(prefs.Categories) == 0 || slices.Contains(prefs.Categories, p.Category) {
		return 1
	}
	return 0.3
}

// CertificationScore is the share of preferred certifications found, case
// insensitively, as a substring of at least one product certification.
func CertificationScore(p domain.Product, prefs domain.UserPreferences) float64 {
	if len(prefs.Certifications) == 0 {
		return 1
	}
	matched := 0
	for _, want := range prefs.Certifications {
		if anyContainsFold(p.Certifications, want) {
			matched++
		}
	}
	return float64(matched) / float64(len(prefs.Certifications))
}

// MaterialScore gives partial credit (0.5) when nothing matches.
func MaterialScore(p domain.Product, prefs domain.UserPreferences) float64 {
	if len(prefs.Materials) == 0 {
		return 1
	}
	for _, mat := range p.Materials {
		name := strings.ToLower(mat.Name)
		for _, want := range prefs.Materials {
			if strings.Contains(name, strings.ToLower(want)) {
				return 1
			}
		}
	}
	return 0.5
}

func ImpactPriorityScore(p domain.Product, prefs domain.UserPreferences) float64 {
	m := impact.Parse(p.Impact)
	water := math.Min(m.WaterSaved/priorityWaterCeiling, 1)
	co2 := math.Min(m.CO2Reduced/priorityCO2Ceiling, 1)
	recycled := m.RecycledPercent / 100

	switch prefs.ImpactPriority {
	case domain.PriorityWater:
		return water
	case domain.PriorityCO2:
		return co2
	case domain.PriorityRecycled:
		return recycled
	default:
		return (water + co2 + recycled) / 3
	}
}

func anyContainsFold(haystack []string, needle string) bool {
	n := strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), n) {
			return true
		}
	}
	return false
}
