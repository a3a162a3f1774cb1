// Package compare aggregates sustainability metrics across a candidate set,
// typically a shopper's wishlist selection.
package compare

import (
	"math"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/impact"
)

// Generate scores every candidate, picks the best product per metric and
// averages the impact figures. The first candidate wins ties. An empty set
// yields nil superlatives and zero averages.
func Generate(candidates []domain.Product) domain.SustainabilityComparison {
	out := domain.SustainabilityComparison{
		Products:            candidates,
		SustainabilityScore: make(map[string]int, len(candidates)),
	}
	if len(candidates) == 0 {
		out.Products = []domain.Product{}
		return out
	}

	bestWater, bestCO2, bestRecycled, bestCerts := 0, 0, 0, 0
	metrics := make([]impact.Metrics, len(candidates))
	var totalWater, totalCO2, totalRecycled float64

	for i, p := range candidates {
		out.SustainabilityScore[p.ID] = impact.SustainabilityScore(p)

		m := impact.Parse(p.Impact)
		metrics[i] = m
		totalWater += m.WaterSaved
		totalCO2 += m.CO2Reduced
		totalRecycled += m.RecycledPercent

		if m.WaterSaved > metrics[bestWater].WaterSaved {
			bestWater = i
		}
		if m.CO2Reduced > metrics[bestCO2].CO2Reduced {
			bestCO2 = i
		}
		if m.RecycledPercent > metrics[bestRecycled].RecycledPercent {
			bestRecycled = i
		}
		if len(p.Certifications) > len(candidates[bestCerts].Certifications) {
			bestCerts = i
		}
	}

	out.BestWaterSaver = &candidates[bestWater]
	out.BestCO2Reducer = &candidates[bestCO2]
	out.MostRecycled = &candidates[bestRecycled]
	out.MostCertifications = &candidates[bestCerts]

	n := float64(len(candidates))
	out.AverageImpact = domain.AverageImpact{
		WaterSaved:        math.Round(totalWater / n),
		CO2Reduced:        math.Round(totalCO2/n*10) / 10,
		RecycledMaterials: math.Round(totalRecycled / n),
	}
	return out
}
