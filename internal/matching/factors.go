package matching

import (
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/impact"
)

// factorRule scores one sustainability factor. evaluate reports whether the
// product qualifies, the share of the coefficient it earns (1 for most rules)
// and the highlight shown to the shopper.
type factorRule struct {
	coefficient float64
	evaluate    func(p domain.Product, m impact.Metrics) (scale float64, reason string, ok bool)
}

// New factors are added here, not as extra branches in FactorScore.
var factorRules = map[domain.FactorID]factorRule{
	domain.FactorOrganic: {
		coefficient: 0.2,
		evaluate: func(p domain.Product, _ impact.Metrics) (float64, string, bool) {
			for _, mat := range p.Materials {
				s := strings.ToLower(mat.Sustainability)
				if strings.Contains(s, "organic") || strings.Contains(s, "gots") {
					return 1, "Contains organic materials", true
				}
			}
			return 0, "", false
		},
	},
	domain.FactorRecycled: {
		coefficient: 0.2,
		evaluate: func(_ domain.Product, m impact.Metrics) (float64, string, bool) {
			if m.RecycledPercent <= 0 {
				return 0, "", false
			}
			pct := strconv.FormatFloat(m.RecycledPercent, 'f', -1, 64)
			return m.RecycledPercent / 100, pct + "% recycled materials", true
		},
	},
	domain.FactorWaterConservation: {
		coefficient: 0.15,
		evaluate: func(p domain.Product, m impact.Metrics) (float64, string, bool) {
			if m.WaterSaved <= 1000 {
				return 0, "", false
			}
			return 1, "Saves " + p.Impact.WaterSaved + " of water", true
		},
	},
	domain.FactorCarbonNeutral: {
		coefficient: 0.15,
		evaluate: func(p domain.Product, m impact.Metrics) (float64, string, bool) {
			if m.CO2Reduced <= 2 {
				return 0, "", false
			}
			return 1, "Reduces " + p.Impact.CO2Reduced + " CO2", true
		},
	},
	domain.FactorFairTrade: {
		coefficient: 0.15,
		evaluate: func(p domain.Product, _ impact.Metrics) (float64, string, bool) {
			for _, c := range p.Certifications {
				if strings.Contains(strings.ToLower(c), "fair trade") {
					return 1, "Fair Trade certified", true
				}
			}
			return 0, "", false
		},
	},
	domain.FactorDurability: {
		coefficient: 0.15,
		evaluate: func(p domain.Product, _ impact.Metrics) (float64, string, bool) {
			for _, f := range p.Features {
				s := strings.ToLower(f)
				if strings.Contains(s, "durable") || strings.Contains(s, "long-lasting") {
					return 1, "Built for durability", true
				}
			}
			return 0, "", false
		},
	},
}
