package matching

import (
	"math"
	"slices"
	"sort"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/impact"
)

const maxReasons = 3

// Certification that earns its own reason line.
const highlightedCertification = "GOTS Certified"

// Engine ranks catalog products against caller-supplied preferences. It
// holds no mutable state and is safe for concurrent use.
type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// Recommend scores every catalog product except excludeID and returns the
// best limit of them. Ties keep catalog order.
func (e *Engine) Recommend(catalog []domain.Product, prefs domain.UserPreferences, excludeID string, limit int) []domain.ProductRecommendation {
	if limit <= 0 || len(catalog) == 0 {
		return []domain.ProductRecommendation{}
	}

	out := make([]domain.ProductRecommendation, 0, len(catalog))
	for _, p := range catalog {
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		out = append(out, e.recommendOne(p, prefs))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Engine) recommendOne(p domain.Product, prefs domain.UserPreferences) domain.ProductRecommendation {
	sustainability, highlights := FactorScore(p, prefs)
	price := PriceScore(p, prefs)
	category := CategoryScore(p, prefs)
	cert := CertificationScore(p, prefs)
	material := MaterialScore(p, prefs)
	priority := ImpactPriorityScore(p, prefs)

	score := sustainability*e.weights.Sustainability +
		price*e.weights.Price +
		category*e.weights.Category +
		cert*e.weights.Certification +
		material*e.weights.Material +
		priority*e.weights.ImpactPriority

	reasons := make([]string, 0, 8)
	if sustainability > 0.7 {
		reasons = append(reasons, "High sustainability rating")
	}
	if price == 1 {
		reasons = append(reasons, "Within your budget")
	}
	if category == 1 {
		reasons = append(reasons, "Matches your preferred categories")
	}
	if cert > 0.5 {
		reasons = append(reasons, "Has preferred certifications")
	}
	if material == 1 {
		reasons = append(reasons, "Made with preferred materials")
	}

	m := impact.Parse(p.Impact)
	if slices.Contains(p.Certifications, highlightedCertification) {
		reasons = append(reasons, "GOTS certified organic")
	}
	if m.RecycledPercent > 50 {
		reasons = append(reasons, "High recycled content")
	}
	if m.WaterSaved > 3000 {
		reasons = append(reasons, "Significant water savings")
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return domain.ProductRecommendation{
		Product:             p,
		Score:               score,
		Reasons:             reasons,
		Highlights:          highlights,
		SustainabilityMatch: sustainability,
		PriceMatch:          price,
		CategoryMatch:       category,
		Breakdown: domain.ScoreBreakdown{
			Sustainability: sustainability,
			Price:          price,
			Category:       category,
			Certification:  cert,
			Material:       material,
			ImpactPriority: priority,
		},
	}
}

// Similarity weights for related-item lookup.
const (
	similarCategory      = 0.4
	similarPrice         = 0.25
	similarMaterials     = 0.2
	similarCertification = 0.15
)

// Similar returns up to limit catalog products closest to target, never
// target itself.
func (e *Engine) Similar(target domain.Product, catalog []domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}

	type scored struct {
		product    domain.Product
		similarity float64
	}
	ranked := make([]scored, 0, len(catalog))
	for _, p := range catalog {
		if p.ID == target.ID {
			continue
		}
		ranked = append(ranked, scored{product: p, similarity: Similarity(target, p)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].similarity > ranked[j].similarity })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]domain.Product, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.product)
	}
	return out
}

// Similarity scores how close p is to target in 0..1.
func Similarity(target, p domain.Product) float64 {
	var sim float64
	if p.Category == target.Category {
		sim += similarCategory
	}

	if target.Price > 0 {
		diff := math.Abs(p.Price-target.Price) / target.Price
		sim += (1 - math.Min(diff, 1)) * similarPrice
	}

	sim += overlap(materialNames(p.Materials), materialNames(target.Materials)) * similarMaterials
	sim += overlap(p.Certifications, target.Certifications) * similarCertification
	return sim
}

// overlap counts entries of a that also appear in b, divided by the longer
// list's length. Two empty lists overlap by 0.
func overlap(a, b []string) float64 {
	denom := max(len(a), len(b))
	if denom == 0 {
		return 0
	}
	common := 0
	for _, x := range a {
		if slices.Contains(b, x) {
			common++
		}
	}
	return float64(common) / float64(denom)
}

func materialNames(ms []domain.Material) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}
