package impact

import "github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"

// CartTotals rolls up the impact of a cart. Water and CO2 are summed per unit,
// recycled content is the quantity-weighted mean. Items with a non-positive
// quantity are ignored.
func CartTotals(items []domain.CartItem) domain.CartImpact {
	out := domain.CartImpact{Certifications: []string{}}

	var water, co2, recycled float64
	seen := make(map[string]struct{})

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		qty := float64(it.Quantity)
		m := Parse(it.Product.Impact)

		water += m.WaterSaved * qty
		co2 += m.CO2Reduced * qty
		recycled += m.RecycledPercent * qty

		out.TotalItems += it.Quantity
		out.TotalPrice += it.Product.Price * qty

		if len(it.Product.Certifications) > 0 {
			out.ItemsWithCertifications += it.Quantity
			for _, c := range it.Product.Certifications {
				if _, ok := seen[c]; ok {
					continue
				}
				seen[c] = struct{}{}
				out.Certifications = append(out.Certifications, c)
			}
		}
	}

	out.TotalWaterSaved = roundTo(water, 0)
	out.TotalCO2Reduced = roundTo(co2, 1)
	if out.TotalItems > 0 {
		out.AverageRecycled = roundTo(recycled/float64(out.TotalItems), 0)
	}
	return out
}
