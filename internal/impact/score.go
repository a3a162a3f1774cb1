package impact

import (
	"math"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
)

// Point budgets of the 0..100 sustainability score.
const (
	waterPoints    = 30.0
	co2Points      = 30.0
	recycledPoints = 25.0
	certPoints     = 15.0

	waterCeiling  = 10000.0 // liters for full water points
	co2Ceiling    = 20.0    // kg for full CO2 points
	pointsPerCert = 3.0
)

// SustainabilityScore rates a product on water, CO2, recycled content and
// certification count. Recycled content is not capped: a field above 100%
// is the caller's data problem, not something the score corrects.
func SustainabilityScore(p domain.Product) int {
	m := Parse(p.Impact)

	water := math.Min(m.WaterSaved/waterCeiling, 1) * waterPoints
	co2 := math.Min(m.CO2Reduced/co2Ceiling, 1) * co2Points
	recycled := (m.RecycledPercent / 100) * recycledPoints
	certs := math.Min(float64(len(p.Certifications))*pointsPerCert, certPoints)

	return int(math.Round(water + co2 + recycled + certs))
}
