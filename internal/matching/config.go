package matching

// Weights defines how much each scorer contributes to the overall score.
type Weights struct {
	Sustainability float64 `json:"sustainability"`
	Price          float64 `json:"price"`
	Category       float64 `json:"category"`
	Certification  float64 `json:"certification"`
	Material       float64 `json:"material"`
	ImpactPriority float64 `json:"impact_priority"`
}

// DefaultWeights returns the production blend. The values sum to 1 so the
// overall score stays in 0..1 when every scorer does.
func DefaultWeights() Weights {
	return Weights{
		Sustainability: 0.35,
		Price:          0.20,
		Category:       0.15,
		Certification:  0.15,
		Material:       0.10,
		ImpactPriority: 0.05,
	}
}

func (w Weights) Sum() float64 {
	return w.Sustainability + w.Price + w.Category + w.Certification + w.Material + w.ImpactPriority
}
