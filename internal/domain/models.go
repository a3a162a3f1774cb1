package domain

// Product is a catalog item. Values are supplied by the catalog source and
// treated as read-only by the engine.
type Product struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Category       string     `json:"category" yaml:"category"`
	Price          float64    `json:"price" yaml:"price"`
	OriginalPrice  float64    `json:"original_price,omitempty" yaml:"original_price,omitempty"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	Materials      []Material `json:"materials" yaml:"materials"`
	Certifications []string   `json:"certifications" yaml:"certifications"`
	Features       []string   `json:"features" yaml:"features"`
	Impact         Impact     `json:"impact" yaml:"impact"`
}

type Material struct {
	Name           string  `json:"name" yaml:"name"`
	Percentage     float64 `json:"percentage" yaml:"percentage"`
	Sustainability string  `json:"sustainability" yaml:"sustainability"`
	Origin         string  `json:"origin" yaml:"origin"`
}

// Impact holds formatted magnitudes such as "2,700L", "3.2kg" or "100%".
// Use impact.Parse before doing arithmetic on them.
type Impact struct {
	WaterSaved        string `json:"water_saved" yaml:"water_saved"`
	CO2Reduced        string `json:"co2_reduced" yaml:"co2_reduced"`
	RecycledMaterials string `json:"recycled_materials" yaml:"recycled_materials"`
}

// ScoreBreakdown carries every raw component score behind a recommendation.
type ScoreBreakdown struct {
	Sustainability float64 `json:"sustainability"`
	Price          float64 `json:"price"`
	Category       float64 `json:"category"`
	Certification  float64 `json:"certification"`
	Material       float64 `json:"material"`
	ImpactPriority float64 `json:"impact_priority"`
}

type ProductRecommendation struct {
	Product             Product        `json:"product"`
	Score               float64        `json:"score"`
	Reasons             []string       `json:"reasons"`
	Highlights          []string       `json:"highlights,omitempty"`
	SustainabilityMatch float64        `json:"sustainability_match"`
	PriceMatch          float64        `json:"price_match"`
	CategoryMatch       float64        `json:"category_match"`
	Breakdown           ScoreBreakdown `json:"breakdown"`
}

// SustainabilityComparison aggregates a candidate set. Superlatives are nil
// when the set is empty.
type SustainabilityComparison struct {
	Products            []Product      `json:"products"`
	BestWaterSaver      *Product       `json:"best_water_saver"`
	BestCO2Reducer      *Product       `json:"best_co2_reducer"`
	MostRecycled        *Product       `json:"most_recycled"`
	MostCertifications  *Product       `json:"most_certifications"`
	SustainabilityScore map[string]int `json:"sustainability_scores"`
	AverageImpact       AverageImpact  `json:"average_impact"`
}

type AverageImpact struct {
	WaterSaved        float64 `json:"water_saved"`
	CO2Reduced        float64 `json:"co2_reduced"`
	RecycledMaterials float64 `json:"recycled_materials"`
}

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
}

type CartImpact struct {
	TotalItems              int      `json:"total_items"`
	TotalPrice              float64  `json:"total_price"`
	TotalWaterSaved         float64  `json:"total_water_saved"`
	TotalCO2Reduced         float64  `json:"total_co2_reduced"`
	AverageRecycled         float64  `json:"average_recycled_materials"`
	ItemsWithCertifications int      `json:"items_with_certifications"`
	Certifications          []string `json:"certifications"`
}
