// Package impact turns the formatted impact fields of a product into numbers
// and derives the metrics built on them. Every consumer of water, CO2 or
// recycled-content figures goes through ParseMetric so that recommendation,
// comparison and cart totals agree on the same values.
package impact

import (
	"math"
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
)

// ParseMetric extracts the magnitude of a field like "2,700L", "3.2kg" or
// "100%". Everything except digits and '.' is dropped and the longest leading
// number of what remains is parsed. Anything unparseable yields 0.
func ParseMetric(s string) float64 {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	num := leadingNumber(b.String())
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// leadingNumber returns digits with at most one decimal point, stopping at a
// second point ("1.2.3" -> "1.2"). Returns "" if no digit is present.
func leadingNumber(s string) string {
	end, digits := 0, 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' {
			if seenDot {
				break
			}
			seenDot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return ""
	}
	return strings.TrimSuffix(s[:end], ".")
}

// Metrics are the parsed values of a domain.Impact.
type Metrics struct {
	WaterSaved      float64
	CO2Reduced      float64
	RecycledPercent float64
}

func Parse(im domain.Impact) Metrics {
	return Metrics{
		WaterSaved:      ParseMetric(im.WaterSaved),
		CO2Reduced:      ParseMetric(im.CO2Reduced),
		RecycledPercent: ParseMetric(im.RecycledMaterials),
	}
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
