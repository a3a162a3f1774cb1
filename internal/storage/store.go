// Package storage holds catalog sources: file loading, an in-memory store and
// a SQLite store. Both stores keep catalog order, which the ranking relies on
// to break ties.
package storage

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("product not found")

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"

	defaultListLimit = 20
	maxListLimit     = 200
)

// ListParams filters a catalog listing. Zero values disable a filter.
type ListParams struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
	Limit    int
	Offset   int
}

// Normalized applies the default and maximum page size and clamps the offset.
func (p ListParams) Normalized() ListParams {
	if p.Limit <= 0 {
		p.Limit = defaultListLimit
	}
	if p.Limit > maxListLimit {
		p.Limit = maxListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	p.Category = strings.TrimSpace(p.Category)
	return p
}
