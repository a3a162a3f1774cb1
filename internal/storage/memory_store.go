package storage

import (
	"context"
	"sort"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
)

// MemoryStore serves a catalog held in memory. It is read-only after
// construction and safe for concurrent use.
type MemoryStore struct {
	products []domain.Product
}

func NewMemoryStore(products []domain.Product) *MemoryStore {
	cp := make([]domain.Product, len(products))
	copy(cp, products)
	return &MemoryStore{products: cp}
}

func (s *MemoryStore) All(_ context.Context) ([]domain.Product, error) {
	cp := make([]domain.Product, len(s.products))
	copy(cp, s.products)
	return cp, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, params ListParams) ([]domain.Product, int, error) {
	params = params.Normalized()

	filtered := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		if params.MinPrice > 0 && p.Price < params.MinPrice {
			continue
		}
		if params.MaxPrice > 0 && p.Price > params.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch params.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	total := len(filtered)
	start := min(params.Offset, total)
	end := min(start+params.Limit, total)
	return filtered[start:end], total, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	return len(s.products), nil
}
