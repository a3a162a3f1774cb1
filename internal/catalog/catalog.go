// Package catalog provides the built-in product catalog used when no
// external catalog file is configured.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
)

//go:embed catalog.yaml
var catalogRawData []byte

type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// Catalog parses the embedded YAML on first access.
type Catalog struct {
	once     sync.Once
	products []domain.Product
	err      error
}

func New() *Catalog {
	return &Catalog{}
}

// Products returns a copy of all products in catalog order.
func (c *Catalog) Products() ([]domain.Product, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	cp := make([]domain.Product, len(c.products))
	copy(cp, c.products)
	return cp, nil
}

func (c *Catalog) ByID(id string) (domain.Product, bool, error) {
	all, err := c.Products()
	if err != nil {
		return domain.Product{}, false, err
	}
	p, ok := FindByID(all, id)
	return p, ok, nil
}

func (c *Catalog) ByCategory(category string) ([]domain.Product, error) {
	all, err := c.Products()
	if err != nil {
		return nil, err
	}
	return FilterByCategory(all, category), nil
}

// FindByID looks up a product in an arbitrary product list.
func FindByID(products []domain.Product, id string) (domain.Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return products[i], true
		}
	}
	return domain.Product{}, false
}

// FilterByCategory keeps products whose category equals category exactly.
func FilterByCategory(products []domain.Product, category string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		if products[i].Category == category {
			out = append(out, products[i])
		}
	}
	return out
}

func (c *Catalog) load() {
	var f catalogFile
	if err := yaml.Unmarshal(catalogRawData, &f); err != nil {
		c.err = fmt.Errorf("catalog: parse yaml: %w", err)
		return
	}
	c.products = f.Products
}
