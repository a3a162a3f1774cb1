package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
)

// LoadProductsFromFile reads a catalog from a JSON array or, for .yaml/.yml
// files, a document with a top-level "products" list.
func LoadProductsFromFile(path string) ([]domain.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc struct {
			Products []domain.Product `yaml:"products"`
		}
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal catalog yaml: %w", err)
		}
		return doc.Products, nil
	default:
		var products []domain.Product
		if err := json.Unmarshal(b, &products); err != nil {
			return nil, fmt.Errorf("unmarshal catalog json: %w", err)
		}
		return products, nil
	}
}
