package trending

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"aideas/api/internal/types"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// fallback is decoded once and never mutated; Fallback hands out copies.
var fallback = mustLoadFallback(fallbackYAML)

func mustLoadFallback(b []byte) []types.Product {
	products, err := loadFallback(b)
	if err != nil {
		panic(fmt.Sprintf("trending: bad fallback catalog: %v", err))
	}
	return products
}

func loadFallback(b []byte) ([]types.Product, error) {
	var products []types.Product
	if err := yaml.Unmarshal(b, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	for i, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("entry %d has no name", i)
		}
		if p.Popularity < types.MinPopularity || p.Popularity > types.MaxPopularity {
			return nil, fmt.Errorf("%s: popularity %d out of range", p.Name, p.Popularity)
		}
		if i > 0 && p.Popularity > products[i-1].Popularity {
			return nil, fmt.Errorf("%s: catalog must be sorted by descending popularity", p.Name)
		}
	}
	return products, nil
}

// Fallback returns a deep copy of the static catalog.
func Fallback() []types.Product {
	out := make([]types.Product, len(fallback))
	for i, p := range fallback {
		p.Categories = slices.Clone(p.Categories)
		p.Metrics = maps.Clone(p.Metrics)
		out[i] = p
	}
	return out
}
