package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aideas/api/internal/apperr"
	"aideas/api/internal/llm"
	"aideas/api/internal/types"
	"aideas/api/internal/util"
)

const (
	// TargetSize is how many entries the model is asked for and what the
	// working set is padded towards.
	TargetSize  = 50
	temperature = 0.7
	maxTokens   = 2000
)

var systemPrompt = `You are an expert software analyst. Provide a list of 50 popular software products.
For each product, include:
- name: string
- description: string
- categories: string[] (choose from: ` + strings.Join(types.Categories, ", ") + `)
- popularity: number (1-100, based on:
  * Market share (40%)
  * User base size (30%)
  * Growth rate (20%)
  * Industry recognition (10%)
)
- metrics: {
  * key metric 1: string
  * key metric 2: string
  * key metric 3: string
}

Return ONLY the JSON array, no markdown formatting or additional text.
Sort by popularity in descending order.`

func userPrompt(category string) string {
	if category != "" {
		return fmt.Sprintf("List 50 popular software products in the %s category", category)
	}
	return "List 50 popular software products across all categories"
}

// Catalog lists trending products. List never fails: every upstream or
// decoding problem degrades to the static fallback catalog.
type Catalog struct {
	eng llm.Engine
	log *zap.Logger
}

func New(eng llm.Engine, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{eng: eng, log: log.Named("trending")}
}

func (c *Catalog) List(ctx context.Context, category string) []types.Product {
	products, err := c.generate(ctx, category)
	if err != nil {
		c.log.Warn("using fallback catalog",
			zap.String("category", category),
			zap.String("kind", string(apperr.KindOf(err))),
			zap.Error(err))
		products = Fallback()
	}
	return Filter(products, category)
}

func (c *Catalog) generate(ctx context.Context, category string) ([]types.Product, error) {
	out, err := c.eng.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        userPrompt(category),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, apperr.Upstream(c.eng.Name(), err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, apperr.Malformed("", "No content received from the model", nil)
	}

	products, err := Decode(util.StripCodeFences(out))
	if err != nil {
		return nil, err
	}
	if products == nil {
		c.log.Info("model did not return an array, using fallback catalog")
		products = Fallback()
	}
	return Pad(products), nil
}

// Decode parses a JSON array of products. A valid JSON value that is not an
// array yields (nil, nil) so the caller can substitute the fallback.
func Decode(raw string) ([]types.Product, error) {
	var v json.RawMessage
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, apperr.Malformed("", "Invalid JSON response from the model", err)
	}
	if !isArray(v) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, apperr.Malformed("", "Invalid JSON response from the model", err)
	}
	products := make([]types.Product, 0, len(items))
	for i, it := range items {
		var p types.Product
		if err := json.Unmarshal(it, &p); err != nil {
			return nil, apperr.Malformed(fmt.Sprintf("[%d]", i), "Invalid product entry from the model", err)
		}
		products = append(products, p)
	}
	return products, nil
}

func isArray(v json.RawMessage) bool {
	s := strings.TrimSpace(string(v))
	return strings.HasPrefix(s, "[")
}

// Pad appends fallback entries starting at the current length when fewer
// than TargetSize products are present. Names are not de-duplicated.
func Pad(products []types.Product) []types.Product {
	if len(products) >= TargetSize {
		return products
	}
	fb := Fallback()
	if len(products) >= len(fb) {
		return products
	}
	return append(products, fb[len(products):]...)
}

// Filter keeps products tagged with category. An empty category or "All"
// returns the input unchanged. The result is never nil.
func Filter(products []types.Product, category string) []types.Product {
	if category == "" || category == types.CategoryAll {
		if products == nil {
			return []types.Product{}
		}
		return products
	}
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out
}
