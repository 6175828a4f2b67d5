package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// CategoryAll is the filter label meaning "no filter".
const CategoryAll = "All"

// Categories is the fixed enumeration products are tagged with.
var Categories = []string{
	"AI", "Medical", "E-commerce", "Education", "Finance",
	"Entertainment", "Productivity", "Social Media", "Gaming",
	"Development", "Design", "Marketing", "Healthcare", "Security",
}

const (
	MinPopularity = 1
	MaxPopularity = 100
)

type Product struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Categories  []string `json:"categories" yaml:"categories"`
	Popularity  int      `json:"popularity" yaml:"popularity"`
	Metrics     Metrics  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// HasCategory does an exact, case-sensitive match.
func (p Product) HasCategory(category string) bool {
	return slices.Contains(p.Categories, category)
}

// UnmarshalJSON accepts popularity as any number or numeric string,
// rounds it and clamps it into [MinPopularity, MaxPopularity]. Missing
// categories decode as an empty list.
func (p *Product) UnmarshalJSON(b []byte) error {
	type alias Product
	aux := struct {
		*alias
		Popularity json.Number `json:"popularity"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	pop := 0.0
	if aux.Popularity != "" {
		f, err := aux.Popularity.Float64()
		if err != nil {
			return fmt.Errorf("popularity: %w", err)
		}
		pop = f
	}
	p.Popularity = clampPopularity(pop)
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return nil
}

func clampPopularity(f float64) int {
	if math.IsNaN(f) {
		return MinPopularity
	}
	f = math.Max(MinPopularity, math.Min(MaxPopularity, math.Round(f)))
	return int(f)
}

// Metrics maps a short label to a display value. Models often return
// numbers or booleans here, so scalars are kept in their textual form.
type Metrics map[string]string

func (m *Metrics) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = nil
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	out := make(Metrics, len(raw))
	for k, v := range raw {
		out[k] = scalarString(v)
	}
	*m = out
	return nil
}

func scalarString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return strconv.FormatBool(b)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err == nil {
		return buf.String()
	}
	return string(v)
}
