package types

// IdeaAnalysis is the fixed-shape answer for /api/evaluate.
type IdeaAnalysis struct {
	MarketSize             string   `json:"marketSize"`
	BusinessModel          string   `json:"businessModel"`
	MonetizationStrategies []string `json:"monetizationStrategies"`
	Competitors            []string `json:"competitors"`
}
